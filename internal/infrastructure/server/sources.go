package server

import (
	"fmt"

	"github.com/GriffinCanCode/drivy/backend/internal/domain/storage"
	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/config"
)

// NewVolumeSource builds the volume source selected by STORAGE_SOURCE
func NewVolumeSource(cfg config.StorageConfig) (storage.Source, error) {
	switch cfg.Source {
	case config.SourceMounts, "":
		src, err := storage.NewMountSource(cfg.Package, cfg.External, cfg.Roots)
		if err != nil {
			return nil, err
		}
		return src.WithMarker(cfg.Marker), nil
	case config.SourceGlob:
		return storage.NewGlobSource(cfg.Glob)
	case config.SourceFixture:
		return storage.NewFixtureSource(cfg.Fixture), nil
	default:
		return nil, fmt.Errorf("unknown volume source %q", cfg.Source)
	}
}
