package storage

import (
	"context"
	"errors"
	"fmt"
)

// MultiSource concatenates the candidates of several sources in order.
// A failing member contributes whatever it returned and its error is joined.
type MultiSource struct {
	sources []Source
}

// NewMultiSource creates a source over sources
func NewMultiSource(sources ...Source) *MultiSource {
	return &MultiSource{sources: sources}
}

// Name implements Source
func (s *MultiSource) Name() string { return "multi" }

// ExternalDirs implements Source
func (s *MultiSource) ExternalDirs(ctx context.Context) ([]*Dir, error) {
	var (
		dirs []*Dir
		errs []error
	)
	for _, src := range s.sources {
		got, err := src.ExternalDirs(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
		}
		dirs = append(dirs, got...)
	}
	return dirs, errors.Join(errs...)
}
