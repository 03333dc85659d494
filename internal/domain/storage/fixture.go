package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// fixtureFile is the on-disk candidate list; null entries are absent volumes
type fixtureFile struct {
	Volumes []*string `yaml:"volumes"`
}

// FixtureSource reads candidates from a YAML file on every call:
//
//	volumes:
//	  - /storage/emulated/0/Android/data/com.example.drivy/files
//	  - null
//	  - /storage/1234-5678/Android/data/com.example.drivy/files
type FixtureSource struct {
	file string
}

// NewFixtureSource creates a source backed by file
func NewFixtureSource(file string) *FixtureSource {
	return &FixtureSource{file: file}
}

// Name implements Source
func (s *FixtureSource) Name() string { return "fixture" }

// ExternalDirs implements Source
func (s *FixtureSource) ExternalDirs(ctx context.Context) ([]*Dir, error) {
	data, err := os.ReadFile(s.file)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", s.file, err)
	}

	return FromPaths(f.Volumes...), nil
}
