package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// GlobSource reports every directory matching a pattern such as
// /storage/*/Android/data/com.example.drivy/files
type GlobSource struct {
	pattern string
}

// NewGlobSource validates pattern and creates the source
func NewGlobSource(pattern string) (*GlobSource, error) {
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %q", pattern)
	}
	return &GlobSource{pattern: pattern}, nil
}

// Name implements Source
func (s *GlobSource) Name() string { return "glob" }

// ExternalDirs implements Source
func (s *GlobSource) ExternalDirs(ctx context.Context) ([]*Dir, error) {
	matches, err := doublestar.FilepathGlob(s.pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", s.pattern, err)
	}
	sort.Strings(matches)

	dirs := make([]*Dir, len(matches))
	for i, m := range matches {
		dirs[i] = &Dir{Path: m}
	}
	return dirs, nil
}
