package storage

import "context"

// StaticSource reports a fixed candidate list
type StaticSource struct {
	dirs []*Dir
}

// NewStaticSource creates a source that always reports dirs
func NewStaticSource(dirs ...*Dir) *StaticSource {
	return &StaticSource{dirs: dirs}
}

// FromPaths builds a candidate list where nil pointers are absent volumes
func FromPaths(ps ...*string) []*Dir {
	dirs := make([]*Dir, len(ps))
	for i, p := range ps {
		if p != nil {
			dirs[i] = &Dir{Path: *p}
		}
	}
	return dirs
}

// Name implements Source
func (s *StaticSource) Name() string { return "static" }

// ExternalDirs implements Source
func (s *StaticSource) ExternalDirs(ctx context.Context) ([]*Dir, error) {
	out := make([]*Dir, len(s.dirs))
	copy(out, s.dirs)
	return out, nil
}
