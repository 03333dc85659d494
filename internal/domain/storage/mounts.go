package storage

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/shirou/gopsutil/disk"

	"github.com/GriffinCanCode/drivy/backend/internal/shared/paths"
)

// PartitionLister lists mounted filesystems
type PartitionLister func(ctx context.Context, all bool) ([]disk.PartitionStat, error)

// StatFunc checks that a volume root is accessible
type StatFunc func(name string) (os.FileInfo, error)

// MountSource reports the primary volume followed by every filesystem mounted
// directly under one of the storage roots. Each volume contributes the app's
// files directory; a volume whose root cannot be stat'ed contributes nil.
type MountSource struct {
	app     paths.App
	primary string
	roots   []string

	partitions PartitionLister
	stat       StatFunc
}

// NewMountSource creates a mount table backed source
func NewMountSource(pkg, primary string, roots []string) (*MountSource, error) {
	if err := paths.ValidatePackage(pkg); err != nil {
		return nil, fmt.Errorf("invalid package: %w", err)
	}

	cleaned := make([]string, 0, len(roots))
	for _, r := range roots {
		if r != "" {
			cleaned = append(cleaned, path.Clean(r))
		}
	}

	return &MountSource{
		app:        paths.AppPath(pkg),
		primary:    primary,
		roots:      cleaned,
		partitions: disk.PartitionsWithContext,
		stat:       os.Stat,
	}, nil
}

// WithMarker places the app's files directory below marker instead of
// paths.Marker, so the resolver's truncation finds the volume root again
func (s *MountSource) WithMarker(marker string) *MountSource {
	if marker != "" {
		s.app = s.app.WithMarker(marker)
	}
	return s
}

// WithPartitionLister replaces the mount table query
func (s *MountSource) WithPartitionLister(fn PartitionLister) *MountSource {
	s.partitions = fn
	return s
}

// WithStat replaces the volume accessibility check
func (s *MountSource) WithStat(fn StatFunc) *MountSource {
	s.stat = fn
	return s
}

// Name implements Source
func (s *MountSource) Name() string { return "mounts" }

// ExternalDirs implements Source. When the mount table cannot be read the
// primary volume is still reported alongside the error.
func (s *MountSource) ExternalDirs(ctx context.Context) ([]*Dir, error) {
	var volumes []string
	seen := make(map[string]bool)

	if s.primary != "" {
		primary := path.Clean(s.primary)
		volumes = append(volumes, primary)
		seen[primary] = true
	}

	parts, err := s.partitions(ctx, true)
	if err != nil {
		return s.dirsFor(volumes), fmt.Errorf("list partitions: %w", err)
	}

	for _, p := range parts {
		mp := path.Clean(p.Mountpoint)
		if seen[mp] || !s.isVolume(mp) {
			continue
		}
		seen[mp] = true
		volumes = append(volumes, mp)
	}

	return s.dirsFor(volumes), nil
}

// isVolume accepts direct children of a storage root that are not aliases
func (s *MountSource) isVolume(mp string) bool {
	if paths.IsVolumeAlias(mp) {
		return false
	}
	parent := path.Dir(mp)
	for _, root := range s.roots {
		if parent == root {
			return true
		}
	}
	return false
}

func (s *MountSource) dirsFor(volumes []string) []*Dir {
	dirs := make([]*Dir, 0, len(volumes))
	for _, v := range volumes {
		if _, err := s.stat(v); err != nil {
			dirs = append(dirs, nil)
			continue
		}
		dirs = append(dirs, &Dir{Path: s.app.ExternalFilesDir(v)})
	}
	return dirs
}
