package paths

import (
	"fmt"
	"path"
	"strings"
)

// Marker separates a volume's mount root from the app-private tree beneath it.
const Marker = "/Android"

// Mount points
const (
	// StorageRoot is the parent of every external volume mount
	StorageRoot = "/storage"

	// Emulated is the parent of the per-user emulated volumes
	Emulated = "/storage/emulated"

	// Self is an alias of the calling user's emulated volume
	Self = "/storage/self"

	// PrimaryVolume is the primary emulated volume of user 0
	PrimaryVolume = "/storage/emulated/0"

	// DataDir holds internal app data; disk space is reported against it
	DataDir = "/data"
)

// App-specific subdirectories below Marker
const (
	dataSegment  = "data"
	filesSegment = "files"
	cacheSegment = "cache"
)

// App returns app-specific external storage paths
type App struct {
	Package string
	// Marker overrides the segment the app-private tree hangs from; empty means Marker
	Marker string
}

// AppPath returns paths for a specific application package
func AppPath(pkg string) App {
	return App{Package: pkg}
}

// WithMarker returns a copy of a whose private tree hangs from marker
func (a App) WithMarker(marker string) App {
	a.Marker = marker
	return a
}

func (a App) marker() string {
	if a.Marker == "" {
		return Marker
	}
	return a.Marker
}

// ExternalDataDir returns the app's private directory on a volume
func (a App) ExternalDataDir(volume string) string {
	return path.Join(volume, a.marker(), dataSegment, a.Package)
}

// ExternalFilesDir returns the app's files directory on a volume
func (a App) ExternalFilesDir(volume string) string {
	return path.Join(a.ExternalDataDir(volume), filesSegment)
}

// ExternalCacheDir returns the app's cache directory on a volume
func (a App) ExternalCacheDir(volume string) string {
	return path.Join(a.ExternalDataDir(volume), cacheSegment)
}

// MountRoot truncates p before the first occurrence of Marker.
// A path without the marker is returned unchanged.
func MountRoot(p string) string {
	return TruncateAt(p, Marker)
}

// TruncateAt returns the part of p before the first occurrence of marker.
// An empty marker or a path without the marker yields p.
func TruncateAt(p, marker string) string {
	if marker == "" {
		return p
	}
	if i := strings.Index(p, marker); i >= 0 {
		return p[:i]
	}
	return p
}

// IsAppSpecific checks if p lies inside some app's private external tree
func IsAppSpecific(p string) bool {
	return strings.Contains(p, Marker+"/"+dataSegment+"/")
}

// IsVolumeAlias reports mount points that are not volumes themselves
func IsVolumeAlias(p string) bool {
	clean := path.Clean(p)
	return clean == StorageRoot || clean == Emulated || clean == Self
}

// ValidatePackage checks if a package name is safe for path construction
func ValidatePackage(pkg string) error {
	if pkg == "" {
		return fmt.Errorf("package name cannot be empty")
	}
	if strings.ContainsAny(pkg, "/\\") {
		return fmt.Errorf("package name cannot contain path separators")
	}
	if pkg == "." || pkg == ".." {
		return fmt.Errorf("package name contains invalid path components")
	}
	return nil
}
