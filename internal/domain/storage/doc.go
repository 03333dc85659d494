// Package storage resolves the mount roots of the external storage volumes
// available to the application.
//
// A Source enumerates the host's app-specific external directories, one per
// volume. Entries may be nil when a volume is unmounted or inaccessible. The
// Resolver cuts each directory before the marker segment (default
// "/Android"), drops duplicates keeping the first occurrence, and returns the
// roots in host order.
//
// Enumeration failures are never surfaced to callers: they are logged and
// counted, and whatever candidates were produced are still resolved.
//
// Sources:
//   - StaticSource: fixed candidates
//   - SourceFunc: adapter for a plain function
//   - MountSource: primary volume plus mounts under the storage roots (gopsutil)
//   - GlobSource: doublestar pattern matches
//   - FixtureSource: YAML candidate list
//   - MultiSource: concatenation of sources
package storage
