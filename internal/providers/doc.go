// Package providers groups the channel handlers served by the bridge.
//
//   - storage: getStoragePaths, mount roots of the available volumes
//   - diskspace: getTotalDiskSpace and getFreeDiskSpace for the data filesystem
//   - system: ping and runtime info
//
// Each handler implements channel.Handler and answers unknown methods with a
// not-implemented result.
package providers
