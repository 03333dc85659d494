// Package paths provides the external storage layout seen by an application.
//
// Every external volume exposes application-private directories beneath a
// fixed marker segment. The part of a path before the marker is the volume's
// mount root.
//
// # Directory Structure
//
//	/storage/emulated/0/            (mount root, primary volume)
//	  └── Android/
//	      └── data/
//	          └── com.example.drivy/
//	              ├── files/        (ExternalFilesDir)
//	              └── cache/        (ExternalCacheDir)
//	/storage/1234-5678/             (mount root, removable volume)
//	  └── Android/...
//
// # Usage
//
//	import "github.com/GriffinCanCode/drivy/backend/internal/shared/paths"
//
//	app := paths.AppPath("com.example.drivy")
//	dir := app.ExternalFilesDir(paths.PrimaryVolume) // /storage/emulated/0/Android/data/com.example.drivy/files
//
//	root := paths.MountRoot(dir) // /storage/emulated/0
package paths
