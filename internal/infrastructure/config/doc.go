// Package config provides 12-factor configuration management for the bridge backend.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - GRPC: gRPC bridge listener
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Storage: Storage channel name, app package, volume source
//   - DiskSpace: Disk space channel name and measured directory
//
// Environment Variables:
//   - PORT, HOST, GRPC_ADDR, GRPC_ENABLED
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - STORAGE_CHANNEL, STORAGE_PACKAGE, STORAGE_MARKER, STORAGE_SOURCE,
//     STORAGE_ROOTS, STORAGE_GLOB, STORAGE_FIXTURE, EXTERNAL_STORAGE
//   - DISK_SPACE_CHANNEL, DISK_SPACE_PATH
package config
