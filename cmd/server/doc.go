// Package main is the entry point for the drivy storage bridge.
//
// The bridge answers method channel calls from the UI shell:
//
//	UI shell → HTTP / WebSocket / gRPC → channel registry → storage, disk_space, system
//
// Configuration comes from environment variables (see internal/infrastructure/config);
// flags override the listen addresses:
//
//	./server -port 8000 -grpc 0.0.0.0:50061
//	LOG_DEV=true STORAGE_SOURCE=fixture STORAGE_FIXTURE=volumes.yaml ./server
//
// SIGINT and SIGTERM trigger a graceful shutdown.
package main
