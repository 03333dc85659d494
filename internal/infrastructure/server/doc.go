// Package server wires configuration, channels and transports into the
// running bridge: gin HTTP with the WebSocket stream, and the gRPC service.
package server
