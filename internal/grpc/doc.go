// Package grpc exposes the channel registry as the drivy.bridge.v1.MethodChannel
// gRPC service.
//
// The service is registered by hand from ServiceDesc and carries
// google.protobuf.Struct messages, so no generated code is needed:
//
//	request:  {"channel": "com.example.drivy/storage", "method": "getStoragePaths"}
//	response: {"status": "success", "result": ["/storage/emulated/0"]}
//
// Unknown channels fail with codes.NotFound, a missing channel or method with
// codes.InvalidArgument. The standard grpc.health.v1 service is served next to it.
package grpc
