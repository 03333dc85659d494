// Package types provides shared data structures for the bridge backend.
//
// Core Types:
//   - Channel: Method channel definition (name + methods)
//   - Method: One named operation on a channel
//   - MethodCall: Inbound request (method name + arguments)
//   - Result: Reply envelope (success, error, not implemented)
//
// Request Types:
//   - InvokeRequest: HTTP method invocation body
//
// Example Usage:
//
//	call := types.MethodCall{Method: "getStoragePaths"}
//	result := handler.Handle(ctx, call)
//	if result.IsNotImplemented() {
//	    // the channel does not know this method
//	}
package types
