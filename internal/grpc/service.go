package grpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/GriffinCanCode/drivy/backend/internal/channel"
	"github.com/GriffinCanCode/drivy/backend/internal/shared/types"
)

const (
	// ServiceName is the fully qualified gRPC service name
	ServiceName = "drivy.bridge.v1.MethodChannel"
	// InvokeMethod is the full method name of the unary Invoke RPC
	InvokeMethod = "/" + ServiceName + "/Invoke"
)

// MethodChannelServer is the server API of the bridge service.
//
// Request:  {"channel": string, "method": string, "arguments": any}
// Response: {"status": string, "result": any, "error": {"code", "message", "details"}}
type MethodChannelServer interface {
	Invoke(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes the bridge service for grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MethodChannelServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Invoke",
			Handler:    invokeHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "drivy/bridge/v1/channel.proto",
}

func invokeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MethodChannelServer).Invoke(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: InvokeMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MethodChannelServer).Invoke(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// BridgeService routes gRPC calls into the channel registry
type BridgeService struct {
	registry *channel.Registry
}

// NewBridgeService creates the gRPC front of registry
func NewBridgeService(registry *channel.Registry) *BridgeService {
	return &BridgeService{registry: registry}
}

// Invoke handles one method channel call
func (s *BridgeService) Invoke(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	fields := req.GetFields()
	name := fields["channel"].GetStringValue()
	if name == "" {
		return nil, status.Error(codes.InvalidArgument, "channel is required")
	}
	method := fields["method"].GetStringValue()
	if method == "" {
		return nil, status.Error(codes.InvalidArgument, "method is required")
	}

	var args interface{}
	if v, ok := fields["arguments"]; ok {
		args = v.AsInterface()
	}

	result, err := s.registry.Invoke(ctx, name, types.MethodCall{Method: method, Arguments: args})
	if err != nil {
		if errors.Is(err, channel.ErrChannelNotFound) {
			return nil, status.Error(codes.NotFound, err.Error())
		}
		return nil, status.Errorf(codes.Internal, "invoke %s: %v", name, err)
	}

	reply, err := resultToStruct(result)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode result: %v", err)
	}
	return reply, nil
}

func resultToStruct(result *types.Result) (*structpb.Struct, error) {
	reply := map[string]interface{}{
		"status": string(result.Status),
	}
	if result.IsSuccess() {
		reply["result"] = result.Value
	}
	if result.IsError() && result.Error != nil {
		reply["error"] = map[string]interface{}{
			"code":    result.Error.Code,
			"message": result.Error.Message,
			"details": result.Error.Details,
		}
	}

	plain, err := plainJSON(reply)
	if err != nil {
		return nil, err
	}
	return structpb.NewStruct(plain)
}

func structToResult(s *structpb.Struct) (*types.Result, error) {
	fields := s.GetFields()
	switch st := types.Status(fields["status"].GetStringValue()); st {
	case types.StatusSuccess:
		var value interface{}
		if v, ok := fields["result"]; ok {
			value = v.AsInterface()
		}
		return types.Success(value), nil
	case types.StatusError:
		e := fields["error"].GetStructValue().GetFields()
		var details interface{}
		if d, ok := e["details"]; ok {
			details = d.AsInterface()
		}
		return types.Failure(e["code"].GetStringValue(), e["message"].GetStringValue(), details), nil
	case types.StatusNotImplemented:
		return types.NotImplemented(), nil
	default:
		return nil, fmt.Errorf("unknown status %q", st)
	}
}

// plainJSON converts arbitrary handler values (typed slices, structs) into
// the map/slice/float64 shapes structpb accepts
func plainJSON(v map[string]interface{}) (map[string]interface{}, error) {
	data, err := sonic.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := sonic.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
