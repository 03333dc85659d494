package channel

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/drivy/backend/internal/shared/types"
)

var (
	// ErrMalformedCall is returned for payloads that are not a method call
	ErrMalformedCall = errors.New("malformed method call")
	// ErrMalformedEnvelope is returned for payloads that are not a reply envelope
	ErrMalformedEnvelope = errors.New("malformed envelope")
)

type wireCall struct {
	Method *string     `json:"method"`
	Args   interface{} `json:"args"`
}

// EncodeMethodCall encodes call as {"method": ..., "args": ...}
func EncodeMethodCall(call types.MethodCall) ([]byte, error) {
	if call.Method == "" {
		return nil, fmt.Errorf("%w: missing method", ErrMalformedCall)
	}
	return sonic.Marshal(wireCall{Method: &call.Method, Args: call.Arguments})
}

// DecodeMethodCall decodes a JSON method call
func DecodeMethodCall(data []byte) (types.MethodCall, error) {
	var w wireCall
	if err := sonic.Unmarshal(data, &w); err != nil {
		return types.MethodCall{}, fmt.Errorf("%w: %v", ErrMalformedCall, err)
	}
	if w.Method == nil || *w.Method == "" {
		return types.MethodCall{}, fmt.Errorf("%w: missing method", ErrMalformedCall)
	}
	return types.MethodCall{Method: *w.Method, Arguments: w.Args}, nil
}

// EncodeEnvelope encodes a reply. Success is [result], error is
// [code, message, details] and not-implemented is an empty payload.
func EncodeEnvelope(result *types.Result) ([]byte, error) {
	switch {
	case result.IsSuccess():
		return sonic.Marshal([]interface{}{result.Value})
	case result.IsError():
		e := result.Error
		if e == nil {
			e = &types.Error{Code: "ERROR"}
		}
		var message interface{}
		if e.Message != "" {
			message = e.Message
		}
		return sonic.Marshal([]interface{}{e.Code, message, e.Details})
	case result == nil || result.IsNotImplemented():
		return []byte{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrMalformedEnvelope, result.Status)
	}
}

// DecodeEnvelope decodes a reply produced by EncodeEnvelope
func DecodeEnvelope(data []byte) (*types.Result, error) {
	if len(data) == 0 {
		return types.NotImplemented(), nil
	}

	var items []interface{}
	if err := sonic.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}

	switch len(items) {
	case 1:
		return types.Success(items[0]), nil
	case 3:
		code, ok := items[0].(string)
		if !ok {
			return nil, fmt.Errorf("%w: error code must be a string", ErrMalformedEnvelope)
		}
		var message string
		if items[1] != nil {
			if message, ok = items[1].(string); !ok {
				return nil, fmt.Errorf("%w: error message must be a string or null", ErrMalformedEnvelope)
			}
		}
		return types.Failure(code, message, items[2]), nil
	default:
		return nil, fmt.Errorf("%w: %d elements", ErrMalformedEnvelope, len(items))
	}
}
