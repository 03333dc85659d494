package types

// Status is the kind of reply a channel produced
type Status string

const (
	StatusSuccess        Status = "success"
	StatusError          Status = "error"
	StatusNotImplemented Status = "not_implemented"
)

// MethodCall is a single request on a channel
type MethodCall struct {
	Method    string      `json:"method"`
	Arguments interface{} `json:"arguments,omitempty"`
}

// Error describes a failed call
type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Result is the reply to a MethodCall
type Result struct {
	Status Status      `json:"status"`
	Value  interface{} `json:"result,omitempty"`
	Error  *Error      `json:"error,omitempty"`
}

// InvokeRequest represents an HTTP method invocation
type InvokeRequest struct {
	Method    string      `json:"method" binding:"required"`
	Arguments interface{} `json:"arguments"`
}

// Success creates a successful result
func Success(value interface{}) *Result {
	return &Result{Status: StatusSuccess, Value: value}
}

// Failure creates an error result
func Failure(code, message string, details interface{}) *Result {
	return &Result{
		Status: StatusError,
		Error:  &Error{Code: code, Message: message, Details: details},
	}
}

// NotImplemented creates the reply for a method the channel does not know
func NotImplemented() *Result {
	return &Result{Status: StatusNotImplemented}
}

// IsSuccess reports a success reply
func (r *Result) IsSuccess() bool { return r != nil && r.Status == StatusSuccess }

// IsError reports an error reply
func (r *Result) IsError() bool { return r != nil && r.Status == StatusError }

// IsNotImplemented reports a not-implemented reply
func (r *Result) IsNotImplemented() bool { return r != nil && r.Status == StatusNotImplemented }
