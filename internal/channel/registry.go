package channel

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/drivy/backend/internal/shared/id"
	"github.com/GriffinCanCode/drivy/backend/internal/shared/types"
)

// UnknownMethod is the metric label recorded for undeclared methods
const UnknownMethod = "unknown"

var (
	// ErrChannelNotFound is returned when no handler is registered for a channel
	ErrChannelNotFound = errors.New("channel not found")
	// ErrInvalidChannel is returned when registering a handler without a name
	ErrInvalidChannel = errors.New("channel name cannot be empty")
)

// Handler answers calls on one channel
type Handler interface {
	Definition() types.Channel
	Handle(ctx context.Context, call types.MethodCall) *types.Result
}

// Registry routes method calls to channel handlers
type Registry struct {
	handlers sync.Map
	logger   *logging.Logger
	metrics  *monitoring.Metrics
}

// NewRegistry creates an empty registry. Both arguments are optional.
func NewRegistry(logger *logging.Logger, metrics *monitoring.Metrics) *Registry {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Registry{
		logger:  logger.Named("channel"),
		metrics: metrics,
	}
}

// Register adds a handler, replacing any handler with the same channel name
func (r *Registry) Register(handler Handler) error {
	def := handler.Definition()
	if def.Name == "" {
		return ErrInvalidChannel
	}

	if _, replaced := r.handlers.Swap(def.Name, handler); replaced {
		r.logger.Info("Replaced channel handler", zap.String("channel", def.Name))
	} else {
		r.logger.Debug("Registered channel", zap.String("channel", def.Name), zap.Int("methods", len(def.Methods)))
	}
	return nil
}

// Unregister removes a channel
func (r *Registry) Unregister(name string) {
	r.handlers.Delete(name)
}

// Get retrieves the handler for a channel
func (r *Registry) Get(name string) (Handler, bool) {
	val, ok := r.handlers.Load(name)
	if !ok {
		return nil, false
	}
	return val.(Handler), true
}

// List returns all channel definitions sorted by name
func (r *Registry) List() []types.Channel {
	channels := []types.Channel{}
	r.handlers.Range(func(_, value interface{}) bool {
		channels = append(channels, value.(Handler).Definition())
		return true
	})

	sort.Slice(channels, func(i, j int) bool {
		return channels[i].Name < channels[j].Name
	})
	return channels
}

// Invoke delivers call to the named channel. A handler that returns nil is
// treated as not implementing the method.
func (r *Registry) Invoke(ctx context.Context, name string, call types.MethodCall) (result *types.Result, err error) {
	handler, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrChannelNotFound, name)
	}

	callID := id.NewCallID()
	timer := monitoring.NewTimer(r.metrics, name, methodLabel(handler.Definition(), call.Method))
	defer func() {
		if p := recover(); p != nil {
			r.logger.Ctx(ctx).Error("Channel handler panicked",
				zap.String("call_id", callID.String()),
				zap.String("channel", name),
				zap.String("method", call.Method),
				zap.Any("panic", p),
			)
			result = types.Failure("INTERNAL", fmt.Sprintf("handler panic: %v", p), nil)
		}
		timer.Stop(string(result.Status))
	}()

	result = handler.Handle(ctx, call)
	if result == nil {
		result = types.NotImplemented()
	}

	r.logger.Ctx(ctx).Debug("Channel call",
		zap.String("call_id", callID.String()),
		zap.String("channel", name),
		zap.String("method", call.Method),
		zap.String("status", string(result.Status)),
	)
	return result, nil
}

// methodLabel bounds metric cardinality to the methods a channel declares
func methodLabel(def types.Channel, method string) string {
	if def.HasMethod(method) {
		return method
	}
	return UnknownMethod
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	var total, totalMethods int
	categories := make(map[string]int)

	r.handlers.Range(func(_, value interface{}) bool {
		def := value.(Handler).Definition()
		total++
		totalMethods += len(def.Methods)
		categories[string(def.Category)]++
		return true
	})

	return map[string]interface{}{
		"total_channels": total,
		"total_methods":  totalMethods,
		"categories":     categories,
	}
}
