package storage

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/drivy/backend/internal/domain/storage"
	"github.com/GriffinCanCode/drivy/backend/internal/shared/types"
)

const (
	// DefaultChannel is the channel the UI shell opens for storage queries
	DefaultChannel = "com.example.drivy/storage"

	MethodGetStoragePaths = "getStoragePaths"
)

// Provider answers storage queries from the UI shell
type Provider struct {
	name     string
	resolver *storage.Resolver
}

// New creates a storage channel handler. An empty name selects DefaultChannel.
func New(resolver *storage.Resolver, name string) *Provider {
	if name == "" {
		name = DefaultChannel
	}
	return &Provider{name: name, resolver: resolver}
}

// Definition returns channel metadata
func (p *Provider) Definition() types.Channel {
	return types.Channel{
		Name:        p.name,
		Description: "Mount roots of the storage volumes available to the application",
		Category:    types.CategoryStorage,
		Methods: []types.Method{
			{
				Name:        MethodGetStoragePaths,
				Description: "List the distinct mount roots of available volumes, primary first",
				Parameters:  []types.Parameter{},
				Returns:     "array<string>",
			},
		},
	}
}

// Handle runs a storage method. Unknown methods are not implemented; resolution
// itself never produces an error reply.
func (p *Provider) Handle(ctx context.Context, call types.MethodCall) *types.Result {
	switch call.Method {
	case MethodGetStoragePaths:
		return types.Success(p.resolver.Resolve(ctx))
	default:
		return types.NotImplemented()
	}
}

// DecodePaths reads the mount roots out of a getStoragePaths reply as it
// arrives over a transport, where the list is untyped
func DecodePaths(result *types.Result) ([]string, error) {
	if !result.IsSuccess() {
		status := types.Status("")
		if result != nil {
			status = result.Status
		}
		return nil, fmt.Errorf("%s returned %q", MethodGetStoragePaths, status)
	}

	switch v := result.Value.(type) {
	case []string:
		return v, nil
	case []interface{}:
		roots := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("mount root is %T", item)
			}
			roots = append(roots, s)
		}
		return roots, nil
	default:
		return nil, fmt.Errorf("result is %T", result.Value)
	}
}
