package system

import (
	"context"
	"runtime"
	"time"

	"github.com/GriffinCanCode/drivy/backend/internal/shared/types"
)

const (
	DefaultChannel = "drivy/system"

	MethodPing = "ping"
	MethodInfo = "info"
)

// Provider implements runtime information for the UI shell
type Provider struct {
	startTime time.Time
	version   string
}

// NewProvider creates a system channel handler
func NewProvider(version string) *Provider {
	return &Provider{
		startTime: time.Now(),
		version:   version,
	}
}

// Definition returns channel metadata
func (p *Provider) Definition() types.Channel {
	return types.Channel{
		Name:        DefaultChannel,
		Description: "Bridge availability and runtime information",
		Category:    types.CategorySystem,
		Methods: []types.Method{
			{
				Name:        MethodPing,
				Description: "Test bridge availability",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				Name:        MethodInfo,
				Description: "Get runtime information",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
		},
	}
}

// Handle runs a system method
func (p *Provider) Handle(ctx context.Context, call types.MethodCall) *types.Result {
	switch call.Method {
	case MethodPing:
		return p.ping()
	case MethodInfo:
		return p.info()
	default:
		return types.NotImplemented()
	}
}

func (p *Provider) ping() *types.Result {
	return types.Success(map[string]interface{}{
		"pong":      true,
		"timestamp": time.Now().Unix(),
	})
}

func (p *Provider) info() *types.Result {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return types.Success(map[string]interface{}{
		"version":        p.version,
		"go_version":     runtime.Version(),
		"os":             runtime.GOOS,
		"arch":           runtime.GOARCH,
		"cpus":           runtime.NumCPU(),
		"goroutines":     runtime.NumGoroutine(),
		"memory_alloc":   m.Alloc / 1024 / 1024, // MB
		"memory_sys":     m.Sys / 1024 / 1024,   // MB
		"uptime_seconds": time.Since(p.startTime).Seconds(),
	})
}
