package diskspace

import (
	"context"
	"errors"
	"testing"

	"github.com/shirou/gopsutil/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/drivy/backend/internal/domain/diskspace"
	"github.com/GriffinCanCode/drivy/backend/internal/shared/types"
)

func newProvider(usage diskspace.UsageFunc) *Provider {
	return New(diskspace.NewReader("/data", nil).WithUsage(usage), "")
}

func TestDiskSpaceMethods(t *testing.T) {
	p := newProvider(func(ctx context.Context, path string) (*disk.UsageStat, error) {
		return &disk.UsageStat{Path: path, Total: 32 << 30, Free: 5 << 20}, nil
	})

	tests := []struct {
		method string
		want   float64
	}{
		{MethodGetTotalDiskSpace, 32768},
		{MethodGetFreeDiskSpace, 5},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			result := p.Handle(context.Background(), types.MethodCall{Method: tt.method})
			require.True(t, result.IsSuccess())
			assert.Equal(t, tt.want, result.Value)
		})
	}
}

func TestDiskSpaceUnavailable(t *testing.T) {
	p := newProvider(func(ctx context.Context, path string) (*disk.UsageStat, error) {
		return nil, errors.New("no such file or directory")
	})

	result := p.Handle(context.Background(), types.MethodCall{Method: MethodGetFreeDiskSpace})

	require.True(t, result.IsError())
	assert.Equal(t, CodeUnavailable, result.Error.Code)
	assert.Contains(t, result.Error.Message, "no such file or directory")
	assert.Equal(t, map[string]interface{}{"path": "/data"}, result.Error.Details)
}

func TestDiskSpaceUnknownMethod(t *testing.T) {
	p := newProvider(nil)

	result := p.Handle(context.Background(), types.MethodCall{Method: "getUsedDiskSpace"})
	assert.True(t, result.IsNotImplemented())
}

func TestDiskSpaceDefinition(t *testing.T) {
	def := newProvider(nil).Definition()
	assert.Equal(t, DefaultChannel, def.Name)
	assert.True(t, def.HasMethod(MethodGetTotalDiskSpace))
	assert.True(t, def.HasMethod(MethodGetFreeDiskSpace))
}
