package diskspace

import (
	"context"
	"errors"
	"testing"

	"github.com/shirou/gopsutil/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/resilience"
)

func fixedUsage(total, free uint64) UsageFunc {
	return func(ctx context.Context, path string) (*disk.UsageStat, error) {
		return &disk.UsageStat{Path: path, Total: total, Free: free, Used: total - free}, nil
	}
}

func TestReaderConvertsToMiB(t *testing.T) {
	r := NewReader("/data", nil).WithUsage(fixedUsage(64<<30, 3<<29))

	stats, err := r.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/data", stats.Path)
	assert.Equal(t, 65536.0, stats.TotalMB)
	assert.Equal(t, 1536.0, stats.FreeMB)

	total, err := r.Total(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 65536.0, total)

	free, err := r.Free(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1536.0, free)
}

func TestReaderFractionalMiB(t *testing.T) {
	r := NewReader("/data", nil).WithUsage(fixedUsage(1<<19, 1<<18))

	stats, err := r.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.5, stats.TotalMB)
	assert.Equal(t, 0.25, stats.FreeMB)
}

func TestReaderUsesConfiguredPath(t *testing.T) {
	var seen string
	r := NewReader("/mnt/data", nil).WithUsage(func(ctx context.Context, path string) (*disk.UsageStat, error) {
		seen = path
		return &disk.UsageStat{}, nil
	})

	_, err := r.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/mnt/data", seen)
	assert.Equal(t, "/mnt/data", r.Path())
}

func TestReaderFailure(t *testing.T) {
	r := NewReader("/data", nil).WithUsage(func(ctx context.Context, path string) (*disk.UsageStat, error) {
		return nil, errors.New("statfs: permission denied")
	})

	_, err := r.Read(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestReaderBreakerOpens(t *testing.T) {
	calls := 0
	r := NewReader("/data", nil).WithUsage(func(ctx context.Context, path string) (*disk.UsageStat, error) {
		calls++
		return nil, errors.New("io error")
	})

	for i := 0; i < 5; i++ {
		_, err := r.Free(context.Background())
		assert.ErrorIs(t, err, ErrUnavailable)
	}

	assert.Equal(t, 3, calls, "breaker stops querying after it opens")
	assert.Equal(t, resilience.StateOpen, r.breaker.State())
}
