// Package diskspace reports capacity and free space of the filesystem holding
// the application's data directory, in mebibytes.
package diskspace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/disk"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/resilience"
)

const mebibyte = 1 << 20

// ErrUnavailable is returned when filesystem statistics cannot be read
var ErrUnavailable = errors.New("disk statistics unavailable")

// UsageFunc reads filesystem statistics for a path
type UsageFunc func(ctx context.Context, path string) (*disk.UsageStat, error)

// Stats is one reading of the data filesystem, in MiB
type Stats struct {
	Path    string  `json:"path"`
	TotalMB float64 `json:"total_mb"`
	FreeMB  float64 `json:"free_mb"`
}

// Reader reads disk space for a fixed directory
type Reader struct {
	path    string
	usage   UsageFunc
	breaker *resilience.Breaker
	logger  *logging.Logger
}

// NewReader creates a reader for dir backed by gopsutil
func NewReader(dir string, logger *logging.Logger) *Reader {
	if logger == nil {
		logger = logging.NewNop()
	}
	log := logger.Named("diskspace")

	return &Reader{
		path:  dir,
		usage: disk.UsageWithContext,
		breaker: resilience.New("disk_usage", resilience.Settings{
			Timeout:     10 * time.Second,
			ReadyToTrip: resilience.ConsecutiveFailures(3),
			OnStateChange: func(name string, from, to resilience.State) {
				log.Warn("Circuit breaker state changed",
					zap.String("breaker", name),
					zap.Stringer("from", from),
					zap.Stringer("to", to),
				)
			},
		}),
		logger: log,
	}
}

// WithUsage replaces the statistics query
func (r *Reader) WithUsage(fn UsageFunc) *Reader {
	r.usage = fn
	return r
}

// Path returns the directory whose filesystem is measured
func (r *Reader) Path() string {
	return r.path
}

// Read returns total and free space of the data filesystem
func (r *Reader) Read(ctx context.Context) (*Stats, error) {
	usage, err := resilience.Call(ctx, r.breaker, func(ctx context.Context) (*disk.UsageStat, error) {
		return r.usage(ctx, r.path)
	})
	if err != nil {
		r.logger.Ctx(ctx).Warn("Failed to read disk usage",
			zap.String("path", r.path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, r.path, err)
	}

	return &Stats{
		Path:    r.path,
		TotalMB: toMiB(usage.Total),
		FreeMB:  toMiB(usage.Free),
	}, nil
}

// Total returns the filesystem capacity in MiB
func (r *Reader) Total(ctx context.Context) (float64, error) {
	s, err := r.Read(ctx)
	if err != nil {
		return 0, err
	}
	return s.TotalMB, nil
}

// Free returns the space available to the application in MiB
func (r *Reader) Free(ctx context.Context) (float64, error) {
	s, err := r.Read(ctx)
	if err != nil {
		return 0, err
	}
	return s.FreeMB, nil
}

func toMiB(bytes uint64) float64 {
	return float64(bytes) / mebibyte
}
