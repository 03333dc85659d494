package storage

import (
	"context"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/drivy/backend/internal/shared/paths"
)

// Dir is one app-specific external directory reported by the host.
// A nil *Dir stands for a volume that is unmounted or inaccessible.
type Dir struct {
	Path string
}

// Source enumerates volume candidates for the current application context
type Source interface {
	Name() string
	ExternalDirs(ctx context.Context) ([]*Dir, error)
}

// SourceFunc adapts a function to the Source interface
type SourceFunc func(ctx context.Context) ([]*Dir, error)

// Name implements Source
func (f SourceFunc) Name() string { return "func" }

// ExternalDirs implements Source
func (f SourceFunc) ExternalDirs(ctx context.Context) ([]*Dir, error) {
	return f(ctx)
}

// Resolver turns volume candidates into distinct mount roots
type Resolver struct {
	source  Source
	marker  string
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewResolver creates a resolver over source using the default marker
func NewResolver(source Source, logger *logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{
		source: source,
		marker: paths.Marker,
		logger: logger.Named("storage"),
	}
}

// WithMarker overrides the segment mount roots are cut at
func (r *Resolver) WithMarker(marker string) *Resolver {
	if marker != "" {
		r.marker = marker
	}
	return r
}

// WithMetrics enables resolution metrics
func (r *Resolver) WithMetrics(metrics *monitoring.Metrics) *Resolver {
	r.metrics = metrics
	return r
}

// Marker returns the segment mount roots are cut at
func (r *Resolver) Marker() string {
	return r.marker
}

// Resolve returns the distinct mount roots of the available volumes in host
// order. It never fails; an unavailable host yields an empty slice.
func (r *Resolver) Resolve(ctx context.Context) []string {
	log := r.logger.Ctx(ctx)

	dirs, err := r.source.ExternalDirs(ctx)
	if err != nil {
		log.Warn("Volume enumeration failed",
			zap.String("source", r.source.Name()),
			zap.Int("candidates", len(dirs)),
			zap.Error(err),
		)
		if r.metrics != nil {
			r.metrics.RecordSourceError(r.source.Name())
		}
	}

	roots, skipped := MountRoots(dirs, r.marker)

	log.Debug("Resolved mount roots",
		zap.Strings("roots", roots),
		zap.Int("candidates", len(dirs)),
		zap.Int("skipped", skipped),
	)
	if r.metrics != nil {
		r.metrics.RecordResolution(len(roots), skipped)
	}

	return roots
}

// MountRoots cuts every present candidate before marker and removes
// duplicates, keeping the first occurrence in place. Absent candidates
// (nil or with an empty path) are skipped and counted.
func MountRoots(dirs []*Dir, marker string) (roots []string, skipped int) {
	roots = make([]string, 0, len(dirs))
	seen := make(map[string]struct{}, len(dirs))

	for _, dir := range dirs {
		if dir == nil || dir.Path == "" {
			skipped++
			continue
		}

		root := paths.TruncateAt(dir.Path, marker)
		if _, dup := seen[root]; dup {
			continue
		}
		seen[root] = struct{}{}
		roots = append(roots, root)
	}

	return roots, skipped
}
