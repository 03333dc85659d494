// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Components receive a *Logger, derive a child with Named, and log with
// structured fields. Trace identifiers attached to a context via WithFields
// are picked up by Ctx.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Server starting", zap.String("port", "8000"))
//	logger.Ctx(ctx).Warn("Volume enumeration failed", zap.Error(err))
package logging
