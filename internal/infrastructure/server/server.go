package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apihttp "github.com/GriffinCanCode/drivy/backend/internal/api/http"
	"github.com/GriffinCanCode/drivy/backend/internal/api/middleware"
	"github.com/GriffinCanCode/drivy/backend/internal/api/ws"
	"github.com/GriffinCanCode/drivy/backend/internal/channel"
	"github.com/GriffinCanCode/drivy/backend/internal/domain/diskspace"
	"github.com/GriffinCanCode/drivy/backend/internal/domain/storage"
	bridgegrpc "github.com/GriffinCanCode/drivy/backend/internal/grpc"
	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/tracing"
	diskspaceProvider "github.com/GriffinCanCode/drivy/backend/internal/providers/diskspace"
	storageProvider "github.com/GriffinCanCode/drivy/backend/internal/providers/storage"
	systemProvider "github.com/GriffinCanCode/drivy/backend/internal/providers/system"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP and gRPC servers and their dependencies
type Server struct {
	router   *gin.Engine
	grpc     *bridgegrpc.Server
	registry *channel.Registry
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer
}

// Option customizes server construction
type Option func(*options)

type options struct {
	logger *logging.Logger
	source storage.Source
	usage  diskspace.UsageFunc
}

// WithLogger replaces the logger built from configuration
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithVolumeSource replaces the configured volume source
func WithVolumeSource(source storage.Source) Option {
	return func(o *options) { o.source = source }
}

// WithDiskUsage replaces the filesystem statistics query
func WithDiskUsage(usage diskspace.UsageFunc) Option {
	return func(o *options) { o.usage = usage }
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, version string, opts ...Option) (*Server, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		var err error
		logger, err = logging.New(logging.Config{
			Level:       cfg.Logging.Level,
			Development: cfg.Logging.Development,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	logger.Info("Initializing storage bridge",
		zap.String("port", cfg.Server.Port),
		zap.String("grpc_addr", cfg.GRPC.Address),
		zap.String("volume_source", cfg.Storage.Source),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("drivy-bridge", logger)

	source := o.source
	if source == nil {
		var err error
		source, err = NewVolumeSource(cfg.Storage)
		if err != nil {
			tracer.Close()
			return nil, fmt.Errorf("failed to create volume source: %w", err)
		}
	}

	resolver := storage.NewResolver(source, logger).
		WithMarker(cfg.Storage.Marker).
		WithMetrics(metrics)

	reader := diskspace.NewReader(cfg.DiskSpace.Path, logger)
	if o.usage != nil {
		reader.WithUsage(o.usage)
	}

	registry := channel.NewRegistry(logger, metrics)
	handlers := []channel.Handler{
		storageProvider.New(resolver, cfg.Storage.Channel),
		diskspaceProvider.New(reader, cfg.DiskSpace.Channel),
		systemProvider.NewProvider(version),
	}
	for _, h := range handlers {
		if err := registry.Register(h); err != nil {
			tracer.Close()
			return nil, fmt.Errorf("failed to register channel: %w", err)
		}
	}
	logger.Info("Registered channels", zap.Int("count", len(handlers)))

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		limiter, err := rateLimiter(cfg.RateLimit)
		if err != nil {
			tracer.Close()
			return nil, err
		}
		logger.Info("Rate limiting enabled",
			zap.String("mode", cfg.RateLimit.Mode),
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(limiter)
	}

	apihttp.NewHandlers(registry, metrics, logger, version).Routes(router)
	router.GET("/channels/stream", ws.NewHandler(registry, metrics, logger).HandleConnection)

	var grpcServer *bridgegrpc.Server
	if cfg.GRPC.Enabled {
		grpcServer = bridgegrpc.NewServer(registry, metrics, tracer, logger)
	}

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		grpc:     grpcServer,
		registry: registry,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
		tracer:   tracer,
	}, nil
}

// rateLimiter builds the limiter selected by RATE_LIMIT_MODE
func rateLimiter(cfg config.RateLimitConfig) (gin.HandlerFunc, error) {
	rl := middleware.DefaultRateLimitConfig()
	rl.RequestsPerSecond = cfg.RequestsPerSecond
	rl.Burst = cfg.Burst

	switch cfg.Mode {
	case config.RateLimitPerIP, "":
		return middleware.RateLimit(rl), nil
	case config.RateLimitGlobal:
		return middleware.GlobalRateLimit(rl), nil
	default:
		return nil, fmt.Errorf("unknown rate limit mode %q", cfg.Mode)
	}
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Registry returns the channel registry
func (s *Server) Registry() *channel.Registry {
	return s.registry
}

// Run serves HTTP and, when enabled, gRPC until ctx is cancelled or a
// listener fails, then shuts both down gracefully. Both listeners are bound
// before anything is served, so a bind failure leaves nothing running.
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	httpLis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	var grpcLis net.Listener
	if s.grpc != nil {
		grpcLis, err = net.Listen("tcp", s.config.GRPC.Address)
		if err != nil {
			httpLis.Close()
			return fmt.Errorf("failed to listen on %s: %w", s.config.GRPC.Address, err)
		}
	}

	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting HTTP server", zap.String("addr", httpLis.Addr().String()))
		if err := httpServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if grpcLis != nil {
		g.Go(func() error {
			if err := s.grpc.Serve(grpcLis); err != nil {
				return fmt.Errorf("grpc server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if s.grpc != nil {
			s.grpc.Stop()
		}
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Close releases background resources
func (s *Server) Close() error {
	s.tracer.Close()
	_ = s.logger.Sync()
	return nil
}
