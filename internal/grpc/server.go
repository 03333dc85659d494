package grpc

import (
	"context"
	"errors"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/status"

	"github.com/GriffinCanCode/drivy/backend/internal/channel"
	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/tracing"
)

// Server serves the bridge service and the standard health service
type Server struct {
	grpc   *grpc.Server
	health *health.Server
	logger *logging.Logger
}

// NewServer builds a gRPC server over registry. metrics, tracer and logger may be nil.
func NewServer(registry *channel.Registry, metrics *monitoring.Metrics, tracer *tracing.Tracer, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}

	interceptors := []grpc.UnaryServerInterceptor{}
	if tracer != nil {
		interceptors = append(interceptors, tracing.GRPCUnaryInterceptor(tracer))
	}
	interceptors = append(interceptors, metricsInterceptor(metrics))

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(interceptors...),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    60 * time.Second,
			Timeout: 20 * time.Second,
		}),
		grpc.MaxRecvMsgSize(4*1024*1024),
	)

	srv.RegisterService(&ServiceDesc, NewBridgeService(registry))

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Server{
		grpc:   srv,
		health: hs,
		logger: logger.Named("grpc"),
	}
}

// Serve accepts connections on lis until Stop is called
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("Starting gRPC server", zap.String("addr", lis.Addr().String()))
	if err := s.grpc.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Stop marks the services as not serving and drains in-flight calls
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
	s.logger.Info("gRPC server stopped")
}

func metricsInterceptor(metrics *monitoring.Metrics) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		if metrics != nil {
			metrics.RecordGRPCCall(info.FullMethod, status.Code(err).String())
		}
		return resp, err
	}
}
