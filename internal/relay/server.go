package relay

import (
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"

	v1 "github.com/inovacc/fieldlog/internal/api/v1"
)

// Server wraps the gRPC server, health service and document service for
// lifecycle management.
type Server struct {
	GRPCServer   *grpc.Server
	HealthServer *health.Server
	IdleTracker  *IdleTracker
	Service      *Service

	logger *slog.Logger
}

// NewServer creates a gRPC server with the interceptor chain, health service
// and the document service registered. If idleTimeout is > 0, the server
// tracks activity and signals shutdown after being idle.
func NewServer(svc *Service, idleTimeout time.Duration, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	idleTracker := NewIdleTracker(idleTimeout)

	unary := []grpc.UnaryServerInterceptor{
		recoveryInterceptor(logger),
		loggingInterceptor(logger),
		timeoutInterceptor(30 * time.Second),
	}

	stream := []grpc.StreamServerInterceptor{
		streamRecoveryInterceptor(logger),
		streamLoggingInterceptor(logger),
	}

	if idleTracker.IsEnabled() {
		unary = append([]grpc.UnaryServerInterceptor{activityInterceptor(idleTracker)}, unary...)
		stream = append([]grpc.StreamServerInterceptor{streamActivityInterceptor(idleTracker)}, stream...)
	}

	opts := []grpc.ServerOption{
		// activity -> recovery -> logging -> timeout
		grpc.ChainUnaryInterceptor(unary...),
		grpc.ChainStreamInterceptor(stream...),
		grpc.ConnectionTimeout(10 * time.Second),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle: 15 * time.Minute,
			Time:              5 * time.Minute,
			Timeout:           20 * time.Second,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             30 * time.Second,
			PermitWithoutStream: true,
		}),
		// Message size limits (4MB)
		grpc.MaxRecvMsgSize(4 * 1024 * 1024),
		grpc.MaxSendMsgSize(4 * 1024 * 1024),
	}

	srv := grpc.NewServer(opts...)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	v1.RegisterDocumentServiceServer(srv, svc)

	return &Server{
		GRPCServer:   srv,
		HealthServer: healthServer,
		IdleTracker:  idleTracker,
		Service:      svc,
		logger:       logger,
	}
}

// Serve accepts connections on lis until Shutdown.
func (s *Server) Serve(lis net.Listener) error {
	if s.IdleTracker.IsEnabled() {
		go s.IdleTracker.Start()
	}

	s.logger.Info("relay listening", "address", lis.Addr().String())

	return s.GRPCServer.Serve(lis)
}

// Shutdown marks the server NOT_SERVING, closes every subscription and stops
// gracefully, forcing the stop after timeout.
func (s *Server) Shutdown(timeout time.Duration) {
	s.IdleTracker.Stop()
	s.HealthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	s.Service.Close()

	stopChan := make(chan struct{})

	go func() {
		s.GRPCServer.GracefulStop()
		close(stopChan)
	}()

	select {
	case <-stopChan:
		s.logger.Info("relay stopped gracefully")
	case <-time.After(timeout):
		s.logger.Warn("timeout waiting for graceful shutdown, forcing stop")
		s.GRPCServer.Stop()
		<-stopChan
	}
}
