package grpcserver

import (
	"context"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/DInduwara/Flood-management-system/internal/auth"
	"github.com/DInduwara/Flood-management-system/internal/config"
	"github.com/DInduwara/Flood-management-system/internal/service"
)

const (
	healthCheckMethod = "/grpc.health.v1.Health/Check"
	healthWatchMethod = "/grpc.health.v1.Health/Watch"
)

// accessPolicy lists how each method treats tokens. UpdateSosRequest is left out
// so that it requires an operator token.
var accessPolicy = map[string]auth.Access{
	healthCheckMethod:      auth.AccessPublic,
	healthWatchMethod:      auth.AccessPublic,
	methodSubmitSosRequest: auth.AccessOptional,
	methodSubmitHelpOffer:  auth.AccessOptional,
	methodListReliefCamps:  auth.AccessOptional,
	methodListSosRequests:  auth.AccessOptional,
}

// NewServer builds a gRPC server exposing IntakeService and the standard health service.
func NewServer(secret string, intake *service.Intake, log *zap.Logger) *grpc.Server {
	if log == nil {
		log = zap.NewNop()
	}
	srv := grpc.NewServer(grpc.UnaryInterceptor(auth.NewUnaryAuthInterceptor(secret, accessPolicy)))

	RegisterIntakeServiceServer(srv, &Server{Intake: intake, Log: log})

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	return srv
}

// StartGRPC starts the gRPC server on the configured address and returns a shutdown function.
func StartGRPC(cfg *config.Config, intake *service.Intake, log *zap.Logger) (func(context.Context) error, error) {
	if cfg == nil {
		panic("config is required")
	}

	addr := cfg.GRPC.Address
	if addr == "" {
		addr = ":50051"
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	// Plaintext; TLS is expected to terminate in front of the service.
	srv := NewServer(cfg.Auth.JWTSecret, intake, log)

	go func() {
		if err := srv.Serve(lis); err != nil && log != nil {
			log.Error("grpc serve stopped", zap.Error(err))
		}
	}()

	return func(ctx context.Context) error {
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}
