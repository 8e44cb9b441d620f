package server

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"users-page-service/pkg/logger"
)

// HealthService is the service name reported by the health server
const HealthService = "users.page"

// SetupGRPC creates the gRPC server exposing the standard health service
func SetupGRPC() (*grpc.Server, *health.Server) {
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logger.RequestIDInterceptor(),
		),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	return grpcServer, healthServer
}
