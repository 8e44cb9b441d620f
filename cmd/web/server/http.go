package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// SetupHTTPGateway creates the REST gateway translating /healthz into gRPC health checks.
// The returned connection must be closed after the server stops.
func SetupHTTPGateway(grpcAddr string, httpAddr string, l *zap.Logger) (*http.Server, *grpc.ClientConn, error) {
	conn, err := grpc.NewClient(grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to dial gRPC server: %w", err)
	}

	mux := runtime.NewServeMux(
		runtime.WithHealthEndpointAt(healthpb.NewHealthClient(conn), "/healthz"),
	)

	l.Info("REST gateway configured", zap.String("address", httpAddr))

	return &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 2 * time.Second,
	}, conn, nil
}
