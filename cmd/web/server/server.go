package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"users-page-service/cmd/web/di"
	"users-page-service/internal/config"
)

// Addrs holds the bound addresses of the three listeners
type Addrs struct {
	HTTP    string
	GRPC    string
	Gateway string
}

// Server runs the users page, the gRPC health server and the REST gateway
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	Gin    *http.Server
	GRPC   *grpc.Server
	Health *health.Server

	gateway *http.Server
	conn    *grpc.ClientConn
	addrs   Addrs
	ready   chan struct{}
	stop    sync.Once
	stopErr error
}

// New creates a new server instance
func New(cfg *config.Config, l *zap.Logger, c *di.Container) *Server {
	grpcServer, healthServer := SetupGRPC()

	return &Server{
		Config: cfg,
		Logger: l,
		Gin:    SetupGinServer(c.PageHandler, c.Templates, c.RateLimiter, ":"+cfg.App.HTTPPort, l),
		GRPC:   grpcServer,
		Health: healthServer,
		ready:  make(chan struct{}),
	}
}

// Ready is closed once every listener is bound and health reports SERVING
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addrs returns the bound listener addresses. Valid after Ready is closed.
func (s *Server) Addrs() Addrs {
	return s.addrs
}

// Start binds all listeners and serves until ctx is canceled or one server fails.
// Either way every server is shut down before Start returns.
func (s *Server) Start(ctx context.Context) error {
	listeners, err := s.listen(ctx)
	if err != nil {
		return err
	}
	grpcLis, ginLis, gatewayLis := listeners[0], listeners[1], listeners[2]

	_, grpcPort, _ := net.SplitHostPort(grpcLis.Addr().String())
	gateway, conn, err := SetupHTTPGateway("localhost:"+grpcPort, gatewayLis.Addr().String(), s.Logger)
	if err != nil {
		closeAll(listeners)
		return err
	}
	s.gateway, s.conn = gateway, conn
	s.addrs = Addrs{
		HTTP:    ginLis.Addr().String(),
		GRPC:    grpcLis.Addr().String(),
		Gateway: gatewayLis.Addr().String(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.Logger.Info("gRPC server running", zap.String("address", s.addrs.GRPC))
		if err := s.GRPC.Serve(grpcLis); err != nil {
			return fmt.Errorf("gRPC server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		s.Logger.Info("REST gateway running", zap.String("address", s.addrs.Gateway))
		return serve(s.gateway, gatewayLis, "gateway")
	})

	g.Go(func() error {
		s.Logger.Info("users page running", zap.String("address", s.addrs.HTTP))
		return serve(s.Gin, ginLis, "users page")
	})

	g.Go(func() error {
		<-gctx.Done()
		timeout := time.Duration(s.Config.App.ShutdownTimeoutSeconds) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	s.Health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.Health.SetServingStatus(HealthService, healthpb.HealthCheckResponse_SERVING)
	close(s.ready)

	return g.Wait()
}

// listen binds the gRPC, page and gateway listeners in that order
func (s *Server) listen(ctx context.Context) ([]net.Listener, error) {
	lc := net.ListenConfig{}
	addrs := []struct{ name, addr string }{
		{"gRPC", ":" + s.Config.App.GRPCPort},
		{"users page", s.Gin.Addr},
		{"gateway", ":" + s.Config.App.GatewayPort},
	}

	listeners := make([]net.Listener, 0, len(addrs))
	for _, a := range addrs {
		lis, err := lc.Listen(ctx, "tcp", a.addr)
		if err != nil {
			closeAll(listeners)
			return nil, fmt.Errorf("failed to listen for %s on %s: %w", a.name, a.addr, err)
		}
		listeners = append(listeners, lis)
	}
	return listeners, nil
}

// Shutdown stops all servers, waiting for in-flight requests until ctx expires.
// Only the first call does any work.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stop.Do(func() {
		s.Logger.Info("shutting down servers...")

		var errs []error
		s.Health.Shutdown()

		if err := s.Gin.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("users page shutdown: %w", err))
		}
		if s.gateway != nil {
			if err := s.gateway.Shutdown(ctx); err != nil {
				errs = append(errs, fmt.Errorf("gateway shutdown: %w", err))
			}
		}
		if s.conn != nil {
			if err := s.conn.Close(); err != nil {
				errs = append(errs, fmt.Errorf("gateway connection close: %w", err))
			}
		}

		s.GRPC.GracefulStop()
		s.stopErr = errors.Join(errs...)
	})
	return s.stopErr
}

func serve(srv *http.Server, lis net.Listener, name string) error {
	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server: %w", name, err)
	}
	return nil
}

func closeAll(listeners []net.Listener) {
	for _, lis := range listeners {
		_ = lis.Close()
	}
}
