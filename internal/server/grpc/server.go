// Package grpc exposes the server services over the moviedeck.v1.Catalog
// gRPC service.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/moviedeck/internal/api"
	"github.com/dmitrijs2005/moviedeck/internal/logging"
	"github.com/dmitrijs2005/moviedeck/internal/server/config"
	"github.com/dmitrijs2005/moviedeck/internal/server/metrics"
	"github.com/dmitrijs2005/moviedeck/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Services bundles the business logic served over gRPC.
type Services struct {
	Users   *services.UserService
	Catalog *services.CatalogService
	Posters *services.PosterService
}

type GRPCServer struct {
	address   string
	users     *services.UserService
	catalog   *services.CatalogService
	posters   *services.PosterService
	metrics   *metrics.Metrics
	limiter   *peerLimiter
	health    *health.Server
	logger    logging.Logger
	jwtSecret []byte
}

var _ api.CatalogServer = (*GRPCServer)(nil)

func NewGRPCServer(cfg *config.Config, l logging.Logger, svc Services, m *metrics.Metrics) *GRPCServer {
	return &GRPCServer{
		address:   cfg.EndpointAddrGRPC,
		logger:    l.With("module", "grpc_server"),
		users:     svc.Users,
		catalog:   svc.Catalog,
		posters:   svc.Posters,
		metrics:   m,
		limiter:   newPeerLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst),
		health:    health.NewServer(),
		jwtSecret: []byte(cfg.SecretKey),
	}
}

// NewServer builds a grpc.Server with the interceptor chain, the Catalog
// service and the standard health service registered.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(
		s.metrics.UnaryServerInterceptor,
		s.rateLimitInterceptor,
		s.accessTokenInterceptor,
	))
	srv := grpc.NewServer(opts...)

	api.RegisterCatalogServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv
}

// Run listens on the configured address until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	return srv.Serve(listen)
}
