// Package grpc runs the gRPC listener. It hosts grpc.health.v1 and any
// services registered by collaborators, all behind the bearer-token guard
// except the methods on the public allowlist.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// TokenResolver turns a bearer token into a principal id.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string, mustExist bool) (string, error)
}

// publicMethods never require a token.
var publicMethods = map[string]bool{
	healthpb.Health_Check_FullMethodName: true,
	healthpb.Health_Watch_FullMethodName: true,
}

type GRPCServer struct {
	address   string
	resolver  TokenResolver
	strict    bool
	logger    logging.Logger
	health    *health.Server
	registers []func(grpc.ServiceRegistrar)
}

func NewGRPCServer(a string, l logging.Logger, resolver TokenResolver, strict bool) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		resolver: resolver,
		strict:   strict,
		health:   health.NewServer(),
	}
}

// Register adds a service to be hosted next to health. Must be called before Run.
func (s *GRPCServer) Register(fn func(grpc.ServiceRegistrar)) {
	s.registers = append(s.registers, fn)
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.accessTokenInterceptor),
		grpc.ChainStreamInterceptor(s.accessTokenStreamInterceptor),
	)

	healthpb.RegisterHealthServer(srv, s.health)
	for _, register := range s.registers {
		register(srv)
	}
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
