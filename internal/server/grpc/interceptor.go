package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	ctx, err := s.authorize(ctx, info.FullMethod)
	if err != nil {
		return nil, err
	}
	return handler(ctx, req)
}

func (s *GRPCServer) accessTokenStreamInterceptor(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	ctx, err := s.authorize(ss.Context(), info.FullMethod)
	if err != nil {
		return err
	}
	return handler(srv, &authorizedStream{ServerStream: ss, ctx: ctx})
}

// authorize returns ctx carrying the principal id, or an Unauthenticated
// status. Public methods pass through untouched.
func (s *GRPCServer) authorize(ctx context.Context, method string) (context.Context, error) {
	if publicMethods[method] {
		return ctx, nil
	}

	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(strings.ToLower(common.AuthorizationHeader)); len(values) > 0 {
			header = values[0]
		}
	}

	token, ok := common.ParseBearer(header)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	principalID, err := s.resolver.ResolveToken(ctx, token, s.strict)
	if err != nil {
		if errors.Is(err, common.ErrInvalidToken) {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}
		s.logger.Error(ctx, "token resolution failed", "method", method, "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return auth.WithPrincipal(ctx, principalID), nil
}

type authorizedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *authorizedStream) Context() context.Context { return s.ctx }
