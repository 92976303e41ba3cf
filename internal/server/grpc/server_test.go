package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func startBufServer(t *testing.T, s *GRPCServer) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestServe_HealthIsPublic(t *testing.T) {
	conn := startBufServer(t, newTestServer(&fakeResolver{}, false))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("unexpected status: %v", resp.GetStatus())
	}
}

// identityService is a minimal hand-built service whose only method echoes
// the principal id the guard attached to the context.
type identityService interface{}

const whoAmIMethod = "/test.Identity/WhoAmI"

func whoAmIHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		id, _ := auth.PrincipalFromContext(ctx)
		return wrapperspb.String(id), nil
	}
	if interceptor == nil {
		return h(ctx, in)
	}
	return interceptor(ctx, in, &grpc.UnaryServerInfo{Server: srv, FullMethod: whoAmIMethod}, h)
}

var identityServiceDesc = grpc.ServiceDesc{
	ServiceName: "test.Identity",
	HandlerType: (*identityService)(nil),
	Methods:     []grpc.MethodDesc{{MethodName: "WhoAmI", Handler: whoAmIHandler}},
	Metadata:    "identity_test.proto",
}

func TestServe_RegisteredServiceIsGuarded(t *testing.T) {
	s := newTestServer(&fakeResolver{}, false)
	s.Register(func(r grpc.ServiceRegistrar) {
		r.RegisterService(&identityServiceDesc, struct{}{})
	})
	conn := startBufServer(t, s)

	call := func(header string) (string, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if header != "" {
			ctx = metadata.AppendToOutgoingContext(ctx, "authorization", header)
		}
		out := &wrapperspb.StringValue{}
		err := conn.Invoke(ctx, whoAmIMethod, &emptypb.Empty{}, out)
		return out.GetValue(), err
	}

	_, err := call("")
	if status.Code(err) != codes.Unauthenticated || status.Convert(err).Message() != "missing token" {
		t.Fatalf("no token: expected Unauthenticated/missing token, got %v", err)
	}

	_, err = call("Bearer not-a-valid-jwt")
	if status.Code(err) != codes.Unauthenticated || status.Convert(err).Message() != "invalid token" {
		t.Fatalf("bad token: expected Unauthenticated/invalid token, got %v", err)
	}

	got, err := call("Bearer tok-u7")
	if err != nil {
		t.Fatalf("valid token: unexpected error: %v", err)
	}
	if got != "u7" {
		t.Fatalf("principal mismatch: got %q want %q", got, "u7")
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", logging.Nop{}, &fakeResolver{}, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", logging.Nop{}, &fakeResolver{}, false)

	if err := srv.Run(context.Background()); err == nil {
		t.Fatal("expected listen error")
	}
}
