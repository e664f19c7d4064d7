package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestServer_ServesHTTPAndHealth(t *testing.T) {
	t.Parallel()

	httpLis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	grpcLis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
	srv := New(Options{HTTPAddr: httpLis.Addr().String(), GRPCAddr: grpcLis.Addr().String()}, handler)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.serve(ctx, httpLis, grpcLis)
	}()

	resp, err := http.Get("http://" + httpLis.Addr().String() + "/health")
	if err != nil {
		cancel()
		t.Fatalf("HTTP request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "OK" {
		cancel()
		t.Fatalf("unexpected HTTP response %d %q", resp.StatusCode, body)
	}

	conn, err := grpc.NewClient(grpcLis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		cancel()
		t.Fatalf("failed to dial gRPC: %v", err)
	}

	checkCtx, checkCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer checkCancel()

	res, err := healthpb.NewHealthClient(conn).Check(checkCtx, &healthpb.HealthCheckRequest{})
	if err != nil {
		_ = conn.Close()
		cancel()
		t.Fatalf("health check failed: %v", err)
	}
	if res.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		cancel()
		t.Fatalf("expected SERVING, got %v", res.GetStatus())
	}

	_ = conn.Close()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("server did not stop after cancellation")
	}
}

func TestServer_WithoutGRPC(t *testing.T) {
	t.Parallel()

	srv := New(Options{HTTPAddr: "127.0.0.1:0"}, http.NotFoundHandler())
	if srv.grpcServer != nil || srv.health != nil {
		t.Fatal("expected gRPC to stay disabled without an address")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := srv.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}
