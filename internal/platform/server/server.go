package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const shutdownTimeout = 10 * time.Second

// Options は HTTP / gRPC サーバーの待ち受け設定です。
type Options struct {
	HTTPAddr     string
	GRPCAddr     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server は HTTP サーバーと gRPC ヘルスチェックサーバーのライフサイクルを管理します。
type Server struct {
	opts       Options
	httpServer *http.Server
	grpcServer *grpc.Server
	health     *health.Server
}

// New は HTTP ハンドラーと gRPC ヘルスサービスを束ねたサーバーを構築します。
// GRPCAddr が空の場合 gRPC は起動しません。
func New(opts Options, handler http.Handler, grpcOpts ...grpc.ServerOption) *Server {
	s := &Server{
		opts: opts,
		httpServer: &http.Server{
			Addr:         opts.HTTPAddr,
			Handler:      handler,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
		},
	}

	if opts.GRPCAddr != "" {
		s.grpcServer = grpc.NewServer(grpcOpts...)
		s.health = health.NewServer()
		healthpb.RegisterHealthServer(s.grpcServer, s.health)
	}

	return s
}

// Run はサーバーを起動し、コンテキストがキャンセルされると安全に停止します。
func (s *Server) Run(ctx context.Context) error {
	httpLis, err := net.Listen("tcp", s.opts.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.opts.HTTPAddr, err)
	}
	return s.serve(ctx, httpLis, nil)
}

func (s *Server) serve(ctx context.Context, httpLis, grpcLis net.Listener) error {
	errCh := make(chan error, 2)

	if s.grpcServer != nil {
		if grpcLis == nil {
			lis, err := net.Listen("tcp", s.opts.GRPCAddr)
			if err != nil {
				_ = httpLis.Close()
				return fmt.Errorf("listen on %s: %w", s.opts.GRPCAddr, err)
			}
			grpcLis = lis
		}

		s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
		go func() {
			if err := s.grpcServer.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				errCh <- fmt.Errorf("serve gRPC: %w", err)
			}
		}()
		log.Printf("gRPC health listening on %s", grpcLis.Addr())
	}

	go func() {
		if err := s.httpServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("serve HTTP: %w", err)
		}
	}()
	log.Printf("HTTP server listening on %s", httpLis.Addr())

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	if err := s.Shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// Shutdown は処理中のリクエストを待ってからサーバーを停止します。
func (s *Server) Shutdown() error {
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.GracefulStop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown HTTP: %w", err)
	}
	return nil
}
