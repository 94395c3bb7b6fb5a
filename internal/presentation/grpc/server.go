package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"payment-gateway/internal/infrastructure/config"
	otelinfra "payment-gateway/internal/infrastructure/observability/otel"
	"payment-gateway/internal/presentation/grpc/interceptor"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
)

// ServiceName ヘルスチェックで報告するサービス名
const ServiceName = "payment.Gateway"

// Server gRPCヘルスチェックサーバー
type Server struct {
	server   *grpc.Server
	health   *health.Server
	listener net.Listener
	logger   *otelinfra.Logger
	port     int
}

// NewServer 新しいgRPCサーバーを作成
func NewServer(cfg *config.Config, logger *otelinfra.Logger) (*Server, error) {
	address := cfg.GRPC.Address()
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	return NewServerWithListener(cfg, logger, listener, cfg.GRPC.Port)
}

// NewServerWithListener リスナーを指定してgRPCサーバーを作成（テスト用）
func NewServerWithListener(cfg *config.Config, logger *otelinfra.Logger, listener net.Listener, port int) (*Server, error) {
	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(interceptor.LoggingUnaryInterceptor(logger)),
		grpc.ChainStreamInterceptor(interceptor.LoggingStreamInterceptor(logger)),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle:     15 * time.Second,
			MaxConnectionAge:      30 * time.Second,
			MaxConnectionAgeGrace: 5 * time.Second,
			Time:                  5 * time.Second,
			Timeout:               1 * time.Second,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}),
	}

	grpcServer := grpc.NewServer(opts...)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	// リフレクションを有効化（開発環境用）
	if cfg.IsDevelopment() {
		reflection.Register(grpcServer)
	}

	return &Server{
		server:   grpcServer,
		health:   healthServer,
		listener: listener,
		logger:   logger,
		port:     port,
	}, nil
}

// Start サーバーを起動
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "gRPC server starting", map[string]interface{}{
		"port": s.port,
	})
	if err := s.server.Serve(s.listener); err != nil {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

// Stop サーバーを停止
// 先にNOT_SERVINGを通知してからグレースフルシャットダウンする
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info(ctx, "Stopping gRPC server", nil)
	s.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		s.logger.Info(ctx, "gRPC server stopped", nil)
		return nil
	case <-ctx.Done():
		// タイムアウトした場合は強制停止
		s.logger.Warn(ctx, "gRPC server shutdown timeout, forcing stop", nil)
		s.server.Stop()
		return ctx.Err()
	}
}

// Port サーバーのポート番号を返す
func (s *Server) Port() int {
	return s.port
}
