package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	paymentapp "payment-gateway/internal/application/payment"
	webhookapp "payment-gateway/internal/application/webhook"
	"payment-gateway/internal/infrastructure/config"
	otelinfra "payment-gateway/internal/infrastructure/observability/otel"
	stripeinfra "payment-gateway/internal/infrastructure/stripe"
	grpcserver "payment-gateway/internal/presentation/grpc"
	"payment-gateway/internal/presentation/rest"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// OpenTelemetryの初期化
	tracerShutdown, err := otelinfra.InitTracer(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown tracer: %v", err)
		}
	}()

	meterShutdown, err := otelinfra.InitMeter(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize meter: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown meter: %v", err)
		}
	}()

	// ロガーとメトリクスの初期化
	tracer := otelinfra.Tracer(cfg.OpenTelemetry.ServiceName)
	logger := otelinfra.NewLogger(tracer).With(map[string]interface{}{
		"service":     cfg.OpenTelemetry.ServiceName,
		"environment": cfg.Environment,
	})
	metrics, err := otelinfra.NewMetrics(cfg.OpenTelemetry.ServiceName)
	if err != nil {
		log.Fatalf("Failed to create metrics: %v", err)
	}

	// Stripeアダプターの初期化
	gateway := stripeinfra.NewGateway(&cfg.Stripe, logger)
	verifier := stripeinfra.NewWebhookVerifier(cfg.Stripe.WebhookSecret, cfg.Stripe.WebhookTolerance)

	// アプリケーションサービスの初期化
	paymentAppService := paymentapp.NewPaymentApplicationService(
		gateway,
		cfg.Payment.DefaultCurrency,
		logger,
		metrics,
	)

	webhookAppService := webhookapp.NewWebhookApplicationService(
		verifier,
		webhookapp.NewLoggingPaymentEventListener(logger),
		logger,
		metrics,
	)

	// REST APIルーターの初期化
	router, err := rest.NewRouter(cfg, logger, metrics, paymentAppService, webhookAppService)
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}

	// gRPCヘルスチェックサーバーの初期化
	var grpcSrv *grpcserver.Server
	if cfg.GRPC.Enabled {
		grpcSrv, err = grpcserver.NewServer(cfg, logger)
		if err != nil {
			log.Fatalf("Failed to create gRPC server: %v", err)
		}
	}

	address := cfg.Server.Address()

	// グレースフルシャットダウンの設定
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// REST APIサーバーを別ゴルーチンで起動
	go func() {
		logger.Info(context.Background(), "REST API server starting", map[string]interface{}{
			"address": address,
		})
		if err := router.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(context.Background(), "REST API server error", err, nil)
			quit <- syscall.SIGTERM
		}
	}()

	// gRPCサーバーを別ゴルーチンで起動
	if grpcSrv != nil {
		go func() {
			if err := grpcSrv.Start(); err != nil {
				logger.Error(context.Background(), "gRPC server error", err, nil)
			}
		}()
	}

	// シグナルを待機
	<-quit
	logger.Info(context.Background(), "Shutting down servers", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := router.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "Error shutting down REST API server", err, nil)
	}

	if grpcSrv != nil {
		if err := grpcSrv.Stop(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, "Error shutting down gRPC server", err, nil)
		}
	}

	logger.Info(context.Background(), "Servers stopped", nil)
}
