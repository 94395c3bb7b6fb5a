package rest

import (
	"context"
	"errors"
	"net/http"

	paymentapp "payment-gateway/internal/application/payment"
	webhookapp "payment-gateway/internal/application/webhook"
	"payment-gateway/internal/infrastructure/config"
	otelinfra "payment-gateway/internal/infrastructure/observability/otel"
	"payment-gateway/internal/presentation/rest/handler"
	restmiddleware "payment-gateway/internal/presentation/rest/middleware"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	// webhookBodyLimit Webhookリクエストボディの上限
	webhookBodyLimit = "64K"
	// jsonBodyLimit JSON APIリクエストボディの上限
	jsonBodyLimit = "16K"
)

// Router REST APIルーター
type Router struct {
	echo           *echo.Echo
	paymentHandler *handler.PaymentHandler
	webhookHandler *handler.WebhookHandler
}

// NewRouter 新しいRouterを作成
func NewRouter(
	cfg *config.Config,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
	paymentService *paymentapp.PaymentApplicationService,
	webhookService *webhookapp.WebhookApplicationService,
) (*Router, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// ミドルウェアチェーンの外で発生したエラーも同じ形式で返す
	e.HTTPErrorHandler = restmiddleware.NewHTTPErrorHandler(logger)

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	setupMiddleware(e, cfg, logger, metrics)

	paymentHandler := handler.NewPaymentHandler(paymentService)
	webhookHandler := handler.NewWebhookHandler(webhookService, logger)

	setupRoutes(e, paymentHandler, webhookHandler)

	// Swagger UI / ReDoc統合
	SetupSwagger(e)

	return &Router{
		echo:           e,
		paymentHandler: paymentHandler,
		webhookHandler: webhookHandler,
	}, nil
}

// setupMiddleware ミドルウェアを設定
func setupMiddleware(e *echo.Echo, cfg *config.Config, logger *otelinfra.Logger, metrics *otelinfra.Metrics) {
	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	e.Use(restmiddleware.SecurityHeadersMiddleware())
	e.Use(restmiddleware.TracingMiddleware(cfg.OpenTelemetry.ServiceName))
	e.Use(restmiddleware.LoggingMiddleware(logger))
	e.Use(restmiddleware.MetricsMiddleware(metrics))

	// エラーハンドリングミドルウェア（最も内側）
	e.Use(restmiddleware.ErrorHandlerMiddleware(logger))
}

// setupRoutes ルーティングを設定
func setupRoutes(e *echo.Echo, paymentHandler *handler.PaymentHandler, webhookHandler *handler.WebhookHandler) {
	// Webhookは署名検証のため生のボディをそのまま読む
	e.POST("/webhook", webhookHandler.HandleWebhook, middleware.BodyLimit(webhookBodyLimit))

	// 決済関連エンドポイント
	jsonLimit := middleware.BodyLimit(jsonBodyLimit)
	e.POST("/create-payment-intent", paymentHandler.CreatePaymentIntent, jsonLimit)
	e.POST("/confirm-payment", paymentHandler.ConfirmPayment, jsonLimit)

	e.GET("/", handler.Root)
	e.GET("/health", handler.Health)
}

// Handler リクエストを処理するhttp.Handlerを返す
func (r *Router) Handler() http.Handler {
	return r.echo
}

// Start サーバーを起動
func (r *Router) Start(address string) error {
	return r.echo.Start(address)
}

// Shutdown 処理中のリクエストを待ってサーバーを停止
func (r *Router) Shutdown(ctx context.Context) error {
	return r.echo.Shutdown(ctx)
}
