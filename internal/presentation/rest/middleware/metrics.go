package middleware

import (
	"time"

	otelinfra "payment-gateway/internal/infrastructure/observability/otel"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware メトリクス記録ミドルウェア
func MetricsMiddleware(metrics *otelinfra.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			ctx := c.Request().Context()
			method := c.Request().Method

			err := next(c)

			// 未定義ルートはパスの種類が無制限になるためまとめる
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			metrics.RecordRequest(ctx, method, path)
			metrics.RecordResponseTime(ctx, method, path, time.Since(start).Seconds())

			// 4xx, 5xxの場合のみ記録
			statusCode := c.Response().Status
			if err != nil || statusCode >= 400 {
				errorType := "client_error"
				if err != nil || statusCode >= 500 {
					errorType = "server_error"
				}
				metrics.RecordError(ctx, errorType)
			}

			return err
		}
	}
}
