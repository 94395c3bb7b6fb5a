package middleware

import (
	"time"

	otelinfra "payment-gateway/internal/infrastructure/observability/otel"

	"github.com/labstack/echo/v4"
)

// LoggingMiddleware ログミドルウェア
func LoggingMiddleware(logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)

			logger.Info(req.Context(), "HTTP request started", map[string]interface{}{
				"method":      req.Method,
				"path":        req.URL.Path,
				"remote_addr": c.RealIP(),
				"user_agent":  req.UserAgent(),
				"request_id":  requestID,
			})

			err := next(c)

			fields := map[string]interface{}{
				"method":      req.Method,
				"path":        req.URL.Path,
				"status_code": c.Response().Status,
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  requestID,
			}

			// ErrorHandlerMiddlewareより外側にあるため、ここでのerrは書き込み失敗など
			if err != nil {
				logger.Error(c.Request().Context(), "HTTP request failed", err, fields)
			} else {
				logger.Info(c.Request().Context(), "HTTP request completed", fields)
			}

			return err
		}
	}
}
