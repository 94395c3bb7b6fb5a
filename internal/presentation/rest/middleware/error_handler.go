package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"payment-gateway/internal/domain/payment"
	otelinfra "payment-gateway/internal/infrastructure/observability/otel"
)

// MessageRouteNotFound 未定義ルートのエラーメッセージ
const MessageRouteNotFound = "Route not found"

// ErrorResponse エラーレスポンス
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandlerMiddleware エラーハンドリングミドルウェア
func ErrorHandlerMiddleware(logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			return HandleError(c, err, logger)
		}
	}
}

// NewHTTPErrorHandler ミドルウェアの外側で発生したエラー用のEchoエラーハンドラー
func NewHTTPErrorHandler(logger *otelinfra.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if herr := HandleError(c, err, logger); herr != nil {
			logger.Error(c.Request().Context(), "Failed to write error response", herr, nil)
		}
	}
}

// HandleError エラーを処理して適切なHTTPレスポンスを返す
func HandleError(c echo.Context, err error, logger *otelinfra.Logger) error {
	if c.Response().Committed {
		return nil
	}
	ctx := c.Request().Context()

	// 入力エラー（外部APIは呼び出していない）
	if errors.Is(err, payment.ErrInvalidAmount) ||
		errors.Is(err, payment.ErrInvalidCurrency) ||
		errors.Is(err, payment.ErrMissingPaymentIntentID) {
		logger.Warn(ctx, "Invalid payment request", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	// 決済プロバイダーのエラーはメッセージをそのまま返す
	var remoteErr *payment.RemoteError
	if errors.As(err, &remoteErr) {
		logger.Error(ctx, "Payment provider error", err, map[string]interface{}{
			"path":        c.Request().URL.Path,
			"remote_code": remoteErr.Code,
		})
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: remoteErr.Message})
	}

	// EchoのHTTPエラー
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Code == http.StatusNotFound || httpErr.Code == http.StatusMethodNotAllowed {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: MessageRouteNotFound})
		}
		logger.Warn(ctx, "HTTP error", map[string]interface{}{
			"status_code": httpErr.Code,
			"message":     httpErr.Message,
		})
		message, ok := httpErr.Message.(string)
		if !ok {
			message = http.StatusText(httpErr.Code)
		}
		return c.JSON(httpErr.Code, ErrorResponse{Error: message})
	}

	// 予期しないエラー
	logger.Error(ctx, "Internal server error", err, map[string]interface{}{
		"path": c.Request().URL.Path,
	})
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}
