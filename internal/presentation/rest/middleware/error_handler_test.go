package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"payment-gateway/internal/domain/payment"
	otelinfra "payment-gateway/internal/infrastructure/observability/otel"
)

func newTestLogger() *otelinfra.Logger {
	return otelinfra.NewLoggerWithWriter(noop.NewTracerProvider().Tracer("test"), io.Discard)
}

func TestErrorHandlerMiddleware_NoError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := ErrorHandlerMiddleware(newTestLogger())(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestErrorHandlerMiddleware_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "金額不正",
			err:        payment.ErrInvalidAmount,
			wantStatus: http.StatusBadRequest,
			wantError:  payment.ErrInvalidAmount.Error(),
		},
		{
			name:       "通貨不正",
			err:        payment.ErrInvalidCurrency,
			wantStatus: http.StatusBadRequest,
			wantError:  payment.ErrInvalidCurrency.Error(),
		},
		{
			name:       "PaymentIntent ID未指定",
			err:        payment.ErrMissingPaymentIntentID,
			wantStatus: http.StatusBadRequest,
			wantError:  payment.ErrMissingPaymentIntentID.Error(),
		},
		{
			name:       "外部APIエラーはメッセージをそのまま返す",
			err:        fmt.Errorf("failed to retrieve payment intent: %w", &payment.RemoteError{Message: "No such payment_intent: 'pi_123'", HTTPStatus: 404}),
			wantStatus: http.StatusInternalServerError,
			wantError:  "No such payment_intent: 'pi_123'",
		},
		{
			name:       "未定義ルート",
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantError:  "Route not found",
		},
		{
			name:       "許可されていないメソッドも404",
			err:        echo.ErrMethodNotAllowed,
			wantStatus: http.StatusNotFound,
			wantError:  "Route not found",
		},
		{
			name:       "EchoのHTTPエラー",
			err:        echo.NewHTTPError(http.StatusBadRequest, "invalid request body"),
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name:       "メッセージが文字列でないHTTPエラー",
			err:        echo.NewHTTPError(http.StatusRequestEntityTooLarge, map[string]string{"k": "v"}),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantError:  http.StatusText(http.StatusRequestEntityTooLarge),
		},
		{
			name:       "予期しないエラー",
			err:        errors.New("unexpected"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "unexpected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := ErrorHandlerMiddleware(newTestLogger())(func(c echo.Context) error {
				return tt.err
			})

			require.NoError(t, handler(c))
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, map[string]interface{}{"error": tt.wantError}, body)
		})
	}
}

func TestErrorHandlerMiddleware_CommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := ErrorHandlerMiddleware(newTestLogger())(func(c echo.Context) error {
		_ = c.String(http.StatusOK, "partial")
		return errors.New("late failure")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}

func TestNewHTTPErrorHandler(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(newTestLogger())

	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Route not found"}`, rec.Body.String())
}
