package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	otelinfra "payment-gateway/internal/infrastructure/observability/otel"
)

func TestMetricsMiddleware(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	defer otel.SetMeterProvider(noop.NewMeterProvider())

	metrics, err := otelinfra.NewMetrics("test")
	require.NoError(t, err)

	e := echo.New()
	e.Use(MetricsMiddleware(metrics))
	e.POST("/create-payment-intent", func(c echo.Context) error {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad"})
	})
	e.GET("/", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/create-payment-intent", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	byName := map[string]metricdata.Metrics{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		byName[m.Name] = m
	}

	requests, ok := byName["requests_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Len(t, requests.DataPoints, 2)

	errs, ok := byName["errors_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, errs.DataPoints, 1)
	assert.Equal(t, int64(1), errs.DataPoints[0].Value)
	v, _ := errs.DataPoints[0].Attributes.Value(attribute.Key("error_type"))
	assert.Equal(t, "client_error", v.AsString())
}
