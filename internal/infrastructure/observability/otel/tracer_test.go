package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"payment-gateway/internal/infrastructure/config"
)

func TestInitTracer_Disabled(t *testing.T) {
	cfg := &config.OpenTelemetryConfig{
		Enabled: false,
	}

	shutdown, err := InitTracer(cfg)
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	// 無効時でも伝播設定は行われる
	fields := otel.GetTextMapPropagator().Fields()
	assert.Contains(t, fields, "traceparent")
}

func TestInitTracer_Stdout(t *testing.T) {
	cfg := &config.OpenTelemetryConfig{
		Enabled:        true,
		TraceExporter:  "stdout",
		ServiceName:    "test-service",
		ServiceVersion: "1.0.0",
	}

	shutdown, err := InitTracer(cfg)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracer_UnsupportedExporter(t *testing.T) {
	cfg := &config.OpenTelemetryConfig{
		Enabled:        true,
		TraceExporter:  "unsupported",
		ServiceName:    "test-service",
		ServiceVersion: "1.0.0",
	}

	shutdown, err := InitTracer(cfg)
	assert.Error(t, err)
	assert.Nil(t, shutdown)
	assert.Contains(t, err.Error(), "unsupported trace exporter")
}

func TestTracer(t *testing.T) {
	tracer := Tracer("test-tracer")
	require.NotNil(t, tracer)

	_, span := tracer.Start(context.Background(), "test-span")
	assert.NotNil(t, span)
	span.End()
}
