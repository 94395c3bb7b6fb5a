package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// 結果ラベル
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailure  = "failure"
	OutcomeIgnored  = "ignored"
)

// Metrics メトリクス定義
type Metrics struct {
	// PaymentIntent操作数（作成・取得）
	PaymentIntentCount metric.Int64Counter

	// 作成したPaymentIntentの金額（補助通貨単位）
	PaymentIntentAmount metric.Int64Histogram

	// 受信したWebhookイベント数
	WebhookEventCount metric.Int64Counter

	// リクエスト数
	RequestCount metric.Int64Counter

	// レスポンス時間
	ResponseTime metric.Float64Histogram

	// エラー数
	ErrorCount metric.Int64Counter
}

// NewMetrics 新しいMetricsを作成
func NewMetrics(meterName string) (*Metrics, error) {
	meter := otel.Meter(meterName)

	paymentIntentCount, err := meter.Int64Counter(
		"payment_intents_total",
		metric.WithDescription("Total number of payment intent operations"),
	)
	if err != nil {
		return nil, err
	}

	paymentIntentAmount, err := meter.Int64Histogram(
		"payment_intent_amount",
		metric.WithDescription("Amount of created payment intents in minor currency units"),
	)
	if err != nil {
		return nil, err
	}

	webhookEventCount, err := meter.Int64Counter(
		"webhook_events_total",
		metric.WithDescription("Total number of received webhook events"),
	)
	if err != nil {
		return nil, err
	}

	requestCount, err := meter.Int64Counter(
		"requests_total",
		metric.WithDescription("Total number of requests"),
	)
	if err != nil {
		return nil, err
	}

	responseTime, err := meter.Float64Histogram(
		"response_time_seconds",
		metric.WithDescription("Response time in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		PaymentIntentCount:  paymentIntentCount,
		PaymentIntentAmount: paymentIntentAmount,
		WebhookEventCount:   webhookEventCount,
		RequestCount:        requestCount,
		ResponseTime:        responseTime,
		ErrorCount:          errorCount,
	}, nil
}

// RecordPaymentIntent PaymentIntent操作を記録
func (m *Metrics) RecordPaymentIntent(ctx context.Context, operation, outcome string) {
	m.PaymentIntentCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("outcome", outcome),
		),
	)
}

// RecordPaymentIntentAmount 作成したPaymentIntentの金額を記録
func (m *Metrics) RecordPaymentIntentAmount(ctx context.Context, currency string, minorUnits int64) {
	m.PaymentIntentAmount.Record(ctx, minorUnits,
		metric.WithAttributes(
			attribute.String("currency", currency),
		),
	)
}

// RecordWebhookEvent Webhookイベントを記録
func (m *Metrics) RecordWebhookEvent(ctx context.Context, eventType, outcome string) {
	m.WebhookEventCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("event_type", eventType),
			attribute.String("outcome", outcome),
		),
	)
}

// RecordRequest リクエストを記録
func (m *Metrics) RecordRequest(ctx context.Context, method, path string) {
	m.RequestCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordResponseTime レスポンス時間を記録
func (m *Metrics) RecordResponseTime(ctx context.Context, method, path string, duration float64) {
	m.ResponseTime.Record(ctx, duration,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordError エラーを記録
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	m.ErrorCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("error_type", errorType),
		),
	)
}
