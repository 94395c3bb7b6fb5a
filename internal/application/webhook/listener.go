package webhook

import (
	"context"

	"payment-gateway/internal/domain/webhook"
	otelinfra "payment-gateway/internal/infrastructure/observability/otel"
)

// LoggingPaymentEventListener 決済イベントをログに記録するだけのリスナー
// 注文確定などの下流処理はこのインターフェースの別実装で行う
type LoggingPaymentEventListener struct {
	logger *otelinfra.Logger
}

var _ webhook.PaymentEventListener = (*LoggingPaymentEventListener)(nil)

// NewLoggingPaymentEventListener 新しいLoggingPaymentEventListenerを作成
func NewLoggingPaymentEventListener(logger *otelinfra.Logger) *LoggingPaymentEventListener {
	return &LoggingPaymentEventListener{
		logger: logger.With(map[string]interface{}{"component": "payment-event-listener"}),
	}
}

// OnPaymentSucceeded 決済成功
func (l *LoggingPaymentEventListener) OnPaymentSucceeded(ctx context.Context, event *webhook.Event) error {
	l.logger.Info(ctx, "Payment succeeded", map[string]interface{}{
		"payment_intent_id": event.ObjectID,
		"amount":            event.Amount,
		"currency":          event.Currency,
	})
	return nil
}

// OnPaymentFailed 決済失敗
func (l *LoggingPaymentEventListener) OnPaymentFailed(ctx context.Context, event *webhook.Event) error {
	l.logger.Warn(ctx, "Payment failed", map[string]interface{}{
		"payment_intent_id": event.ObjectID,
		"failure_message":   event.FailureMessage,
	})
	return nil
}
