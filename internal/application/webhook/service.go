package webhook

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"payment-gateway/internal/domain/webhook"
	otelinfra "payment-gateway/internal/infrastructure/observability/otel"
)

// WebhookApplicationService Webhook受信アプリケーションサービス
//
// received -> verifying -> verified -> dispatched -> acknowledged
//                       \-> unverified -> rejected
type WebhookApplicationService struct {
	verifier webhook.SignatureVerifier
	listener webhook.PaymentEventListener
	logger   *otelinfra.Logger
	metrics  *otelinfra.Metrics
	tracer   trace.Tracer
}

// NewWebhookApplicationService 新しいWebhookApplicationServiceを作成
func NewWebhookApplicationService(
	verifier webhook.SignatureVerifier,
	listener webhook.PaymentEventListener,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *WebhookApplicationService {
	return &WebhookApplicationService{
		verifier: verifier,
		listener: listener,
		logger:   logger,
		metrics:  metrics,
		tracer:   otel.Tracer("webhook-service"),
	}
}

// HandleWebhook 署名を検証し、イベント種別に応じて処理を振り分ける
// 署名検証に失敗した場合のみエラーを返す。検証後のリスナーエラーはログに記録して受理扱いとする
func (s *WebhookApplicationService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*HandleWebhookResponse, error) {
	ctx, span := s.tracer.Start(ctx, "WebhookApplicationService.HandleWebhook")
	defer span.End()

	span.SetAttributes(attribute.Int("payload_bytes", len(payload)))

	event, err := s.verifier.Verify(payload, signature)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.metrics.RecordWebhookEvent(ctx, "unknown", otelinfra.OutcomeRejected)
		s.logger.Warn(ctx, "Webhook signature verification failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	kind := event.Kind()
	span.SetAttributes(
		attribute.String("event_id", event.ID),
		attribute.String("event_type", event.Type),
		attribute.String("event_kind", kind.String()),
	)

	resp := &HandleWebhookResponse{
		EventID:   event.ID,
		EventType: event.Type,
		Kind:      kind.String(),
	}

	fields := map[string]interface{}{
		"event_id":          event.ID,
		"event_type":        event.Type,
		"payment_intent_id": event.ObjectID,
	}

	var dispatchErr error
	switch kind {
	case webhook.EventKindPaymentSucceeded:
		s.logger.Info(ctx, "PaymentIntent succeeded", fields)
		dispatchErr = s.listener.OnPaymentSucceeded(ctx, event)
		resp.Dispatched = true
	case webhook.EventKindPaymentFailed:
		fields["failure_message"] = event.FailureMessage
		s.logger.Warn(ctx, "PaymentIntent failed", fields)
		dispatchErr = s.listener.OnPaymentFailed(ctx, event)
		resp.Dispatched = true
	case webhook.EventKindIgnored:
		s.logger.Debug(ctx, "Unhandled webhook event type", fields)
		s.metrics.RecordWebhookEvent(ctx, event.Type, otelinfra.OutcomeIgnored)
		return resp, nil
	default:
		panic(fmt.Sprintf("unexpected webhook event kind: %d", kind))
	}

	if dispatchErr != nil {
		span.RecordError(dispatchErr)
		s.metrics.RecordWebhookEvent(ctx, event.Type, otelinfra.OutcomeFailure)
		s.logger.Error(ctx, "Webhook event listener failed", dispatchErr, fields)
		return resp, nil
	}

	s.metrics.RecordWebhookEvent(ctx, event.Type, otelinfra.OutcomeSuccess)
	return resp, nil
}
