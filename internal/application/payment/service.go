package payment

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"payment-gateway/internal/domain/payment"
	otelinfra "payment-gateway/internal/infrastructure/observability/otel"
)

// PaymentApplicationService 決済アプリケーションサービス
type PaymentApplicationService struct {
	gateway         payment.PaymentGateway
	defaultCurrency string
	logger          *otelinfra.Logger
	metrics         *otelinfra.Metrics
	tracer          trace.Tracer
}

// NewPaymentApplicationService 新しいPaymentApplicationServiceを作成
func NewPaymentApplicationService(
	gateway payment.PaymentGateway,
	defaultCurrency string,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *PaymentApplicationService {
	return &PaymentApplicationService{
		gateway:         gateway,
		defaultCurrency: defaultCurrency,
		logger:          logger,
		metrics:         metrics,
		tracer:          otel.Tracer("payment-service"),
	}
}

// CreatePaymentIntent PaymentIntentを作成してクライアントシークレットを返す
func (s *PaymentApplicationService) CreatePaymentIntent(ctx context.Context, req *CreatePaymentIntentRequest) (*CreatePaymentIntentResponse, error) {
	ctx, span := s.tracer.Start(ctx, "PaymentApplicationService.CreatePaymentIntent")
	defer span.End()

	// バリデーション（不正な場合は外部APIを呼び出さない）
	paymentReq, err := payment.NewPaymentRequest(req.Amount, req.Currency, s.defaultCurrency)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.metrics.RecordPaymentIntent(ctx, "create", otelinfra.OutcomeRejected)
		s.logger.Warn(ctx, "Rejected payment intent request", map[string]interface{}{
			"error":    err.Error(),
			"currency": req.Currency,
		})
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("amount", paymentReq.MinorUnits()),
		attribute.String("currency", paymentReq.Currency()),
	)

	s.logger.Info(ctx, "Creating payment intent", map[string]interface{}{
		"amount":   paymentReq.MinorUnits(),
		"currency": paymentReq.Currency(),
	})

	pi, err := s.gateway.CreatePaymentIntent(ctx, paymentReq)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.metrics.RecordPaymentIntent(ctx, "create", otelinfra.OutcomeFailure)
		s.logger.Error(ctx, "Failed to create payment intent", err, map[string]interface{}{
			"amount":   paymentReq.MinorUnits(),
			"currency": paymentReq.Currency(),
		})
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	span.SetAttributes(attribute.String("payment_intent_id", pi.ID))
	s.metrics.RecordPaymentIntent(ctx, "create", otelinfra.OutcomeSuccess)
	s.metrics.RecordPaymentIntentAmount(ctx, paymentReq.Currency(), paymentReq.MinorUnits())

	s.logger.Info(ctx, "Payment intent created", map[string]interface{}{
		"payment_intent_id": pi.ID,
		"status":            pi.Status.String(),
	})

	return &CreatePaymentIntentResponse{
		PaymentIntentID: pi.ID,
		ClientSecret:    pi.ClientSecret,
		Amount:          paymentReq.MinorUnits(),
		Currency:        paymentReq.Currency(),
	}, nil
}

// ConfirmPayment PaymentIntentの現在の状態を取得（キャッシュせず毎回外部APIを参照）
func (s *PaymentApplicationService) ConfirmPayment(ctx context.Context, req *ConfirmPaymentRequest) (*ConfirmPaymentResponse, error) {
	ctx, span := s.tracer.Start(ctx, "PaymentApplicationService.ConfirmPayment")
	defer span.End()

	id := strings.TrimSpace(req.PaymentIntentID)
	if id == "" {
		err := payment.ErrMissingPaymentIntentID
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.metrics.RecordPaymentIntent(ctx, "retrieve", otelinfra.OutcomeRejected)
		return nil, err
	}

	span.SetAttributes(attribute.String("payment_intent_id", id))

	pi, err := s.gateway.RetrievePaymentIntent(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.metrics.RecordPaymentIntent(ctx, "retrieve", otelinfra.OutcomeFailure)
		s.logger.Error(ctx, "Failed to retrieve payment intent", err, map[string]interface{}{
			"payment_intent_id": id,
		})
		return nil, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}

	final := pi.Status.IsFinal()
	span.SetAttributes(
		attribute.String("status", pi.Status.String()),
		attribute.Bool("final", final),
	)
	s.metrics.RecordPaymentIntent(ctx, "retrieve", otelinfra.OutcomeSuccess)
	s.logger.Info(ctx, "Payment intent retrieved", map[string]interface{}{
		"payment_intent_id": pi.ID,
		"status":            pi.Status.String(),
		"final":             final,
	})

	return &ConfirmPaymentResponse{
		Status: pi.Status.String(),
		Amount: pi.Amount,
		Final:  final,
	}, nil
}
