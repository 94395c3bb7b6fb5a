package stripe

import (
	"context"
	"errors"
	"net/http"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"

	"payment-gateway/internal/domain/payment"
	"payment-gateway/internal/infrastructure/config"
	otelinfra "payment-gateway/internal/infrastructure/observability/otel"
)

// Gateway Stripe APIを利用したPaymentGatewayの実装
type Gateway struct {
	api *client.API
}

var _ payment.PaymentGateway = (*Gateway)(nil)

// NewGateway 新しいGatewayを作成
// SDKのネットワークリトライは無効化する（失敗は呼び出し元へそのまま返す）
func NewGateway(cfg *config.StripeConfig, logger *otelinfra.Logger) *Gateway {
	httpClient := &http.Client{Timeout: cfg.APITimeout}
	leveledLogger := NewLeveledLogger(logger)

	apiConfig := &stripe.BackendConfig{
		HTTPClient:        httpClient,
		LeveledLogger:     leveledLogger,
		MaxNetworkRetries: stripe.Int64(0),
		EnableTelemetry:   stripe.Bool(false),
	}
	if cfg.APIURL != "" {
		apiConfig.URL = stripe.String(cfg.APIURL)
	}

	backends := &stripe.Backends{
		API: stripe.GetBackendWithConfig(stripe.APIBackend, apiConfig),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, &stripe.BackendConfig{
			HTTPClient:        httpClient,
			LeveledLogger:     leveledLogger,
			MaxNetworkRetries: stripe.Int64(0),
		}),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, &stripe.BackendConfig{
			HTTPClient:        httpClient,
			LeveledLogger:     leveledLogger,
			MaxNetworkRetries: stripe.Int64(0),
		}),
	}

	return &Gateway{
		api: client.New(cfg.SecretKey, backends),
	}
}

// CreatePaymentIntent PaymentIntentを作成
func (g *Gateway) CreatePaymentIntent(ctx context.Context, req *payment.PaymentRequest) (*payment.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.MinorUnits()),
		Currency: stripe.String(req.Currency()),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, toRemoteError(err)
	}
	return toPaymentIntent(pi), nil
}

// RetrievePaymentIntent PaymentIntentを取得
func (g *Gateway) RetrievePaymentIntent(ctx context.Context, id string) (*payment.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, toRemoteError(err)
	}
	return toPaymentIntent(pi), nil
}

func toPaymentIntent(pi *stripe.PaymentIntent) *payment.PaymentIntent {
	return &payment.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       payment.IntentStatus(pi.Status),
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}
}

// toRemoteError Stripeのエラーをドメインのエラーに変換
// Stripeが返したメッセージはそのまま保持する
func toRemoteError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		msg := stripeErr.Msg
		if msg == "" {
			msg = http.StatusText(stripeErr.HTTPStatusCode)
		}
		return &payment.RemoteError{
			Message:    msg,
			Code:       string(stripeErr.Code),
			HTTPStatus: stripeErr.HTTPStatusCode,
			Err:        err,
		}
	}
	return &payment.RemoteError{
		Message: err.Error(),
		Err:     err,
	}
}
