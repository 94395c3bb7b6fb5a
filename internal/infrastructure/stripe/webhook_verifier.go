package stripe

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v81"
	stripewebhook "github.com/stripe/stripe-go/v81/webhook"

	"payment-gateway/internal/domain/webhook"
)

// WebhookVerifier Stripe署名方式でWebhookを検証する
type WebhookVerifier struct {
	secret    string
	tolerance time.Duration
}

var _ webhook.SignatureVerifier = (*WebhookVerifier)(nil)

// NewWebhookVerifier 新しいWebhookVerifierを作成
func NewWebhookVerifier(secret string, tolerance time.Duration) *WebhookVerifier {
	if tolerance <= 0 {
		tolerance = stripewebhook.DefaultTolerance
	}
	return &WebhookVerifier{
		secret:    secret,
		tolerance: tolerance,
	}
}

// Verify 生のペイロードと署名ヘッダーを検証してイベントを返す
func (v *WebhookVerifier) Verify(payload []byte, signature string) (*webhook.Event, error) {
	if signature == "" {
		return nil, fmt.Errorf("%w: %w", webhook.ErrInvalidSignature, webhook.ErrMissingSignature)
	}

	event, err := stripewebhook.ConstructEventWithOptions(payload, signature, v.secret, stripewebhook.ConstructEventOptions{
		Tolerance:                v.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", webhook.ErrInvalidSignature, err)
	}

	return toWebhookEvent(&event), nil
}

func toWebhookEvent(event *stripe.Event) *webhook.Event {
	out := &webhook.Event{
		ID:   event.ID,
		Type: string(event.Type),
	}
	if event.Data == nil {
		return out
	}

	if id, ok := event.Data.Object["id"].(string); ok {
		out.ObjectID = id
	}

	// PaymentIntentイベントのみ詳細を取り出す
	if webhook.KindOf(out.Type) == webhook.EventKindIgnored || len(event.Data.Raw) == 0 {
		return out
	}
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return out
	}
	out.Amount = pi.Amount
	out.Currency = string(pi.Currency)
	if pi.LastPaymentError != nil {
		out.FailureMessage = pi.LastPaymentError.Msg
	}
	return out
}
