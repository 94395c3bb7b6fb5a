package webhook

import "context"

// SignatureVerifier 生のリクエストボディと署名ヘッダーを検証してイベントを復元する
type SignatureVerifier interface {
	Verify(payload []byte, signature string) (*Event, error)
}

// PaymentEventListener 決済イベントの下流処理
type PaymentEventListener interface {
	OnPaymentSucceeded(ctx context.Context, event *Event) error
	OnPaymentFailed(ctx context.Context, event *Event) error
}
