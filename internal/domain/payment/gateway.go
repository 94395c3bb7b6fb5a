package payment

import "context"

// PaymentGateway 外部決済プロバイダーへのポート
type PaymentGateway interface {
	// CreatePaymentIntent 自動決済手段選択を有効にしたPaymentIntentを作成
	CreatePaymentIntent(ctx context.Context, req *PaymentRequest) (*PaymentIntent, error)
	// RetrievePaymentIntent PaymentIntentの現在の状態を取得
	RetrievePaymentIntent(ctx context.Context, id string) (*PaymentIntent, error)
}
