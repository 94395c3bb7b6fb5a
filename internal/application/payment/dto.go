package payment

import "github.com/shopspring/decimal"

// CreatePaymentIntentRequest PaymentIntent作成リクエスト
type CreatePaymentIntentRequest struct {
	// Amount 主通貨単位の金額（nilは未指定）
	Amount   *decimal.Decimal
	Currency string
}

// CreatePaymentIntentResponse PaymentIntent作成レスポンス
type CreatePaymentIntentResponse struct {
	PaymentIntentID string
	ClientSecret    string
	Amount          int64
	Currency        string
}

// ConfirmPaymentRequest PaymentIntent状態確認リクエスト
type ConfirmPaymentRequest struct {
	PaymentIntentID string
}

// ConfirmPaymentResponse PaymentIntent状態確認レスポンス
type ConfirmPaymentResponse struct {
	Status string
	Amount int64
	// Final これ以上状態が変化しない（succeeded / canceled）
	Final bool
}
