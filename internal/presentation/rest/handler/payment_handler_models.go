package handler

import "github.com/shopspring/decimal"

// CreatePaymentIntentRequest PaymentIntent作成リクエスト
// @Description 金額は主通貨単位（例: 19.99）。currency省略時はサーバー既定の通貨
type CreatePaymentIntentRequest struct {
	Amount   decimal.NullDecimal `json:"amount" swaggertype:"number" example:"19.99"`
	Currency string              `json:"currency,omitempty" example:"usd"`
}

// CreatePaymentIntentResponse PaymentIntent作成レスポンス
// @Description クライアントで決済を完了するためのシークレット
type CreatePaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret" example:"pi_123_secret_abc"`
}

// ConfirmPaymentRequest PaymentIntent状態確認リクエスト
// @Description 状態を確認するPaymentIntentのID
type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId" example:"pi_123"`
}

// ConfirmPaymentResponse PaymentIntent状態確認レスポンス
// @Description 現在の状態と最小通貨単位の金額
type ConfirmPaymentResponse struct {
	Status string `json:"status" example:"succeeded"`
	Amount int64  `json:"amount" example:"1999"`
}

// ErrorResponse エラーレスポンス
type ErrorResponse struct {
	Error string `json:"error" example:"amount must be a positive number"`
}
