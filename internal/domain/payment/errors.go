package payment

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount 金額が不正なエラー
	ErrInvalidAmount = errors.New("amount must be a positive number")
	// ErrInvalidCurrency 通貨コードが不正なエラー
	ErrInvalidCurrency = errors.New("currency must be a three-letter ISO 4217 code")
	// ErrMissingPaymentIntentID PaymentIntent IDが指定されていないエラー
	ErrMissingPaymentIntentID = errors.New("paymentIntentId is required")
)

// RemoteError 決済プロバイダー側で発生したエラー
// Messageはプロバイダーが返したメッセージをそのまま保持する
type RemoteError struct {
	Message    string
	Code       string
	HTTPStatus int
	Err        error
}

func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payment provider error (%s): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("payment provider error: %s", e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
