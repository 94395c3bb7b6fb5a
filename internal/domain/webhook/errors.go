package webhook

import "errors"

var (
	// ErrMissingSignature 署名ヘッダーが無いエラー
	ErrMissingSignature = errors.New("missing Stripe-Signature header")
	// ErrInvalidSignature 署名検証に失敗したエラー
	ErrInvalidSignature = errors.New("webhook signature verification failed")
)
