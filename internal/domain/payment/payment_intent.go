package payment

// IntentStatus 決済プロバイダー側のPaymentIntentステータス
type IntentStatus string

const (
	IntentStatusRequiresPaymentMethod IntentStatus = "requires_payment_method"
	IntentStatusRequiresConfirmation  IntentStatus = "requires_confirmation"
	IntentStatusRequiresAction        IntentStatus = "requires_action"
	IntentStatusProcessing            IntentStatus = "processing"
	IntentStatusRequiresCapture       IntentStatus = "requires_capture"
	IntentStatusCanceled              IntentStatus = "canceled"
	IntentStatusSucceeded             IntentStatus = "succeeded"
)

// String 文字列表現を返す
func (s IntentStatus) String() string {
	return string(s)
}

// IsFinal 終端状態かどうか
func (s IntentStatus) IsFinal() bool {
	return s == IntentStatusSucceeded || s == IntentStatusCanceled
}

// PaymentIntent 決済プロバイダー上の決済意図
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       IntentStatus
	Amount       int64
	Currency     string
}
