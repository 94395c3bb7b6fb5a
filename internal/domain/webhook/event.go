package webhook

// イベントタイプ
const (
	EventTypePaymentIntentSucceeded     = "payment_intent.succeeded"
	EventTypePaymentIntentPaymentFailed = "payment_intent.payment_failed"
)

// EventKind 分岐対象となるイベント種別
type EventKind int

const (
	// EventKindIgnored 受信のみで処理しないイベント
	EventKindIgnored EventKind = iota
	// EventKindPaymentSucceeded 決済成功
	EventKindPaymentSucceeded
	// EventKindPaymentFailed 決済失敗
	EventKindPaymentFailed
)

// KindOf イベントタイプ文字列から種別を判定
func KindOf(eventType string) EventKind {
	switch eventType {
	case EventTypePaymentIntentSucceeded:
		return EventKindPaymentSucceeded
	case EventTypePaymentIntentPaymentFailed:
		return EventKindPaymentFailed
	default:
		return EventKindIgnored
	}
}

// String 文字列表現を返す
func (k EventKind) String() string {
	switch k {
	case EventKindPaymentSucceeded:
		return "payment_succeeded"
	case EventKindPaymentFailed:
		return "payment_failed"
	default:
		return "ignored"
	}
}

// Event 署名検証済みのWebhookイベント
type Event struct {
	ID   string
	Type string
	// ObjectID data.object.id
	ObjectID string
	// FailureMessage 決済失敗時のエラーメッセージ（存在する場合）
	FailureMessage string
	Amount         int64
	Currency       string
}

// Kind イベント種別を返す
func (e *Event) Kind() EventKind {
	return KindOf(e.Type)
}
