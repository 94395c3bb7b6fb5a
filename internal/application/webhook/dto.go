package webhook

// HandleWebhookResponse Webhook処理結果
type HandleWebhookResponse struct {
	EventID    string
	EventType  string
	Kind       string
	Dispatched bool
}
