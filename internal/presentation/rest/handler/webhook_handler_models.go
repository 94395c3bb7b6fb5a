package handler

// WebhookResponse Webhook受信レスポンス
// @Description 署名検証済みのイベントを受理したことを示す
type WebhookResponse struct {
	Received bool `json:"received" example:"true"`
}

// RootResponse 稼働確認レスポンス
type RootResponse struct {
	Message string `json:"message" example:"Payment gateway is running"`
}

// HealthResponse ヘルスチェックレスポンス
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
