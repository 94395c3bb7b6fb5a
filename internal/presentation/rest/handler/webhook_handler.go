package handler

import (
	"errors"
	"io"
	"net/http"

	webhookapp "payment-gateway/internal/application/webhook"
	"payment-gateway/internal/domain/webhook"
	otelinfra "payment-gateway/internal/infrastructure/observability/otel"

	"github.com/labstack/echo/v4"
)

// SignatureHeader Stripeが署名を付与するヘッダー
const SignatureHeader = "Stripe-Signature"

// WebhookHandler Webhook受信ハンドラー
type WebhookHandler struct {
	webhookService *webhookapp.WebhookApplicationService
	logger         *otelinfra.Logger
}

// NewWebhookHandler 新しいWebhookHandlerを作成
func NewWebhookHandler(webhookService *webhookapp.WebhookApplicationService, logger *otelinfra.Logger) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
		logger:         logger,
	}
}

// HandleWebhook Stripe Webhookハンドラー
// 署名は生のリクエストボディに対して検証するため、ボディのデコードは行わない
// @Summary Stripe Webhookを受信
// @Description Stripe-Signatureヘッダーを検証し、イベント種別に応じて処理します
// @Tags webhook
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Stripe署名ヘッダー"
// @Success 200 {object} WebhookResponse "受理"
// @Failure 400 {string} string "署名検証エラー"
// @Router /webhook [post]
func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}

	signature := c.Request().Header.Get(SignatureHeader)

	resp, err := h.webhookService.HandleWebhook(c.Request().Context(), payload, signature)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			return c.String(http.StatusBadRequest, "Webhook Error: "+err.Error())
		}
		return err
	}

	h.logger.Info(c.Request().Context(), "Webhook acknowledged", map[string]interface{}{
		"event_id":   resp.EventID,
		"event_type": resp.EventType,
		"event_kind": resp.Kind,
		"dispatched": resp.Dispatched,
	})

	return c.JSON(http.StatusOK, WebhookResponse{Received: true})
}
