package handler

import (
	"net/http"

	paymentapp "payment-gateway/internal/application/payment"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// PaymentHandler 決済関連ハンドラー
type PaymentHandler struct {
	paymentService *paymentapp.PaymentApplicationService
}

// NewPaymentHandler 新しいPaymentHandlerを作成
func NewPaymentHandler(paymentService *paymentapp.PaymentApplicationService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// CreatePaymentIntent PaymentIntent作成ハンドラー
// @Summary PaymentIntentを作成
// @Description 金額を最小通貨単位に変換してStripeにPaymentIntentを作成し、client secretを返します
// @Tags payment
// @Accept json
// @Produce json
// @Param request body CreatePaymentIntentRequest true "PaymentIntent作成リクエスト"
// @Success 200 {object} CreatePaymentIntentResponse "作成成功"
// @Failure 400 {object} ErrorResponse "不正な金額または通貨"
// @Failure 500 {object} ErrorResponse "Stripe APIエラー"
// @Router /create-payment-intent [post]
func (h *PaymentHandler) CreatePaymentIntent(c echo.Context) error {
	var reqBody CreatePaymentIntentRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	// 未指定（nullを含む）はnilとして渡し、アプリケーション層で検証する
	var amount *decimal.Decimal
	if reqBody.Amount.Valid {
		amount = &reqBody.Amount.Decimal
	}

	resp, err := h.paymentService.CreatePaymentIntent(c.Request().Context(), &paymentapp.CreatePaymentIntentRequest{
		Amount:   amount,
		Currency: reqBody.Currency,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CreatePaymentIntentResponse{
		ClientSecret: resp.ClientSecret,
	})
}

// ConfirmPayment PaymentIntent状態確認ハンドラー
// @Summary PaymentIntentの状態を取得
// @Description StripeからPaymentIntentを取得し、状態と金額を返します
// @Tags payment
// @Accept json
// @Produce json
// @Param request body ConfirmPaymentRequest true "状態確認リクエスト"
// @Success 200 {object} ConfirmPaymentResponse "取得成功"
// @Failure 400 {object} ErrorResponse "paymentIntentId未指定"
// @Failure 500 {object} ErrorResponse "Stripe APIエラー"
// @Router /confirm-payment [post]
func (h *PaymentHandler) ConfirmPayment(c echo.Context) error {
	var reqBody ConfirmPaymentRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := h.paymentService.ConfirmPayment(c.Request().Context(), &paymentapp.ConfirmPaymentRequest{
		PaymentIntentID: reqBody.PaymentIntentID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ConfirmPaymentResponse{
		Status: resp.Status,
		Amount: resp.Amount,
	})
}
