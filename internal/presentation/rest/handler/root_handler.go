package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RootMessage 稼働確認メッセージ
const RootMessage = "Payment gateway is running"

// Root 稼働確認ハンドラー
// @Summary 稼働確認
// @Tags system
// @Produce json
// @Success 200 {object} RootResponse
// @Router / [get]
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, RootResponse{Message: RootMessage})
}

// Health ヘルスチェックハンドラー
// @Summary ヘルスチェック
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
