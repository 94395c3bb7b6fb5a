package stripe

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v81"

	otelinfra "payment-gateway/internal/infrastructure/observability/otel"
)

// LeveledLogger stripe-goのログを構造化ロガーへ流す
type LeveledLogger struct {
	logger *otelinfra.Logger
}

var _ stripe.LeveledLoggerInterface = (*LeveledLogger)(nil)

// NewLeveledLogger 新しいLeveledLoggerを作成
func NewLeveledLogger(logger *otelinfra.Logger) *LeveledLogger {
	return &LeveledLogger{
		logger: logger.With(map[string]interface{}{"component": "stripe-go"}),
	}
}

// Debugf SDKのデバッグログは出力しない（リクエスト本文を含むため）
func (l *LeveledLogger) Debugf(format string, v ...interface{}) {}

// Infof Infoレベルのログを出力
func (l *LeveledLogger) Infof(format string, v ...interface{}) {
	l.logger.Info(context.Background(), fmt.Sprintf(format, v...), nil)
}

// Warnf Warnレベルのログを出力
func (l *LeveledLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(context.Background(), fmt.Sprintf(format, v...), nil)
}

// Errorf Errorレベルのログを出力
func (l *LeveledLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(context.Background(), fmt.Sprintf(format, v...), nil, nil)
}
