package webhook

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"payment-gateway/internal/domain/webhook"
	otelinfra "payment-gateway/internal/infrastructure/observability/otel"
)

// MockSignatureVerifier モック署名検証
type MockSignatureVerifier struct {
	mock.Mock
}

func (m *MockSignatureVerifier) Verify(payload []byte, signature string) (*webhook.Event, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*webhook.Event), args.Error(1)
}

// MockPaymentEventListener モックイベントリスナー
type MockPaymentEventListener struct {
	mock.Mock
}

func (m *MockPaymentEventListener) OnPaymentSucceeded(ctx context.Context, event *webhook.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPaymentEventListener) OnPaymentFailed(ctx context.Context, event *webhook.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newTestService(t *testing.T, verifier webhook.SignatureVerifier, listener webhook.PaymentEventListener) *WebhookApplicationService {
	t.Helper()
	logger := otelinfra.NewLoggerWithWriter(otel.Tracer("test"), io.Discard)
	metrics, err := otelinfra.NewMetrics("test")
	require.NoError(t, err)
	return NewWebhookApplicationService(verifier, listener, logger, metrics)
}

func TestWebhookApplicationService_HandleWebhook(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)

	tests := []struct {
		name           string
		event          *webhook.Event
		verifyErr      error
		setupListener  func(*MockPaymentEventListener)
		wantErr        bool
		wantDispatched bool
		wantKind       string
	}{
		{
			name:  "正常系: 決済成功はリスナーへ通知",
			event: &webhook.Event{ID: "evt_1", Type: webhook.EventTypePaymentIntentSucceeded, ObjectID: "pi_1"},
			setupListener: func(m *MockPaymentEventListener) {
				m.On("OnPaymentSucceeded", mock.Anything, mock.MatchedBy(func(e *webhook.Event) bool {
					return e.ObjectID == "pi_1"
				})).Return(nil).Once()
			},
			wantDispatched: true,
			wantKind:       "payment_succeeded",
		},
		{
			name:  "正常系: 決済失敗はリスナーへ通知",
			event: &webhook.Event{ID: "evt_2", Type: webhook.EventTypePaymentIntentPaymentFailed, ObjectID: "pi_2"},
			setupListener: func(m *MockPaymentEventListener) {
				m.On("OnPaymentFailed", mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantDispatched: true,
			wantKind:       "payment_failed",
		},
		{
			name:           "正常系: 対象外イベントは受理のみ",
			event:          &webhook.Event{ID: "evt_3", Type: "charge.refunded"},
			setupListener:  func(m *MockPaymentEventListener) {},
			wantDispatched: false,
			wantKind:       "ignored",
		},
		{
			name:  "正常系: リスナーエラーでも受理",
			event: &webhook.Event{ID: "evt_4", Type: webhook.EventTypePaymentIntentSucceeded},
			setupListener: func(m *MockPaymentEventListener) {
				m.On("OnPaymentSucceeded", mock.Anything, mock.Anything).Return(errors.New("downstream unavailable")).Once()
			},
			wantDispatched: true,
			wantKind:       "payment_succeeded",
		},
		{
			name:          "異常系: 署名検証失敗はリスナーを呼ばない",
			verifyErr:     webhook.ErrInvalidSignature,
			setupListener: func(m *MockPaymentEventListener) {},
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := new(MockSignatureVerifier)
			if tt.verifyErr != nil {
				verifier.On("Verify", payload, "t=1,v1=abc").Return(nil, tt.verifyErr)
			} else {
				verifier.On("Verify", payload, "t=1,v1=abc").Return(tt.event, nil)
			}
			listener := new(MockPaymentEventListener)
			tt.setupListener(listener)

			service := newTestService(t, verifier, listener)
			resp, err := service.HandleWebhook(context.Background(), payload, "t=1,v1=abc")

			if tt.wantErr {
				assert.ErrorIs(t, err, tt.verifyErr)
				assert.Nil(t, resp)
				listener.AssertNotCalled(t, "OnPaymentSucceeded", mock.Anything, mock.Anything)
				listener.AssertNotCalled(t, "OnPaymentFailed", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.event.ID, resp.EventID)
			assert.Equal(t, tt.event.Type, resp.EventType)
			assert.Equal(t, tt.wantKind, resp.Kind)
			assert.Equal(t, tt.wantDispatched, resp.Dispatched)
			listener.AssertExpectations(t)
			verifier.AssertExpectations(t)
		})
	}
}

func TestLoggingPaymentEventListener(t *testing.T) {
	var buf bytes.Buffer
	logger := otelinfra.NewLoggerWithWriter(otel.Tracer("test"), &buf)
	listener := NewLoggingPaymentEventListener(logger)
	ctx := context.Background()

	require.NoError(t, listener.OnPaymentSucceeded(ctx, &webhook.Event{ObjectID: "pi_ok", Amount: 1999, Currency: "usd"}))
	require.NoError(t, listener.OnPaymentFailed(ctx, &webhook.Event{ObjectID: "pi_ng", FailureMessage: "Your card was declined."}))

	out := buf.String()
	assert.Contains(t, out, `"payment_intent_id":"pi_ok"`)
	assert.Contains(t, out, `"failure_message":"Your card was declined."`)
	assert.Contains(t, out, `"component":"payment-event-listener"`)
}
