package handler

import (
	"context"

	"payment-gateway/internal/domain/payment"
	"payment-gateway/internal/domain/webhook"

	"github.com/stretchr/testify/mock"
)

// MockPaymentGateway モック決済ゲートウェイ
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreatePaymentIntent(ctx context.Context, req *payment.PaymentRequest) (*payment.PaymentIntent, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentIntent), args.Error(1)
}

func (m *MockPaymentGateway) RetrievePaymentIntent(ctx context.Context, id string) (*payment.PaymentIntent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentIntent), args.Error(1)
}

// MockPaymentEventListener モック決済イベントリスナー
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
