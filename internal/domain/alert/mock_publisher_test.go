package alert

import (
	"context"

	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/event"
	"github.com/stretchr/testify/mock"
)

type MockEventPublisher struct {
	mock.Mock
}

func (_m *MockEventPublisher) PublishCustomerStatusChanged(ctx context.Context, evt event.CustomerStatusChangedEvent) error {
	ret := _m.Called(ctx, evt)
	return ret.Error(0)
}

func (_m *MockEventPublisher) PublishRiskAlert(ctx context.Context, evt event.RiskAlertEvent) error {
	ret := _m.Called(ctx, evt)
	return ret.Error(0)
}
