package customer

import (
	"context"

	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/event"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (_m *MockRepository) ReadAll(ctx context.Context) ([]*Customer, error) {
	ret := _m.Called(ctx)

	var r0 []*Customer
	if rf, ok := ret.Get(0).(func(context.Context) []*Customer); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*Customer)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockRepository) WriteAll(ctx context.Context, customers []*Customer) error {
	ret := _m.Called(ctx, customers)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, []*Customer) error); ok {
		r0 = rf(ctx, customers)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

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
