package handler_test

import (
	"context"

	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/domain/alert"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/domain/customer"
	"github.com/stretchr/testify/mock"
)

type MockCustomerService struct {
	mock.Mock
}

func (_m *MockCustomerService) ListCustomers(ctx context.Context) ([]*customer.Customer, error) {
	ret := _m.Called(ctx)

	var r0 []*customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) GetCustomer(ctx context.Context, customerID string) (*customer.Customer, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) UpdateStatus(ctx context.Context, customerID string, status customer.Status) (*customer.Customer, error) {
	ret := _m.Called(ctx, customerID, status)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

type MockAlertService struct {
	mock.Mock
}

func (_m *MockAlertService) RaiseAlert(ctx context.Context, customerID, riskScore string) (*alert.Alert, error) {
	ret := _m.Called(ctx, customerID, riskScore)

	var r0 *alert.Alert
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*alert.Alert)
	}
	return r0, ret.Error(1)
}
