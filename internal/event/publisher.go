package event

import (
	"context"
	"time"
)

const (
	routingKeyCustomerStatusChanged = "customer.status.changed"
	routingKeyRiskAlertRaised       = "customer.risk.alert"
	publisherAppID                  = "credit-risk-analytics-server"
)

type EventPublisher interface {
	PublishCustomerStatusChanged(ctx context.Context, event CustomerStatusChangedEvent) error
	PublishRiskAlert(ctx context.Context, event RiskAlertEvent) error
}

type CustomerStatusChangedEvent struct {
	CustomerID string    `json:"customerId"`
	OldStatus  string    `json:"oldStatus"`
	NewStatus  string    `json:"newStatus"`
	Timestamp  time.Time `json:"timestamp"`
}

type RiskAlertEvent struct {
	AlertID    string    `json:"alertId"`
	CustomerID string    `json:"customerId"`
	RiskScore  string    `json:"riskScore"`
	Timestamp  time.Time `json:"timestamp"`
}
