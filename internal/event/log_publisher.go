package event

import (
	"context"
	"log/slog"
	"os"
)

// LogEventPublisher records events in the application log instead of a broker.
type LogEventPublisher struct {
	logger *slog.Logger
}

var _ EventPublisher = (*LogEventPublisher)(nil)

func NewLogEventPublisher(logger *slog.Logger) *LogEventPublisher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewLogEventPublisher, using default stderr handler")
	}
	return &LogEventPublisher{logger: logger.With("component", "LogEventPublisher")}
}

func (p *LogEventPublisher) PublishCustomerStatusChanged(ctx context.Context, event CustomerStatusChangedEvent) error {
	p.logger.InfoContext(ctx, "Customer status changed",
		slog.String("routingKey", routingKeyCustomerStatusChanged),
		slog.String("customerId", event.CustomerID),
		slog.String("oldStatus", event.OldStatus),
		slog.String("newStatus", event.NewStatus),
	)
	return nil
}

func (p *LogEventPublisher) PublishRiskAlert(ctx context.Context, event RiskAlertEvent) error {
	p.logger.InfoContext(ctx, "Risk alert raised",
		slog.String("routingKey", routingKeyRiskAlertRaised),
		slog.String("alertId", event.AlertID),
		slog.String("customerId", event.CustomerID),
		slog.String("riskScore", event.RiskScore),
	)
	return nil
}
