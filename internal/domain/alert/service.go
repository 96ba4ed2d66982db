package alert

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/event"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/infrastructure/monitoring"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/pkg/apperrors"
)

type AlertService interface {
	RaiseAlert(ctx context.Context, customerID, riskScore string) (*Alert, error)
}

var _ AlertService = (*alertService)(nil)

type alertService struct {
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewAlertService(publisher event.EventPublisher, logger *slog.Logger) AlertService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewAlertService, using default stderr handler")
	}
	if publisher == nil {
		publisher = event.NewLogEventPublisher(logger)
	}
	return &alertService{
		pub:    publisher,
		logger: logger.With(slog.String("component", "alertService")),
	}
}

// RaiseAlert logs the alert and hands it to the event publisher. The customer
// id is not checked against the store.
func (s *alertService) RaiseAlert(ctx context.Context, customerID, riskScore string) (*Alert, error) {
	a, err := NewAlert(customerID, riskScore)
	if err != nil {
		s.logger.WarnContext(ctx, "Validation failed: missing alert fields")
		return nil, err
	}

	s.logger.WarnContext(ctx, a.Message(),
		slog.String("alertId", a.ID),
		slog.String("customerId", a.CustomerID),
		slog.String("riskScore", a.RiskScore),
	)
	monitoring.RecordAlert()

	evt := event.RiskAlertEvent{
		AlertID:    a.ID,
		CustomerID: a.CustomerID,
		RiskScore:  a.RiskScore,
		Timestamp:  a.CreatedAt,
	}
	if err := s.pub.PublishRiskAlert(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish risk alert event", slog.String("alertId", a.ID), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrPublish, err)
	}

	return a, nil
}
