package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/event"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/infrastructure/monitoring"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/pkg/apperrors"
)

const customerNotFound = "Customer not found in collection"

type CustomerService interface {
	ListCustomers(ctx context.Context) ([]*Customer, error)
	GetCustomer(ctx context.Context, customerID string) (*Customer, error)
	UpdateStatus(ctx context.Context, customerID string, status Status) (*Customer, error)
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   Repository
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewCustomerService(repo Repository, publisher event.EventPublisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	if publisher == nil {
		publisher = event.NewLogEventPublisher(logger)
	}

	return &customerService{
		repo:   repo,
		pub:    publisher,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*Customer, error) {
	s.logger.DebugContext(ctx, "Calling repository ReadAll")
	customers, err := s.repo.ReadAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		customers = []*Customer{}
	}

	s.logger.InfoContext(ctx, "Successfully retrieved customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID string) (*Customer, error) {
	logCtx := s.logger.With(slog.String("customerId", customerID))

	customers, err := s.repo.ReadAll(ctx)
	if err != nil {
		logCtx.ErrorContext(ctx, "Repository error reading customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %s: %w", customerID, err)
	}

	idx := FindByID(customers, customerID)
	if idx < 0 {
		logCtx.WarnContext(ctx, customerNotFound)
		return nil, ErrNotFound
	}

	logCtx.InfoContext(ctx, "Successfully retrieved customer")
	return customers[idx], nil
}

// UpdateStatus rewrites the whole collection with one record's status changed.
// Concurrent updates are not serialized; the last write wins.
func (s *customerService) UpdateStatus(ctx context.Context, customerID string, status Status) (*Customer, error) {
	logCtx := s.logger.With(slog.String("customerId", customerID), slog.String("status", string(status)))

	if !status.Valid() {
		logCtx.WarnContext(ctx, "Validation failed: unknown status")
		return nil, apperrors.NewValidationError("status", "Invalid status")
	}

	customers, err := s.repo.ReadAll(ctx)
	if err != nil {
		logCtx.ErrorContext(ctx, "Repository error reading customers for update", slog.Any("error", err))
		return nil, fmt.Errorf("failed to read customers for update: %w", err)
	}

	idx := FindByID(customers, customerID)
	if idx < 0 {
		logCtx.WarnContext(ctx, customerNotFound)
		return nil, ErrNotFound
	}

	target := customers[idx]
	oldStatus := target.Status
	if err := target.SetStatus(status); err != nil {
		return nil, err
	}

	if err := s.repo.WriteAll(ctx, customers); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to persist status update", slog.Any("error", err))
		return nil, fmt.Errorf("failed to update status of customer %s: %w", customerID, err)
	}

	monitoring.RecordStatusUpdate(string(status))
	logCtx.InfoContext(ctx, "Customer status updated", slog.String("previous_status", string(oldStatus)))

	s.publishStatusChanged(ctx, target, oldStatus)
	return target, nil
}

func (s *customerService) publishStatusChanged(ctx context.Context, cust *Customer, oldStatus Status) {
	evt := event.CustomerStatusChangedEvent{
		CustomerID: cust.CustomerID,
		OldStatus:  string(oldStatus),
		NewStatus:  string(cust.Status),
		Timestamp:  time.Now(),
	}
	if err := s.pub.PublishCustomerStatusChanged(ctx, evt); err != nil {
		if errors.Is(err, context.Canceled) {
			s.logger.WarnContext(ctx, "Status change event dropped, request cancelled", slog.String("customerId", cust.CustomerID))
			return
		}
		s.logger.ErrorContext(ctx, "Status updated, but FAILED to publish status change event", slog.String("customerId", cust.CustomerID), slog.Any("error", err))
	}
}
