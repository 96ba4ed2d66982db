package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/domain/customer"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/infrastructure/monitoring"
)

// StatusSummaryJob counts customers per status and publishes the counts as gauges.
type StatusSummaryJob struct {
	customerService customer.CustomerService
	logger          *slog.Logger
}

func NewStatusSummaryJob(customerSvc customer.CustomerService, logger *slog.Logger) *StatusSummaryJob {
	if customerSvc == nil || logger == nil {
		panic("StatusSummaryJob dependencies cannot be nil")
	}
	return &StatusSummaryJob{
		customerService: customerSvc,
		logger:          logger.With("job", "StatusSummary"),
	}
}

func (j *StatusSummaryJob) Run(ctx context.Context) (map[customer.Status]int, error) {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting customer status summary job.")

	customers, err := j.customerService.ListCustomers(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list customers, aborting job.", slog.Any("error", err))
		return nil, fmt.Errorf("cannot run job, failed to list customers: %w", err)
	}

	counts := Summarize(customers)
	for status, count := range counts {
		monitoring.SetCustomersByStatus(string(status), count)
	}

	j.logger.InfoContext(ctx, "Customer status summary job finished.",
		slog.Int("total", len(customers)),
		slog.Int("review", counts[customer.StatusReview]),
		slog.Int("approved", counts[customer.StatusApproved]),
		slog.Int("rejected", counts[customer.StatusRejected]),
		slog.Int("unknown", counts[unknownStatus]),
		slog.Duration("duration", time.Since(startTime)),
	)
	return counts, nil
}

const unknownStatus customer.Status = "Unknown"

// Summarize always reports every known status and Unknown, including those
// with zero records, so each gauge is reset on every run. Records holding a
// value outside the enumeration are counted as Unknown.
func Summarize(customers []*customer.Customer) map[customer.Status]int {
	counts := make(map[customer.Status]int, 4)
	for _, s := range customer.Statuses() {
		counts[s] = 0
	}
	counts[unknownStatus] = 0
	for _, c := range customers {
		if c == nil {
			continue
		}
		if c.Status.Valid() {
			counts[c.Status]++
		} else {
			counts[unknownStatus]++
		}
	}
	return counts
}
