package customer

import (
	"context"

	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/pkg/apperrors"
)

var ErrNotFound = apperrors.NewNotFoundError("CUSTOMER_NOT_FOUND", "Customer not found")

// Repository persists the whole customer collection as one unit. There is no
// per-record access and no locking: a read followed by a write is not atomic.
type Repository interface {
	ReadAll(ctx context.Context) ([]*Customer, error)

	WriteAll(ctx context.Context, customers []*Customer) error
}
