package dto

import (
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/domain/customer"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/pkg/apperrors"
)

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Review Approved Rejected" example:"Approved"`
}

// Validate reports every failure with the same client message, whether the
// status is missing or outside the enumeration.
func (r *UpdateStatusRequest) Validate() error {
	if err := validatorInstance().Struct(r); err != nil {
		return apperrors.NewValidationError("status", "Invalid status")
	}
	return nil
}

func (r *UpdateStatusRequest) ToStatus() (customer.Status, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	return customer.ParseStatus(r.Status)
}

// NewCustomerListResponse never returns nil so an empty collection encodes as [].
// Records are returned as stored, including members the service does not model.
func NewCustomerListResponse(customers []*customer.Customer) []*customer.Customer {
	out := make([]*customer.Customer, 0, len(customers))
	for _, c := range customers {
		if c == nil {
			continue
		}
		out = append(out, c)
	}
	return out
}
