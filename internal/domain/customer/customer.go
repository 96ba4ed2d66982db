package customer

import (
	"bytes"

	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/pkg/apperrors"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusReview   Status = "Review"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

var validStatuses = []Status{StatusReview, StatusApproved, StatusRejected}

func Statuses() []Status {
	out := make([]Status, len(validStatuses))
	copy(out, validStatuses)
	return out
}

func (s Status) Valid() bool {
	for _, v := range validStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseStatus is an exact, case-sensitive match against the status enumeration.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.Valid() {
		return "", apperrors.NewValidationError("status", "Invalid status")
	}
	return status, nil
}

// Amount is a currency value that serializes as a bare JSON number.
type Amount struct {
	decimal.Decimal
}

func NewAmount(value int64) Amount {
	return Amount{decimal.NewFromInt(value)}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}
	return a.Decimal.UnmarshalJSON(data)
}

func (a Amount) Equal(other Amount) bool {
	return a.Decimal.Equal(other.Decimal)
}

// RepaymentHistory holds one flag per period, 1 paid on time and 0 missed.
// The order is kept exactly as stored.
type RepaymentHistory []int

// Customer is one loan applicant record. A record read from storage also
// carries its stored document, so members this type does not model survive a
// rewrite of the collection.
type Customer struct {
	CustomerID           string           `json:"customerId" example:"CUST1001"`
	Name                 string           `json:"name" example:"Alice Johnson"`
	MonthlyIncome        Amount           `json:"monthlyIncome" swaggertype:"number" example:"6200"`
	MonthlyExpenses      Amount           `json:"monthlyExpenses" swaggertype:"number" example:"3500"`
	CreditScore          int              `json:"creditScore" example:"720"`
	OutstandingLoans     Amount           `json:"outstandingLoans" swaggertype:"number" example:"15000"`
	LoanRepaymentHistory RepaymentHistory `json:"loanRepaymentHistory" swaggertype:"array,integer"`
	AccountBalance       Amount           `json:"accountBalance" swaggertype:"number" example:"12000"`
	Status               Status           `json:"status" example:"Review"`

	raw          []byte
	storedStatus Status
}

func (c *Customer) SetStatus(status Status) error {
	if !status.Valid() {
		return apperrors.NewValidationError("status", "Invalid status")
	}
	c.Status = status
	return nil
}

// FindByID returns the index of the first record with the given id, or -1.
func FindByID(customers []*Customer, customerID string) int {
	for i, c := range customers {
		if c != nil && c.CustomerID == customerID {
			return i
		}
	}
	return -1
}
