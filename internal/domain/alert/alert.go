package alert

import (
	"time"

	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/pkg/apperrors"
	"github.com/google/uuid"
)

const missingFieldsMessage = "Missing required fields"

// Alert flags a customer whose loan was approved despite a high risk score.
type Alert struct {
	ID         string
	CustomerID string
	RiskScore  string
	CreatedAt  time.Time
}

// NewAlert takes both values as already rendered text. Whitespace-only values
// are accepted.
func NewAlert(customerID, riskScore string) (*Alert, error) {
	if customerID == "" || riskScore == "" {
		return nil, apperrors.NewValidationError("", missingFieldsMessage)
	}
	return &Alert{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		RiskScore:  riskScore,
		CreatedAt:  time.Now(),
	}, nil
}

func (a *Alert) Message() string {
	return "ALERT: High-risk customer " + a.CustomerID +
		" with risk score " + a.RiskScore + " was approved"
}
