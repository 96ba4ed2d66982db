package dto

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/pkg/apperrors"
)

// CreateAlertRequest accepts any JSON type for both fields. A field counts as
// missing when it is absent, null, "", 0 or false.
type CreateAlertRequest struct {
	CustomerID any `json:"customerId" validate:"truthy" swaggertype:"string" example:"CUST1002"`
	RiskScore  any `json:"riskScore" validate:"truthy" swaggertype:"number" example:"87.5"`
}

func (r *CreateAlertRequest) Validate() error {
	if err := validatorInstance().Struct(r); err != nil {
		return apperrors.NewValidationError("", "Missing required fields")
	}
	return nil
}

// Fields returns both values as they read in the alert message: strings as
// sent, numbers in shortest decimal form.
func (r *CreateAlertRequest) Fields() (customerID, riskScore string) {
	return textValue(r.CustomerID), textValue(r.RiskScore)
}

func textValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		parts := make([]string, len(val))
		for i, elem := range val {
			parts[i] = textValue(elem)
		}
		return strings.Join(parts, ",")
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
