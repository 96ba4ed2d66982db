package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/domain/customer"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRequest = "Valid request"

func TestUpdateStatusRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		request UpdateStatusRequest
		wantErr bool
	}{
		{validRequest, UpdateStatusRequest{Status: "Approved"}, false},
		{"Review", UpdateStatusRequest{Status: "Review"}, false},
		{"Rejected", UpdateStatusRequest{Status: "Rejected"}, false},
		{"Empty status", UpdateStatusRequest{Status: ""}, true},
		{"Unknown status", UpdateStatusRequest{Status: "Pending"}, true},
		{"Wrong case", UpdateStatusRequest{Status: "approved"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrValidation))
				assert.Equal(t, "Invalid status", apperrors.PublicMessage(err, ""))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateStatusRequestToStatus(t *testing.T) {
	status, err := (&UpdateStatusRequest{Status: "Rejected"}).ToStatus()
	require.NoError(t, err)
	assert.Equal(t, customer.StatusRejected, status)

	_, err = (&UpdateStatusRequest{Status: "Closed"}).ToStatus()
	assert.Error(t, err)
}

func TestCreateAlertRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		request CreateAlertRequest
		wantErr bool
	}{
		{validRequest, CreateAlertRequest{CustomerID: "CUST1002", RiskScore: 87.0}, false},
		{"Negative score", CreateAlertRequest{CustomerID: "CUST1002", RiskScore: -1.0}, false},
		{"Text score", CreateAlertRequest{CustomerID: "CUST1002", RiskScore: "85"}, false},
		{"Numeric customerId", CreateAlertRequest{CustomerID: 1002.0, RiskScore: 85.0}, false},
		{"Blank customerId", CreateAlertRequest{CustomerID: " ", RiskScore: 85.0}, false},
		{"Text zero score", CreateAlertRequest{CustomerID: "CUST1002", RiskScore: "0"}, false},
		{"Object customerId", CreateAlertRequest{CustomerID: map[string]any{}, RiskScore: 85.0}, false},
		{"Missing customerId", CreateAlertRequest{RiskScore: 87.0}, true},
		{"Missing riskScore", CreateAlertRequest{CustomerID: "CUST1002"}, true},
		{"Zero riskScore", CreateAlertRequest{CustomerID: "CUST1002", RiskScore: 0.0}, true},
		{"Empty customerId", CreateAlertRequest{CustomerID: "", RiskScore: 87.0}, true},
		{"False riskScore", CreateAlertRequest{CustomerID: "CUST1002", RiskScore: false}, true},
		{"Empty request", CreateAlertRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "Missing required fields", apperrors.PublicMessage(err, ""))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateAlertRequestFields(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantCustomer string
		wantScore    string
	}{
		{"Strings", `{"customerId":"CUST1002","riskScore":"85"}`, "CUST1002", "85"},
		{"Numbers", `{"customerId":1002,"riskScore":87.5}`, "1002", "87.5"},
		{"Large number", `{"customerId":"CUST1","riskScore":1e21}`, "CUST1", "1000000000000000000000"},
		{"Boolean and array", `{"customerId":true,"riskScore":[1,"a"]}`, "true", "1,a"},
		{"Object", `{"customerId":{"id":7},"riskScore":90}`, `{"id":7}`, "90"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreateAlertRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			require.NoError(t, req.Validate())

			customerID, riskScore := req.Fields()
			assert.Equal(t, tt.wantCustomer, customerID)
			assert.Equal(t, tt.wantScore, riskScore)
		})
	}
}

func TestNewCustomerListResponse(t *testing.T) {
	empty := NewCustomerListResponse(nil)
	require.NotNil(t, empty)
	b, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	list := NewCustomerListResponse(append(customer.SeedCustomers(), nil))
	assert.Len(t, list, 5)
	assert.Equal(t, "CUST1001", list[0].CustomerID)
	assert.Equal(t, "CUST1005", list[4].CustomerID)
}
