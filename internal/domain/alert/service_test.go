package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/event"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/pkg/apperrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAlert(t *testing.T) {
	tests := []struct {
		name       string
		customerID string
		riskScore  string
		wantErr    bool
	}{
		{"Valid alert", "CUST1002", "82", false},
		{"Negative score is present", "CUST1002", "-1", false},
		{"Blank customer id is present", "   ", "82", false},
		{"Text risk score", "CUST1002", "high", false},
		{"Missing customer id", "", "82", true},
		{"Missing risk score", "CUST1002", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAlert(tt.customerID, tt.riskScore)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				assert.Equal(t, "Missing required fields", apperrors.PublicMessage(err, ""))
				assert.Nil(t, a)
				return
			}
			require.NoError(t, err)
			_, parseErr := uuid.Parse(a.ID)
			assert.NoError(t, parseErr)
			assert.False(t, a.CreatedAt.IsZero())
		})
	}
}

func TestAlertMessage(t *testing.T) {
	a := &Alert{CustomerID: "CUST1004", RiskScore: "91"}
	assert.Equal(t, "ALERT: High-risk customer CUST1004 with risk score 91 was approved", a.Message())

	a.RiskScore = "77.25"
	assert.Equal(t, "ALERT: High-risk customer CUST1004 with risk score 77.25 was approved", a.Message())
}

func TestAlertService_RaiseAlert(t *testing.T) {
	ctx := context.Background()

	t.Run("Success logs and publishes", func(t *testing.T) {
		buf := new(bytes.Buffer)
		pub := new(MockEventPublisher)
		service := NewAlertService(pub, slog.New(slog.NewJSONHandler(buf, nil)))

		pub.On("PublishRiskAlert", ctx, mock.MatchedBy(func(evt event.RiskAlertEvent) bool {
			return evt.CustomerID == "CUST1002" && evt.RiskScore == "88" && evt.AlertID != ""
		})).Return(nil).Once()

		a, err := service.RaiseAlert(ctx, "CUST1002", "88")
		require.NoError(t, err)
		assert.Equal(t, "CUST1002", a.CustomerID)

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "ALERT: High-risk customer CUST1002 with risk score 88 was approved", entry["msg"])
		assert.Equal(t, a.ID, entry["alertId"])
		assert.Equal(t, "88", entry["riskScore"])
		pub.AssertExpectations(t)
	})

	t.Run("Missing fields are rejected before publishing", func(t *testing.T) {
		pub := new(MockEventPublisher)
		service := NewAlertService(pub, slog.New(slog.NewTextHandler(io.Discard, nil)))

		_, err := service.RaiseAlert(ctx, "", "")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		pub.AssertNotCalled(t, "PublishRiskAlert", mock.Anything, mock.Anything)
	})

	t.Run("Publish failure is returned", func(t *testing.T) {
		pub := new(MockEventPublisher)
		service := NewAlertService(pub, slog.New(slog.NewTextHandler(io.Discard, nil)))
		brokerErr := errors.New("channel closed")
		pub.On("PublishRiskAlert", ctx, mock.AnythingOfType("event.RiskAlertEvent")).Return(brokerErr).Once()

		a, err := service.RaiseAlert(ctx, "CUST1001", "70")
		assert.Nil(t, a)
		assert.ErrorIs(t, err, apperrors.ErrPublish)
		assert.ErrorIs(t, err, brokerErr)
		pub.AssertExpectations(t)
	})

	t.Run("Nil publisher falls back to logging", func(t *testing.T) {
		service := NewAlertService(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
		_, err := service.RaiseAlert(ctx, "CUST1001", "70")
		assert.NoError(t, err)
	})
}
