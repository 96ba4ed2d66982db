package handler

import (
	"log/slog"
	"net/http"

	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/api/handler/dto"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/domain/alert"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/pkg/apperrors"
)

const (
	msgMissingFields     = "Missing required fields"
	msgAlertCreated      = "Alert created successfully"
	msgCreateAlertFailed = "Failed to create alert"
)

type AlertHandler struct {
	service alert.AlertService
	logger  *slog.Logger
}

func NewAlertHandler(s alert.AlertService, l *slog.Logger) *AlertHandler {
	if s == nil {
		panic("alert service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &AlertHandler{
		service: s,
		logger:  l.With("component", "AlertHandler"),
	}
}

// CreateAlert handles POST /api/alerts
// @Summary Raise a risk alert
// @Description Logs an alert for a high-risk customer whose loan was approved.
// @Tags Alerts
// @Accept json
// @Produce json
// @Param request body dto.CreateAlertRequest true "Alert payload"
// @Success 201 {object} dto.MessageResponse "Alert created successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing required fields"
// @Failure 500 {object} dto.ErrorResponse "Failed to create alert"
// @Router /api/alerts [post]
func (h *AlertHandler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAlertRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, apperrors.NewValidationError("", msgMissingFields), msgMissingFields)
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Validation failed: missing alert fields")
		respondError(w, err, msgMissingFields)
		return
	}

	customerID, riskScore := req.Fields()
	created, err := h.service.RaiseAlert(r.Context(), customerID, riskScore)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to raise alert", slog.Any("error", err))
		respondError(w, err, msgCreateAlertFailed)
		return
	}

	h.logger.InfoContext(r.Context(), "Alert created", slog.String("alertId", created.ID))
	respondJSON(w, http.StatusCreated, dto.MessageResponse{Message: msgAlertCreated})
}
