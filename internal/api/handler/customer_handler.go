package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/api/handler/dto"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/domain/customer"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/pkg/apperrors"
	"github.com/go-chi/chi/v5"
)

const (
	msgFetchCustomersFailed = "Failed to fetch customers"
	msgFetchCustomerFailed  = "Failed to fetch customer"
	msgUpdateStatusFailed   = "Failed to update customer status"
	msgInvalidStatus        = "Invalid status"
)

type CustomerHandler struct {
	service customer.CustomerService
	logger  *slog.Logger
}

func NewCustomerHandler(s customer.CustomerService, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service: s,
		logger:  l.With("component", "CustomerHandler"),
	}
}

func getCustomerIDFromURL(r *http.Request) (string, error) {
	id := chi.URLParam(r, "customerID")
	if id == "" {
		return "", fmt.Errorf("%w: customerID not found in URL path", apperrors.ErrInvalidArgument)
	}
	return id, nil
}

// ListCustomers handles GET /api/customers
// @Summary List customers
// @Description Returns every stored customer record.
// @Tags Customers
// @Produce json
// @Success 200 {array} customer.Customer "Customer collection"
// @Failure 500 {object} dto.ErrorResponse "Failed to fetch customers"
// @Router /api/customers [get]
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received list customers request")

	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list customers", slog.Any("error", err))
		respondError(w, err, msgFetchCustomersFailed)
		return
	}

	h.logger.DebugContext(r.Context(), "Customers listed", slog.Int("count", len(customers)))
	respondJSON(w, http.StatusOK, dto.NewCustomerListResponse(customers))
}

// GetCustomer handles GET /api/customers/{customerID}
// @Summary Retrieve customer details
// @Description Retrieves a single customer by its customerId.
// @Tags Customers
// @Produce json
// @Param customerID path string true "Customer ID" example(CUST1001)
// @Success 200 {object} customer.Customer "Customer details retrieved"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to fetch customer"
// @Router /api/customers/{customerID} [get]
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, customer.ErrNotFound, msgFetchCustomerFailed)
		return
	}

	customerFound, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get customer",
			slog.String("customerID", customerID), slog.Any("error", err))
		respondError(w, err, msgFetchCustomerFailed)
		return
	}

	respondJSON(w, http.StatusOK, customerFound)
}

// UpdateCustomerStatus handles PATCH /api/customers/{customerID}
// @Summary Update customer status
// @Description Sets the status of a customer to Review, Approved or Rejected.
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerID path string true "Customer ID" example(CUST1002)
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} customer.Customer "Updated customer"
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update customer status"
// @Router /api/customers/{customerID} [patch]
func (h *CustomerHandler) UpdateCustomerStatus(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, customer.ErrNotFound, msgUpdateStatusFailed)
		return
	}

	var req dto.UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, apperrors.NewValidationError("status", msgInvalidStatus), msgInvalidStatus)
		return
	}
	status, err := req.ToStatus()
	if err != nil {
		h.logger.WarnContext(r.Context(), "Rejected status update",
			slog.String("customerID", customerID), slog.String("status", req.Status))
		respondError(w, err, msgInvalidStatus)
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), customerID, status)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to update customer status",
			slog.String("customerID", customerID), slog.Any("error", err))
		respondError(w, err, msgUpdateStatusFailed)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer status updated",
		slog.String("customerID", customerID), slog.String("status", string(updated.Status)))
	respondJSON(w, http.StatusOK, updated)
}
