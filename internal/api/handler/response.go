package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/api/handler/dto"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/pkg/apperrors"
)

// decodeJSON tolerates unknown fields; clients send extra properties.
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal server error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// respondError maps err to a status code. Server-side failures never leak
// their cause to the client; fallback is sent instead.
func respondError(w http.ResponseWriter, err error, fallback string) {
	status, message := http.StatusInternalServerError, fallback
	var validationError *apperrors.ValidationError

	switch {
	case errors.As(err, &validationError):
		status, message = http.StatusBadRequest, validationError.Message
		if message == "" {
			message = fallback
		}
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, apperrors.PublicMessage(err, fallback)
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, apperrors.PublicMessage(err, "Resource not found")
	default:
		slog.Default().Error("Unhandled internal error", "error", err, "response", fallback)
	}

	respondJSON(w, status, dto.ErrorResponse{Error: message})
}
