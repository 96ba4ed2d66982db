package handler

import (
	"net/http"

	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/api/handler/dto"
)

// TestEndpoint handles GET /api/test
// @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} dto.MessageResponse "App is working"
// @Router /api/test [get]
func TestEndpoint(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.MessageResponse{Message: "App is working"})
}

// Health handles GET /health
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
}
