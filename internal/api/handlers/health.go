package handlers

import (
	"horoscope-service/internal/api/dto"
	"net/http"
)

const version = "1.0.0"

// Health provides a minimal liveness check endpoint.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := dto.HealthResponse{
		Status:  "healthy",
		Message: "Swiss Ephemeris API is running",
		Version: version,
	}
	writeJSON(w, r, http.StatusOK, res)
}
