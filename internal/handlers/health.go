package handlers

import (
	"net/http"
	"time"

	"github.com/savetree-1/maritime-weather-intelligence/internal/models"
)

// Health responds with status 200 to indicate the process is running. It
// does not look at the database; use /api/status for that.
func Health(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.HealthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
			Service:   service,
		})
	}
}

// NotFound answers unknown routes with a JSON body.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Endpoint not found"})
}

// MLStatus is the ML service stub. Its answer never changes.
func MLStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.StatusResponse{Status: models.StatusMLRunning})
}
