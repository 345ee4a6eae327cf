package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/savetree-1/maritime-weather-intelligence/internal/logging"
	"github.com/savetree-1/maritime-weather-intelligence/internal/models"
	"github.com/savetree-1/maritime-weather-intelligence/internal/store"
)

// dbTimeLayout renders the database clock in UTC, dropping trailing zero
// fractional seconds ("2024-01-01 00:00:00").
const dbTimeLayout = "2006-01-02 15:04:05.999999"

// TimeSource reads the current database server time.
type TimeSource interface {
	CurrentTime(ctx context.Context) (time.Time, error)
}

// Status reports whether the database pool is usable. Every handled outcome
// is a 200 response; callers inspect the status field.
func Status(source TimeSource, metrics *StatusMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := CheckStatus(r.Context(), source)
		if err != nil {
			kind := store.KindOf(err)
			metrics.observe(kind.String())
			logging.WithComponentAndFields("handlers.status", log.Fields{
				"kind": kind.String(),
			}).WithError(err).Warn("status check failed")
		} else {
			metrics.observe(outcomeOK)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// CheckStatus runs a single status check. The returned response is always
// well formed; err is the underlying failure, if any.
func CheckStatus(ctx context.Context, source TimeSource) (models.StatusResponse, error) {
	now, err := source.CurrentTime(ctx)
	if err != nil {
		detail := err.Error()
		if detail == "" {
			detail = store.KindOf(err).String()
		}
		return models.StatusResponse{Status: models.StatusError, Detail: detail}, err
	}
	return models.StatusResponse{
		Status: models.StatusBackendRunning,
		DBTime: now.UTC().Format(dbTimeLayout),
	}, nil
}

// DBProbe is a raw connectivity probe: it returns the database time on success
// and a 500 with the error message otherwise.
func DBProbe(source TimeSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now, err := source.CurrentTime(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, models.DBProbeResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, models.DBProbeResponse{Time: now.UTC().Format(time.RFC3339Nano)})
	}
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.WithComponent("handlers").WithError(err).Warn("failed to encode response")
	}
}
