package models

// Status values reported by the services.
const (
	StatusBackendRunning = "Backend running"
	StatusMLRunning      = "ML service running"
	StatusError          = "error"
)

// StatusResponse is the body of the status endpoints. DBTime is set only when
// Status is StatusBackendRunning; Detail only when Status is StatusError.
type StatusResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
	DBTime string `json:"db_time,omitempty"`
}

// DBProbeResponse is the body of the raw database probe.
type DBProbeResponse struct {
	Time  string `json:"time,omitempty"`
	Error string `json:"error,omitempty"`
}

// HealthResponse is the liveness body.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

// ErrorResponse is returned for requests no route handles.
type ErrorResponse struct {
	Error string `json:"error"`
}
