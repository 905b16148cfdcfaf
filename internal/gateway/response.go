package gateway

import (
	"encoding/json"
	"net/http"
	"time"
)

// Metadata rides on every envelope.
type Metadata struct {
	ResponseTimeMs int64  `json:"response_time_ms"`
	Timestamp      string `json:"timestamp"`
	RequestID      string `json:"request_id,omitempty"`
}

// Envelope is the response shape for every route.
type Envelope struct {
	Success  bool      `json:"success"`
	Data     any       `json:"data,omitempty"`
	Error    string    `json:"error,omitempty"`
	Code     string    `json:"code,omitempty"`
	Details  any       `json:"details,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

func buildMetadata(r *http.Request, start time.Time) *Metadata {
	return &Metadata{
		ResponseTimeMs: time.Since(start).Milliseconds(),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		RequestID:      requestIDFrom(r.Context()),
	}
}

func writeJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func writeSuccess(w http.ResponseWriter, r *http.Request, start time.Time, data any) {
	writeJSON(w, http.StatusOK, Envelope{
		Success:  true,
		Data:     data,
		Metadata: buildMetadata(r, start),
	})
}

func writeError(w http.ResponseWriter, r *http.Request, start time.Time, status int, code, message string, details any) {
	writeJSON(w, status, Envelope{
		Success:  false,
		Error:    message,
		Code:     code,
		Details:  details,
		Metadata: buildMetadata(r, start),
	})
}

// statusForCode maps an upstream error code to an HTTP status: session
// state problems are 422, upstream failures with a code are 503, and
// anything without a code is a 500.
func statusForCode(code string) int {
	switch code {
	case "SCAN_QR_REQUIRED", "SESSION_DISCONNECTED":
		return http.StatusUnprocessableEntity
	case "":
		return http.StatusInternalServerError
	default:
		return http.StatusServiceUnavailable
	}
}
