// Package httpx holds the JSON response envelope shared by every handler
// of the order API.
package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/nkyriakou/glassfab-oms/internal/validation"
)

// ErrorResponse is the uniform error envelope: a stable machine-readable
// code plus optional details. For validation failures the details are the
// per-field violations map.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON writes payload as application/json with the given status. The body
// is marshaled before any header is sent, so an encoding failure never
// leaves a half-written response.
func JSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, werr := w.Write(body); werr != nil {
		// nothing we can do at this point
		_ = werr
	}
}

// JSONError writes the error envelope.
func JSONError(w http.ResponseWriter, status int, code string, details any) {
	JSON(w, status, ErrorResponse{Error: code, Details: details})
}

// ValidationFailed reports per-field violations as a 400.
func ValidationFailed(w http.ResponseWriter, v validation.Violations) {
	JSONError(w, http.StatusBadRequest, "validation_failed", v)
}
