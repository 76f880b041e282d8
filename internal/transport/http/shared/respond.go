// Package shared holds the JSON response helpers every handler uses, keeping
// the error envelope consistent across modules.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "auditlink/pkg/domain-errors"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error to its HTTP status and a JSON error
// envelope. Unknown errors map to 500 with an opaque message.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)
	message := "internal error"
	if status < http.StatusInternalServerError {
		message = err.Error()
	}
	WriteJSON(w, status, map[string]string{
		"error":   string(code),
		"message": message,
	})
}
