// Package handler contains the HTTP handlers for blobd.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/snipshare/internal/apperror"
)

// ErrorResponse is the JSON error body blobd returns on every non-2xx.
// Detail carries the human-readable message under the field name the blob
// client (and the original public service) expects.
type ErrorResponse struct {
	Error  string `json:"error"`  // machine-readable class, e.g. "not_found"
	Detail string `json:"detail"` // human-readable description
}

// writeJSON sends a JSON response. Headers and status must go out before the
// body; once Encode writes, header changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to an HTTP status and sends the standard
// error body. Unknown errors become a generic 500 — raw error strings can
// leak paths or SQL and never reach the client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		}

		writeJSON(w, status, ErrorResponse{
			Error:  errorType,
			Detail: appErr.Message,
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:  "internal_error",
		Detail: "an unexpected error occurred",
	})
}
