package handler

// RESPONSE HELPERS:
// Every response this API sends — success or failure — is JSON, and every
// expected failure has the same shape:
//
//	{"error": "<description>"}
//
// (Token failures are the one exception: the auth middleware adds a
// machine-readable kind next to the message.)
//
// writeError is also where domain errors become status codes. The service
// layer returns apperror values; nothing below this file knows HTTP exists.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tanvir/jobtrackr/internal/apperror"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON sends a JSON response with the given status code.
// Headers and status must be set before the first body write — once Encode
// writes, the headers are on the wire.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to its HTTP status and sends the JSON body.
//
// Mapping (matches the API contract, not generic REST conventions — note
// that a username conflict is 400 here, not 409):
//
//	ErrValidation  → 400
//	ErrInvalidID   → 400
//	ErrConflict    → 400
//	ErrNotFound    → 404
//	ErrCredentials → 401
//	anything else  → 500, generic message only
//
// errors.Is walks the wrapped chain, so services are free to annotate with
// fmt.Errorf("...: %w", err) without breaking classification.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError

		switch {
		case errors.Is(err, apperror.ErrValidation),
			errors.Is(err, apperror.ErrInvalidID),
			errors.Is(err, apperror.ErrConflict):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrCredentials):
			status = http.StatusUnauthorized
		}

		writeJSON(w, status, ErrorResponse{Error: appErr.Message})
		return
	}

	// Unexpected failure (store connectivity, encoding bug). Log it, return
	// a generic 500 — raw driver errors can leak URIs and internals.
	slog.Error("unexpected error", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "An internal error occurred"})
}
