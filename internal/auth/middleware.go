package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// contextKey is an unexported type used for context keys in this package.
//
// context.WithValue takes any key type; using a package-private type means no
// other package can read or shadow the userID we store — only code in this
// package can construct a contextKey.
type contextKey string

const userIDKey contextKey = "userID"

// tokenError is the response body for authentication failures.
// Unlike the generic {"error": "<description>"} shape used elsewhere, auth
// failures carry a machine-readable kind plus a human-readable message, so
// clients can distinguish "log in again" (token_expired) from "your request
// is broken" (invalid_token).
type tokenError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RequireAuth enforces bearer-token authentication on protected routes.
//
// It reads "Authorization: Bearer <jwt>", validates the token, and stores the
// userID in the request context for handlers to read via UserIDFromContext.
// On failure it writes a JSON error and stops the chain:
//
//	missing_token  → 401 (no Authorization header / not a Bearer scheme)
//	invalid_token  → 422 (unparseable, bad signature, wrong issuer/subject)
//	token_expired  → 401
//	token_revoked  → 401
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := bearerToken(r)
			if err != nil {
				writeTokenError(w, err)
				return
			}

			userID, err := tokens.Validate(raw)
			if err != nil {
				writeTokenError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the authenticated user's ID from the request
// context. Returns ("", false) if the request carried no valid token — which
// on a RequireAuth-protected route means something is wired wrong.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// bearerToken extracts the raw JWT from the Authorization header.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", ErrMissingToken
	}

	return token, nil
}

// writeTokenError maps a validation sentinel to its error kind and status.
func writeTokenError(w http.ResponseWriter, err error) {
	kind := "invalid_token"
	message := "Token is invalid"
	status := http.StatusUnprocessableEntity // 422 per the API contract

	switch {
	case errors.Is(err, ErrMissingToken):
		kind = "missing_token"
		message = "Missing Authorization header"
		status = http.StatusUnauthorized
	case errors.Is(err, ErrExpiredToken):
		kind = "token_expired"
		message = "Token has expired"
		status = http.StatusUnauthorized
	case errors.Is(err, ErrRevokedToken):
		kind = "token_revoked"
		message = "Token has been revoked"
		status = http.StatusUnauthorized
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(tokenError{Error: kind, Message: message})
}
