package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tanvir/jobtrackr/internal/service"
)

// AuthHandler exposes registration and login.
//
//	POST /register → create an account
//	POST /login    → exchange credentials for an access token
//
// Both endpoints are public — they are how a client gets a token in the
// first place. Everything interesting (hashing, uniqueness, token signing)
// happens in AuthService; this layer only translates HTTP ↔ function calls.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// credentialsRequest is the body for both /register and /login.
// The decoder rejects unknown fields: a typo like "user_name" should be a
// 400, not a silently ignored key that later reads as "missing field".
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func decodeCredentials(r *http.Request) (credentialsRequest, error) {
	var req credentialsRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(&req)
	return req, err
}

// HandleRegister creates a new user.
//
// HTTP: POST /register
// Body: {"username": "...", "password": "..."}
// 201:  {"message": "User registered", "user_id": "<hex id>"}
// 400:  missing fields, malformed body, or username taken
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCredentials(r)
	if err != nil {
		h.logger.Warn("register: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "username and password are required"})
		return
	}

	userID, err := h.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "User registered",
		"user_id": userID,
	})
}

// HandleLogin verifies credentials and returns an access token.
//
// HTTP: POST /login
// Body: {"username": "...", "password": "..."}
// 200:  {"access_token": "<jwt>"}
// 400:  missing fields / malformed body
// 401:  invalid credentials (never says which half was wrong)
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCredentials(r)
	if err != nil {
		h.logger.Warn("login: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "username and password are required"})
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}
