package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/haysnairpa/urbanwear/internal/identity"
)

type AuthHandler struct {
	identity identity.Client
	timeout  time.Duration
}

func NewAuthHandler(idc identity.Client, timeout time.Duration) *AuthHandler {
	return &AuthHandler{
		identity: idc,
		timeout:  timeout,
	}
}

type CredentialsRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register serves POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := h.identity.Register(ctx, req.Email, req.Password)
	if err != nil {
		respondError(w, http.StatusBadRequest, "registration_failed", err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// Login serves POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := h.identity.Login(ctx, req.Email, req.Password)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "login_failed", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// Logout serves POST /auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.identity.Logout(ctx); err != nil {
		respondError(w, http.StatusInternalServerError, "logout_failed", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (CredentialsRequestDTO, bool) {
	var req CredentialsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return req, false
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "missing_credentials", "email and password are required")
		return req, false
	}
	return req, true
}
