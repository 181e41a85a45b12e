package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/rewear/internal/auth"
	"github.com/erazemk/rewear/internal/model"
	"github.com/erazemk/rewear/internal/session"
	"github.com/erazemk/rewear/internal/store"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	DB        *sql.DB
	JWTSecret string
	Sessions  Sessions
}

type loginRequest struct {
	Email  string `json:"email"`
	Secret string `json:"secret"`
}

type signupRequest struct {
	Email  string `json:"email"`
	Secret string `json:"secret"`
	Name   string `json:"name"`
}

type authResponse struct {
	Token    string         `json:"token"`
	Identity model.Identity `json:"identity"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.Sessions.Login(r.Context(), req.Email, req.Secret)
	switch {
	case errors.Is(err, session.ErrSecretRequired):
		jsonError(w, http.StatusBadRequest, "email and secret required")
		return
	case err != nil:
		slog.Warn("login failed", "email", req.Email, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	h.issue(w, http.StatusOK, id)
	slog.Info("user logged in", "user", id.Email, "admin", id.IsAdmin)
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.Sessions.Signup(r.Context(), req.Email, req.Secret, req.Name)
	switch {
	case errors.Is(err, session.ErrEmailTaken):
		jsonError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.issue(w, http.StatusCreated, id)
	slog.Info("user signed up", "user", id.Email)
}

// Logout handles POST /api/auth/logout. The token is revoked and the
// current session cleared.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := store.RevokeToken(r.Context(), h.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
		slog.Error("revoking token", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to revoke token")
		return
	}
	h.Sessions.Logout(r.Context())

	slog.Info("user logged out", "user", claims.Email)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) issue(w http.ResponseWriter, status int, id model.Identity) {
	token, err := auth.GenerateToken(h.JWTSecret, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	jsonResponse(w, status, authResponse{Token: token, Identity: id})
}
