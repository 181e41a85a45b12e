package api

import (
	"errors"
	"net/http"

	"github.com/erazemk/rewear/internal/model"
)

// MeHandler serves the current identity.
type MeHandler struct {
	Sessions Sessions
}

type updateMeRequest struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

// Get handles GET /api/me.
func (h *MeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.Sessions.Current()
	if !ok {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	jsonResponse(w, http.StatusOK, id)
}

// Update handles PUT /api/me. Points and admin status cannot be changed here.
func (h *MeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateMeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name != nil && *req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}

	id, ok, err := h.Sessions.UpdateCurrent(r.Context(), model.IdentityUpdate{Name: req.Name, Avatar: req.Avatar})
	if err != nil {
		if errors.Is(err, model.ErrNegativePoints) {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		jsonError(w, http.StatusInternalServerError, "failed to update identity")
		return
	}
	if !ok {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	jsonResponse(w, http.StatusOK, id)
}
