package api

import (
	"net/http"

	"github.com/erazemk/rewear/internal/exchange"
)

// AdminHandler handles listing moderation.
type AdminHandler struct {
	Service *exchange.Service
}

// List handles GET /api/admin/listings.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	tab, err := exchange.ParseTab(r.URL.Query().Get("tab"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.Service.Moderation(tab)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, m)
}

// Approve handles POST /api/admin/listings/{id}/approve.
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	l, err := h.Service.Approve(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, l)
}

// Reject handles POST /api/admin/listings/{id}/reject.
func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Reject(r.Context(), r.PathValue("id")); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleAvailability handles POST /api/admin/listings/{id}/availability.
func (h *AdminHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	l, err := h.Service.ToggleAvailability(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, l)
}
