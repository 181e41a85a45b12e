package api

import (
	"net/http"

	"github.com/erazemk/rewear/internal/exchange"
	"github.com/erazemk/rewear/internal/model"
)

// RequestsHandler handles exchange requests and the dashboard.
type RequestsHandler struct {
	Service *exchange.Service
}

type transitionRequest struct {
	Status model.RequestStatus `json:"status"`
}

// Create handles POST /api/listings/{id}/requests.
func (h *RequestsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var offer exchange.Offer
	if err := decodeJSON(r, &offer); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.Service.RequestSwap(r.Context(), r.PathValue("id"), offer)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, req)
}

// List handles GET /api/requests.
func (h *RequestsHandler) List(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.Service.Requests()
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, reqs)
}

// Transition handles POST /api/requests/{id}/transition.
func (h *RequestsHandler) Transition(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Status.Valid() {
		jsonError(w, http.StatusBadRequest, "invalid status")
		return
	}

	updated, err := h.Service.TransitionRequest(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, updated)
}

// Dashboard handles GET /api/dashboard.
func (h *RequestsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Service.Dashboard()
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, d)
}
