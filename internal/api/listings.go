package api

import (
	"net/http"

	"github.com/erazemk/rewear/internal/browse"
	"github.com/erazemk/rewear/internal/exchange"
)

// ListingsHandler handles browsing and listing management.
type ListingsHandler struct {
	Service *exchange.Service
}

// List handles GET /api/listings.
func (h *ListingsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sort, err := browse.ParseSort(q.Get("sort"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := h.Service.Browse(browse.Criteria{
		Search:    q.Get("q"),
		Category:  q.Get("category"),
		Condition: q.Get("condition"),
		Size:      q.Get("size"),
		Sort:      sort,
	})
	jsonResponse(w, http.StatusOK, res)
}

// Facets handles GET /api/listings/facets.
func (h *ListingsHandler) Facets(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Service.Facets())
}

// Get handles GET /api/listings/{id}.
func (h *ListingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	l, err := h.Service.Listing(r.PathValue("id"))
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, l)
}

// Create handles POST /api/listings.
func (h *ListingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req exchange.ListingInput
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.Service.ListItem(r.Context(), req)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, l)
}

// Delete handles DELETE /api/listings/{id}.
func (h *ListingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.RemoveListing(r.Context(), r.PathValue("id")); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
