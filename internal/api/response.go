package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/rewear/internal/exchange"
	"github.com/erazemk/rewear/internal/model"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// serviceError maps an exchange service error onto a response.
func serviceError(w http.ResponseWriter, err error) {
	var verr *exchange.ValidationError
	switch {
	case errors.As(err, &verr):
		jsonResponse(w, http.StatusBadRequest, map[string]any{"error": verr.Error(), "fields": verr.Fields})
	case errors.Is(err, exchange.ErrNotAuthenticated):
		jsonError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, exchange.ErrForbidden):
		jsonError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, exchange.ErrListingNotFound), errors.Is(err, exchange.ErrRequestNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, exchange.ErrInsufficientPoints):
		jsonError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, exchange.ErrListingUnavailable), errors.Is(err, exchange.ErrOwnListing),
		errors.Is(err, exchange.ErrInvalidOffer), errors.Is(err, model.ErrInvalidTransition):
		jsonError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("unexpected service error", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}
