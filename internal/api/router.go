package api

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/erazemk/rewear/internal/exchange"
	"github.com/erazemk/rewear/internal/model"
)

// Sessions is the session store as seen by the API.
type Sessions interface {
	Current() (model.Identity, bool)
	Login(ctx context.Context, email, secret string) (model.Identity, error)
	Signup(ctx context.Context, email, secret, name string) (model.Identity, error)
	Logout(ctx context.Context)
	UpdateCurrent(ctx context.Context, u model.IdentityUpdate) (model.Identity, bool, error)
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, sessions Sessions, svc *exchange.Service) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret, Sessions: sessions}
	meHandler := &MeHandler{Sessions: sessions}
	listingsHandler := &ListingsHandler{Service: svc}
	requestsHandler := &RequestsHandler{Service: svc}
	adminHandler := &AdminHandler{Service: svc}

	authMW := AuthMiddleware(jwtSecret, db, sessions)
	requireAdmin := RequireAdmin()

	// Public: login, signup and browsing.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/signup", authHandler.Signup)
	mux.HandleFunc("GET /api/listings", listingsHandler.List)
	mux.HandleFunc("GET /api/listings/facets", listingsHandler.Facets)
	mux.HandleFunc("GET /api/listings/{id}", listingsHandler.Get)

	// Authenticated routes.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/me", authMW(http.HandlerFunc(meHandler.Get)))
	mux.Handle("PUT /api/me", authMW(http.HandlerFunc(meHandler.Update)))

	mux.Handle("POST /api/listings", authMW(http.HandlerFunc(listingsHandler.Create)))
	mux.Handle("DELETE /api/listings/{id}", authMW(http.HandlerFunc(listingsHandler.Delete)))
	mux.Handle("POST /api/listings/{id}/requests", authMW(http.HandlerFunc(requestsHandler.Create)))

	mux.Handle("GET /api/requests", authMW(http.HandlerFunc(requestsHandler.List)))
	mux.Handle("POST /api/requests/{id}/transition", authMW(http.HandlerFunc(requestsHandler.Transition)))
	mux.Handle("GET /api/dashboard", authMW(http.HandlerFunc(requestsHandler.Dashboard)))

	// Moderation (admin only).
	mux.Handle("GET /api/admin/listings", authMW(requireAdmin(http.HandlerFunc(adminHandler.List))))
	mux.Handle("POST /api/admin/listings/{id}/approve", authMW(requireAdmin(http.HandlerFunc(adminHandler.Approve))))
	mux.Handle("POST /api/admin/listings/{id}/reject", authMW(requireAdmin(http.HandlerFunc(adminHandler.Reject))))
	mux.Handle("POST /api/admin/listings/{id}/availability", authMW(requireAdmin(http.HandlerFunc(adminHandler.ToggleAvailability))))

	return mux
}
