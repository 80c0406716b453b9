package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gamiempire/sovereign/internal/api/handler"
	"github.com/gamiempire/sovereign/internal/api/middleware"
	"github.com/gamiempire/sovereign/internal/factory"
)

// NewRouter creates a new API router with all routes configured
func NewRouter(app *factory.App, logger *slog.Logger) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	accountHandler := handler.NewAccountHandler(app.IdentityService, app.AuditLogger)
	adminHandler := handler.NewAdminHandler(app.OverrideService, app.AuditLogger)
	settingsHandler := handler.NewSettingsHandler(app.Registry, app.AuditLogger)
	economyHandler := handler.NewEconomyHandler(app.Engine, app.Storage, app.AuditLogger)
	statusHandler := handler.NewStatusHandler(app.IdentityService, app.Registry, app.Engine, app.OverrideService, app.ThemeState, app.Monitor)

	// Create middleware
	authMiddleware := middleware.Auth(app.IdentityService)
	adminMiddleware := middleware.AdminOnly()
	loggingMiddleware := middleware.Logging(logger)
	recoveryMiddleware := middleware.Recovery(logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Account routes (no auth required for signup/login)
	api.HandleFunc("/accounts", accountHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/sessions", accountHandler.Login).Methods(http.MethodPost)

	// Session routes
	sessions := api.PathPrefix("/sessions").Subrouter()
	sessions.Use(authMiddleware)
	sessions.HandleFunc("", accountHandler.Logout).Methods(http.MethodDelete)
	sessions.HandleFunc("/me", accountHandler.Me).Methods(http.MethodGet)

	// Ghost access routes (restore works from the ghost session itself,
	// which carries no admin flag, so only entry is admin-gated)
	ghost := api.PathPrefix("/ghost").Subrouter()
	ghost.Use(authMiddleware)
	ghost.Handle("", adminMiddleware(http.HandlerFunc(adminHandler.GhostAccess))).Methods(http.MethodPost)
	ghost.HandleFunc("/restore", adminHandler.Restore).Methods(http.MethodPost)

	// Settings routes (lookups for any session, updates admin-only)
	settings := api.PathPrefix("/settings").Subrouter()
	settings.Use(authMiddleware)
	settings.HandleFunc("", settingsHandler.Lookup).Methods(http.MethodGet)
	settings.Handle("/{key}", adminMiddleware(http.HandlerFunc(settingsHandler.Update))).Methods(http.MethodPut)

	// Economy routes (all require auth)
	transactions := api.PathPrefix("/transactions").Subrouter()
	transactions.Use(authMiddleware)
	transactions.HandleFunc("", economyHandler.Transact).Methods(http.MethodPost)
	transactions.HandleFunc("", economyHandler.ListTransactions).Methods(http.MethodGet)

	entities := api.PathPrefix("/entities").Subrouter()
	entities.Use(authMiddleware)
	entities.HandleFunc("", economyHandler.ListEntities).Methods(http.MethodGet)
	entities.HandleFunc("/{id}/{action}", economyHandler.Interact).Methods(http.MethodPost)

	wealth := api.PathPrefix("/wealth").Subrouter()
	wealth.Use(authMiddleware)
	wealth.HandleFunc("", economyHandler.Wealth).Methods(http.MethodGet)

	// Audit trail (admin-only)
	auditRoutes := api.PathPrefix("/audit").Subrouter()
	auditRoutes.Use(authMiddleware)
	auditRoutes.Handle("", adminMiddleware(http.HandlerFunc(adminHandler.Audit))).Methods(http.MethodGet)

	// Status and health endpoints (no auth)
	api.HandleFunc("/status", statusHandler.Status).Methods(http.MethodGet)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
