package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/betstack/betstack/internal/api/handler"
	"github.com/betstack/betstack/internal/api/middleware"
	"github.com/betstack/betstack/internal/services/auth"
	"github.com/betstack/betstack/internal/services/topup"
	"github.com/betstack/betstack/internal/web/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger       *slog.Logger
	AuthService  *auth.Service
	TopupService *topup.Service
	SessionStore *session.Store
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	sessionHandler := handler.NewSessionHandler(cfg.AuthService, cfg.SessionStore)
	userHandler := handler.NewUserHandler(cfg.AuthService)
	topupHandler := handler.NewTopupHandler(cfg.TopupService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no auth required for registering/logging in)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Logout requires a session to invalidate
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(authMiddleware)
	authProtected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Session bootstrap routes. Reading never requires auth: the
	// whole point is resolving whether a session exists.
	api.HandleFunc("/session", sessionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/session", sessionHandler.Put).Methods(http.MethodPut)
	api.HandleFunc("/session", sessionHandler.Delete).Methods(http.MethodDelete)

	// User routes (require auth)
	users := api.PathPrefix("/users").Subrouter()
	users.Use(authMiddleware)
	users.HandleFunc("/me", userHandler.GetMe).Methods(http.MethodGet)
	users.HandleFunc("/me", userHandler.UpdateEmail).Methods(http.MethodPatch)

	// Top-up routes (require auth)
	topups := api.PathPrefix("/topups").Subrouter()
	topups.Use(authMiddleware)
	topups.HandleFunc("/verify", topupHandler.Verify).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
