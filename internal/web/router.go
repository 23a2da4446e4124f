package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/betstack/betstack/internal/services/auth"
	"github.com/betstack/betstack/internal/services/topup"
	"github.com/betstack/betstack/internal/web/handler"
	"github.com/betstack/betstack/internal/web/middleware"
	"github.com/betstack/betstack/internal/web/session"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger       *slog.Logger
	AuthService  *auth.Service
	TopupService *topup.Service
	SessionStore *session.Store
	Routes       middleware.RouteConfig
	StaticDir    string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	routes := cfg.Routes
	if routes.LoginPath == "" {
		routes = middleware.DefaultRouteConfig()
	}

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	guardMiddleware := middleware.Guard(cfg.SessionStore, routes)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.AuthService, cfg.SessionStore, routes.LoginPath)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService, cfg.SessionStore)

	// Apply global middleware to all routes. The guard decides purely
	// on route class and token presence; server-side session checks
	// happen in the auth middleware behind it.
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(guardMiddleware)

	// Create handlers
	homeHandler := handler.NewHomeHandler()
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.SessionStore)
	dashboardHandler := handler.NewDashboardHandler(cfg.AuthService, cfg.SessionStore)
	topupHandler := handler.NewTopupHandler(cfg.AuthService, cfg.TopupService, cfg.SessionStore, cfg.Logger)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Public routes (optional auth for showing the user in the nav)
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/promotions", homeHandler.Promotions).Methods(http.MethodGet)
	public.HandleFunc("/support", homeHandler.Support).Methods(http.MethodGet)
	public.HandleFunc("/terms", homeHandler.Terms).Methods(http.MethodGet)

	// Auth-only pages (the guard bounces authenticated visitors)
	authPages := r.NewRoute().Subrouter()
	authPages.Use(flashMiddleware)
	authPages.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	authPages.HandleFunc("/register", authHandler.RegisterPage).Methods(http.MethodGet)
	authPages.HandleFunc("/forgot-password", authHandler.ForgotPasswordPage).Methods(http.MethodGet)

	// Auth actions
	authRoutes := r.PathPrefix("/auth").Subrouter()
	authRoutes.Use(flashMiddleware)
	authRoutes.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	authRoutes.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	authRoutes.HandleFunc("/forgot-password", authHandler.ForgotPassword).Methods(http.MethodPost)
	authRoutes.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Protected routes (require a valid server-side session)
	protected := r.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)
	protected.HandleFunc("/dashboard", dashboardHandler.Dashboard).Methods(http.MethodGet)
	protected.HandleFunc("/dashboard/settings", dashboardHandler.SettingsPage).Methods(http.MethodGet)
	protected.HandleFunc("/dashboard/settings", dashboardHandler.UpdateSettings).Methods(http.MethodPost)
	protected.HandleFunc("/dashboard/topup/callback", topupHandler.Callback).Methods(http.MethodGet)

	return r
}
