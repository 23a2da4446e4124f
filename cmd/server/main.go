package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/betstack/betstack/internal/api"
	"github.com/betstack/betstack/internal/factory"
	"github.com/betstack/betstack/internal/services/topup"
	redisstorage "github.com/betstack/betstack/internal/storage/redis"
	"github.com/betstack/betstack/internal/web"
	"github.com/betstack/betstack/internal/web/middleware"
	"github.com/betstack/betstack/internal/web/session"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Payment gateway from environment
	gatewayURL := os.Getenv("PAYMENT_GATEWAY_URL")
	if gatewayURL == "" {
		logger.Error("PAYMENT_GATEWAY_URL is required")
		os.Exit(1)
	}
	gateway := topup.NewHTTPGateway(gatewayURL, os.Getenv("PAYMENT_GATEWAY_API_KEY"))

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
		Gateway:     gateway,
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Cookie store; Secure cookies unless explicitly disabled for
	// local development
	sessionStore := session.NewStore(session.Config{
		Secure: os.Getenv("INSECURE_COOKIES") == "",
	})

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:       logger,
		AuthService:  app.AuthService,
		TopupService: app.TopupService,
		SessionStore: sessionStore,
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:       logger,
		AuthService:  app.AuthService,
		TopupService: app.TopupService,
		SessionStore: sessionStore,
		Routes:       middleware.DefaultRouteConfig(),
		StaticDir:    findStaticDir(),
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	// Create server
	serverConfig := api.DefaultServerConfig()
	server := api.NewServer(mux, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// findStaticDir looks for the static files directory
func findStaticDir() string {
	candidates := []string{
		"internal/web/static",
		"./internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	return "internal/web/static"
}
