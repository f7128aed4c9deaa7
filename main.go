package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/dalfonso89/auth-currency-gateway/internal/api"
	"github.com/dalfonso89/auth-currency-gateway/internal/config"
	"github.com/dalfonso89/auth-currency-gateway/internal/logger"
	"github.com/dalfonso89/auth-currency-gateway/internal/platform"
	"github.com/dalfonso89/auth-currency-gateway/internal/ratelimit"
	"github.com/dalfonso89/auth-currency-gateway/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Create a shutdown context that works across platforms
	shutdownCtx, stop := platform.NewShutdownContext(context.Background())
	defer stop()

	// Identity provider clients
	tokenVerifier, err := service.NewFirebaseTokenVerifier(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize token verifier: %v", err)
	}
	defer tokenVerifier.Stop()

	userAdmin, err := service.NewFirebaseUserAdmin(shutdownCtx, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize user admin client: %v", err)
	}

	signInClient := service.NewFirebaseSignInClient(cfg, logger)
	ratesProvider := service.NewFrankfurterProvider(cfg, logger)

	rateLimiter := ratelimit.NewLimiter(cfg, logger)
	defer rateLimiter.Stop()

	// Initialize HTTP handlers
	handlers := api.NewHandlers(api.HandlerConfig{
		Logger:         logger,
		Authenticator:  signInClient,
		UserCreator:    userAdmin,
		TokenVerifier:  tokenVerifier,
		RatesProvider:  ratesProvider,
		RateLimiter:    rateLimiter,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		TrustedProxies: cfg.TrustedProxies,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handlers.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 15*time.Second,
	}

	// Give outstanding requests 30 seconds to complete
	if err := platform.Serve(shutdownCtx, server, 30*time.Second, logger); err != nil {
		logger.Errorf("Server stopped with error: %v", err)
		return
	}

	logger.Info("Server exited")
}
