package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"teachmatch-dashboard/internal/api/routes"
	"teachmatch-dashboard/internal/config"
	"teachmatch-dashboard/internal/interview"
	"teachmatch-dashboard/internal/logging"
	"teachmatch-dashboard/internal/marketplace"
	"teachmatch-dashboard/internal/search"

	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	logger := logging.GetGlobalLogger()
	logger.Info("Starting TeachMatch dashboard service")

	// Marketplace API client
	client := marketplace.NewClient(cfg, logger)

	// Session store: Redis, with in-memory fallback when unreachable
	var store search.SessionStore
	redisStore := search.NewRedisStore(cfg)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), cfg.Redis.Timeout)
	if err := redisStore.Ping(pingCtx); err != nil {
		logger.Warn("Redis unreachable, using in-memory session store", map[string]interface{}{
			"error": err.Error(),
		})
		store = search.NewMemoryStore()
	} else {
		store = redisStore
	}
	cancelPing()

	// Controllers
	sessions := search.NewController(store, client, logger)
	negotiations := interview.NewController(client, logger)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Setup routes
	routes.SetupRoutes(e, cfg, sessions, negotiations)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		if err := redisStore.Close(); err != nil {
			logger.Error("Error closing session store", map[string]interface{}{"error": err.Error()})
		}

		if err := logging.CloseLogging(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing logging: %v\n", err)
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.WithField("address", address).Info("Server starting")

	if err := e.Start(address); err != nil {
		logger.WithField("error", err.Error()).Fatal("Server failed to start")
	}
}
