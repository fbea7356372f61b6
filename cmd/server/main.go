package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ladelta/bakery-service/internal/cache"
	"github.com/ladelta/bakery-service/internal/config"
	"github.com/ladelta/bakery-service/internal/db"
	"github.com/ladelta/bakery-service/internal/db/repository"
	"github.com/ladelta/bakery-service/internal/router"
	"github.com/ladelta/bakery-service/internal/service"
	"github.com/ladelta/bakery-service/internal/websockets"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.JWT.Secret == "" {
		logrus.Fatal("JWT secret is not configured")
	}

	// Initialize database
	database, err := db.NewPostgres(cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run database migrations
	if err := database.Migrate(cfg.Database); err != nil {
		logrus.Fatalf("Failed to run database migrations: %v", err)
	}

	// Redis is optional; without it order reads just skip the cache.
	var orderCache cache.Cache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logrus.Fatalf("Failed to connect to redis: %v", err)
		}
		defer redisCache.Close()
		orderCache = redisCache
	} else {
		logrus.Warn("Redis not configured, running without order cache")
	}

	// Initialize repositories and services
	repos := repository.NewRepositories(database)

	jwtConfig := service.JWTConfig{
		Secret:    cfg.JWT.Secret,
		ExpiresIn: cfg.JWT.ExpiresIn,
	}

	services := router.Services{
		Auth:    service.NewAuthService(repos.User, jwtConfig),
		Order:   service.NewOrderService(repos.Order, orderCache),
		Product: service.NewProductService(repos.Product),
	}

	// Initialize WebSocket hub
	hub := websockets.NewHub()
	go hub.Run()

	// Initialize router
	r := router.New(services, hub, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Server starting on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited properly")
}
