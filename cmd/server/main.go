package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"gsnake-editor-api/internal/level"
	"gsnake-editor-api/internal/middleware"
	"gsnake-editor-api/internal/server"
	"gsnake-editor-api/internal/shared/config"
	"gsnake-editor-api/internal/shared/logger"
	"gsnake-editor-api/internal/sprite"
	"gsnake-editor-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging)

	slog.Info("Starting gsnake editor API", "environment", cfg.Server.Environment)

	validator, err := level.NewValidator()
	if err != nil {
		slog.Error("Failed to compile level schema", "error", err)
		os.Exit(1)
	}

	levelStore := store.New(cfg.Store.TTL, slog.With("component", "test_level_store"))
	sprites := sprite.NewLoader(cfg.Sprite.URL, slog.With("component", "sprite_loader"))

	routes := server.NewRoutes(validator, levelStore, sprites)
	mux := routes.Setup()

	corsMiddleware := middleware.NewCORS(cfg.CORS)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)

	handler := corsMiddleware.Middleware(rateLimiter.Middleware(mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	slog.Info("gsnake editor API listening", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
