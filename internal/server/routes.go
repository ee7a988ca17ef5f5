package server

import (
	"log/slog"
	"net/http"

	"gsnake-editor-api/internal/level"
	serverHandlers "gsnake-editor-api/internal/server/handlers"
	"gsnake-editor-api/internal/sprite"
	"gsnake-editor-api/internal/store"
)

type Routes struct {
	validator *level.Validator
	store     *store.TestLevelStore
	sprites   *sprite.Loader
}

func NewRoutes(validator *level.Validator, levelStore *store.TestLevelStore, sprites *sprite.Loader) *Routes {
	return &Routes{
		validator: validator,
		store:     levelStore,
		sprites:   sprites,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler()
	testLevelHandler := serverHandlers.NewTestLevelHandler(r.validator, r.store)
	spriteHandler := serverHandlers.NewSpriteHandler(r.sprites)

	mux.Handle("/health", healthHandler)
	mux.Handle("/api/test-level", testLevelHandler)
	mux.Handle("/api/sprite", spriteHandler)

	logger.Info("Routes configured successfully",
		"endpoints", []string{"/health", "/api/test-level", "/api/sprite"},
	)

	return mux
}
