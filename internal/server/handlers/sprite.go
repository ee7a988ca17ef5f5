package handlers

import (
	"log/slog"
	"net/http"

	"gsnake-editor-api/internal/shared/response"
	"gsnake-editor-api/internal/sprite"
)

type SpriteHandler struct {
	loader *sprite.Loader
}

func NewSpriteHandler(loader *sprite.Loader) *SpriteHandler {
	return &SpriteHandler{loader: loader}
}

func (h *SpriteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "sprite")

	if r.Method != http.MethodGet {
		response.MethodNotAllowed(w, r, logger, []string{http.MethodGet})
		return
	}

	markup, err := h.loader.Fetch(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(markup)
}
