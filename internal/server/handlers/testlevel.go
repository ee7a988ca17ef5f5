package handlers

import (
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"

	"gsnake-editor-api/internal/level"
	"gsnake-editor-api/internal/shared/errors"
	"gsnake-editor-api/internal/shared/response"
	"gsnake-editor-api/internal/store"
)

// TestLevelHandler is the authoritative import path: every payload goes
// through full schema plus bounds validation before it may enter the store.
type TestLevelHandler struct {
	validator *level.Validator
	store     *store.TestLevelStore
}

type storeAckResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type invalidPayloadResponse struct {
	Error   string                   `json:"error"`
	Details []level.ValidationDetail `json:"details"`
}

func NewTestLevelHandler(validator *level.Validator, levelStore *store.TestLevelStore) *TestLevelHandler {
	return &TestLevelHandler{
		validator: validator,
		store:     levelStore,
	}
}

func (h *TestLevelHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.storeLevel(w, r)
	case http.MethodGet:
		h.fetchLevel(w, r)
	default:
		logger := slog.With("handler", "test_level")
		response.MethodNotAllowed(w, r, logger, []string{http.MethodGet, http.MethodPost})
	}
}

func (h *TestLevelHandler) storeLevel(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "store_test_level")

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if stderrors.As(err, &maxBytesErr) {
			response.Error(w, r, logger, errors.PayloadTooLarge(err))
			return
		}
		response.Error(w, r, logger, errors.WrapInternal("read request body", err))
		return
	}

	details, err := h.validator.Validate(raw)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if len(details) > 0 {
		logger.Debug("Level payload rejected", "violations", len(details))
		response.JSON(w, http.StatusBadRequest, invalidPayloadResponse{
			Error:   "Invalid level payload",
			Details: details,
		})
		return
	}

	h.store.Put(raw)
	response.Success(w, http.StatusOK, storeAckResponse{
		Success: true,
		Message: "Test level stored successfully",
	})
}

func (h *TestLevelHandler) fetchLevel(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "fetch_test_level")

	payload, err := h.store.Get()
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	// The stored bytes are returned exactly as posted.
	response.Raw(w, http.StatusOK, payload)
}
