package handlers

import (
	"net/http"

	"gsnake-editor-api/internal/shared/response"
)

const serviceName = "gsnake-editor-api"

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Service: serviceName,
	})
}
