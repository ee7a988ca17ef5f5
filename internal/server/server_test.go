package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gsnake-editor-api/internal/level"
	"gsnake-editor-api/internal/middleware"
	"gsnake-editor-api/internal/shared/config"
	"gsnake-editor-api/internal/sprite"
	"gsnake-editor-api/internal/store"
)

const allowedOrigin = "http://localhost:3000"

const validLevel = `{
  "id": 101,
  "name": "Fixture",
  "gridSize": {"width": 12, "height": 10},
  "snake": [{"x": 5, "y": 6}, {"x": 4, "y": 6}],
  "obstacles": [{"x": 2, "y": 2}],
  "food": [{"x": 8, "y": 5}],
  "exit": {"x": 11, "y": 8},
  "snakeDirection": "East",
  "totalFood": 1
}`

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	validator, err := level.NewValidator()
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}
	levelStore := store.New(time.Hour, slog.Default())
	sprites := sprite.NewLoader("http://127.0.0.1:0/unused.svg", slog.Default())

	mux := NewRoutes(validator, levelStore, sprites).Setup()
	cors := middleware.NewCORS(config.CORSConfig{AllowedOrigins: []string{allowedOrigin}})
	return cors.Middleware(mux)
}

func do(t *testing.T, handler http.Handler, method, path, body, origin string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if origin != "" {
		req.Header.Set("Origin", origin)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, newTestHandler(t), http.MethodGet, "/health", "", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["service"] != "gsnake-editor-api" {
		t.Fatalf("body = %v", body)
	}
}

func TestStoreAndFetchLevel(t *testing.T) {
	handler := newTestHandler(t)

	w := do(t, handler, http.MethodPost, "/api/test-level", validLevel, allowedOrigin)
	if w.Code != http.StatusOK {
		t.Fatalf("POST status = %d: %s", w.Code, w.Body.String())
	}

	var ack struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(w.Body).Decode(&ack); err != nil {
		t.Fatalf("decode ack: %v", err)
	}
	if !ack.Success || ack.Message != "Test level stored successfully" {
		t.Fatalf("ack = %+v", ack)
	}

	w = do(t, handler, http.MethodGet, "/api/test-level", "", allowedOrigin)
	if w.Code != http.StatusOK {
		t.Fatalf("GET status = %d", w.Code)
	}
	// Stored bytes come back verbatim.
	if w.Body.String() != validLevel {
		t.Fatalf("payload altered:\n%s", w.Body.String())
	}
}

func TestFetchLevelEmpty(t *testing.T) {
	w := do(t, newTestHandler(t), http.MethodGet, "/api/test-level", "", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	_ = json.NewDecoder(w.Body).Decode(&body)
	if body["error"] != "No test level available" {
		t.Fatalf("body = %v", body)
	}
}

func TestStoreLevelRejectsInvalidPayload(t *testing.T) {
	payload := strings.Replace(validLevel, `"food": [{"x": 8, "y": 5}]`, `"food": [{"x": -3, "y": 3}]`, 1)
	w := do(t, newTestHandler(t), http.MethodPost, "/api/test-level", payload, "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}

	var body struct {
		Error   string                   `json:"error"`
		Details []level.ValidationDetail `json:"details"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "Invalid level payload" {
		t.Fatalf("error = %q", body.Error)
	}
	if len(body.Details) != 1 || body.Details[0].Field != "food.0.x" || body.Details[0].Keyword != "minimum" {
		t.Fatalf("details = %v", body.Details)
	}
}

func TestStoreLevelRejectsMalformedJSON(t *testing.T) {
	w := do(t, newTestHandler(t), http.MethodPost, "/api/test-level", `{"id": 1,`, "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	_ = json.NewDecoder(w.Body).Decode(&body)
	if body["error"] != "Malformed JSON payload" {
		t.Fatalf("body = %v", body)
	}
}

func TestStoreLevelRejectsOversizedBody(t *testing.T) {
	// Bodies over the 1 MB read limit never reach the JSON parser, so the
	// response must name the size limit, not the payload's syntax.
	body := `{"pad": "` + strings.Repeat("x", 1<<20) + `"}`
	w := do(t, newTestHandler(t), http.MethodPost, "/api/test-level", body, "")

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d", w.Code)
	}
	var resp map[string]string
	_ = json.NewDecoder(w.Body).Decode(&resp)
	if resp["error"] != "Request body too large" {
		t.Fatalf("body = %v", resp)
	}
}

func TestTestLevelMethodNotAllowed(t *testing.T) {
	w := do(t, newTestHandler(t), http.MethodDelete, "/api/test-level", "", "")

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", w.Code)
	}
	if allow := w.Header().Get("Allow"); allow != "GET, POST" {
		t.Fatalf("Allow header = %q", allow)
	}

	var body struct {
		Error          string   `json:"error"`
		AllowedMethods []string `json:"allowedMethods"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "Method not allowed" {
		t.Fatalf("error = %q", body.Error)
	}
	if len(body.AllowedMethods) != 2 || body.AllowedMethods[0] != "GET" || body.AllowedMethods[1] != "POST" {
		t.Fatalf("allowedMethods = %v", body.AllowedMethods)
	}
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	w := do(t, newTestHandler(t), http.MethodPost, "/api/test-level", validLevel, "http://evil.example")

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	_ = json.NewDecoder(w.Body).Decode(&body)
	if body["error"] != "Not allowed by CORS" {
		t.Fatalf("body = %v", body)
	}
}

func TestCORSAllowsListedOrigin(t *testing.T) {
	w := do(t, newTestHandler(t), http.MethodGet, "/health", "", allowedOrigin)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != allowedOrigin {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestCORSAllowsRequestsWithoutOrigin(t *testing.T) {
	// Non-browser clients carry no Origin header and are never rejected.
	w := do(t, newTestHandler(t), http.MethodGet, "/health", "", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}
