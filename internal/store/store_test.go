package store

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newTestStore() *TestLevelStore {
	return New(time.Hour, slog.Default())
}

func TestGetEmpty(t *testing.T) {
	s := newTestStore()

	_, err := s.Get()
	if err == nil || !strings.Contains(err.Error(), "No test level available") {
		t.Fatalf("expected no-data error, got %v", err)
	}
}

func TestPutThenGetReturnsPayloadUnchanged(t *testing.T) {
	s := newTestStore()
	payload := json.RawMessage(`{"id":101,"name":"Fixture"}`)

	s.Put(payload)

	got, err := s.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload changed: %s", got)
	}
}

func TestPutOverwrites(t *testing.T) {
	s := newTestStore()
	s.Put(json.RawMessage(`{"id":1}`))
	s.Put(json.RawMessage(`{"id":2}`))

	got, err := s.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, []byte(`{"id":2}`)) {
		t.Fatalf("expected last write to win, got %s", got)
	}
}

func TestExpiry(t *testing.T) {
	s := newTestStore()

	now := time.Now()
	s.now = func() time.Time { return now }
	s.Put(json.RawMessage(`{"id":1}`))

	// Still readable just inside the window.
	now = now.Add(59 * time.Minute)
	if _, err := s.Get(); err != nil {
		t.Fatalf("Get before expiry: %v", err)
	}

	// Past the window: the expired message, and the slot is cleared.
	now = now.Add(2 * time.Minute)
	_, err := s.Get()
	if err == nil || !strings.Contains(err.Error(), "Test level has expired") {
		t.Fatalf("expected expiry error, got %v", err)
	}

	_, err = s.Get()
	if err == nil || !strings.Contains(err.Error(), "No test level available") {
		t.Fatalf("expected no-data error after expiry, got %v", err)
	}
}

func TestReset(t *testing.T) {
	s := newTestStore()
	s.Put(json.RawMessage(`{"id":1}`))
	s.Reset()

	if _, err := s.Get(); err == nil {
		t.Fatal("expected error after reset")
	}
}
