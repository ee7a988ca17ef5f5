package store

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"gsnake-editor-api/internal/shared/errors"
)

// TestLevelStore is the single-slot handoff cache between the editor and a
// test runtime. There is exactly one slot process-wide: every successful Put
// overwrites it, last write wins, and nothing survives a restart. Entries
// expire ttl after storage.
type TestLevelStore struct {
	mu       sync.Mutex
	payload  json.RawMessage
	storedAt time.Time

	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

func New(ttl time.Duration, logger *slog.Logger) *TestLevelStore {
	return &TestLevelStore{
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// Put stores an already-validated payload, unconditionally replacing
// whatever the slot holds.
func (s *TestLevelStore) Put(payload json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.payload = append(json.RawMessage(nil), payload...)
	s.storedAt = s.now()

	s.logger.Debug("Test level stored", "bytes", len(s.payload))
}

// Get returns the stored payload verbatim: no projection, no re-validation.
// An empty slot and an expired one are both not-found, distinguished in the
// message text only; reading an expired entry clears the slot.
func (s *TestLevelStore) Get() (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.payload == nil {
		return nil, errors.NotFoundf("No test level available")
	}

	if s.now().Sub(s.storedAt) > s.ttl {
		s.payload = nil
		s.storedAt = time.Time{}
		s.logger.Debug("Test level expired")
		return nil, errors.NotFoundf("Test level has expired")
	}

	return s.payload, nil
}

// Reset empties the slot. Exposed for test harnesses.
func (s *TestLevelStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.payload = nil
	s.storedAt = time.Time{}
}
