package session

import (
	"context"
	"sync"

	"cabinet/internal/session/models"
)

// InMemoryStore keeps the session slot in process memory. It round-trips the
// profile through the codec on every access so tests exercise the same
// serialization path as the redis store.
type InMemoryStore struct {
	mu       sync.RWMutex
	profile  []byte
	loggedIn bool
}

func NewMemory() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Load(_ context.Context) (*models.UserProfile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loggedIn || s.profile == nil {
		return nil, false, nil
	}
	profile, err := models.DecodeProfile(s.profile)
	if err != nil {
		return nil, false, err
	}
	return profile, true, nil
}

func (s *InMemoryStore) Save(_ context.Context, profile *models.UserProfile) error {
	data, err := models.EncodeProfile(profile)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = data
	s.loggedIn = true
	return nil
}

func (s *InMemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
	s.loggedIn = false
	return nil
}

// Corrupt overwrites the stored payload, bypassing the codec. Test hook for
// the malformed-persisted-state path.
func (s *InMemoryStore) Corrupt(payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = payload
	s.loggedIn = true
}
