package profile

import (
	"context"
	"sync"

	"cabinet/internal/session/models"
	"cabinet/pkg/platform/sentinel"
)

// InMemoryStore keeps documents in a map. Payloads go through the document
// codec so memory-backed tests cover the timestamp conversion.
type InMemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemory() *InMemoryStore {
	return &InMemoryStore{docs: make(map[string][]byte)}
}

func (s *InMemoryStore) Get(_ context.Context, uid string) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.docs[uid]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return unmarshalDocument(data)
}

func (s *InMemoryStore) Set(_ context.Context, uid string, profile *models.UserProfile) error {
	data, err := marshalDocument(profile)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uid] = data
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, uid string, profile *models.UserProfile) error {
	data, err := marshalDocument(profile)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[uid]; !ok {
		return sentinel.ErrNotFound
	}
	s.docs[uid] = data
	return nil
}
