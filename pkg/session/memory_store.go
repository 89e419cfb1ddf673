package session

import (
	"context"
	"sync"
)

// MemoryStore keeps the session document in process memory. Used in tests
// and in hosts without a durable storage medium.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, ErrNotFound
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)

	s.mu.Lock()
	s.data = stored
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
	return nil
}
