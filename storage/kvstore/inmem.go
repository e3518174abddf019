package kvstore

import (
	"context"
	"sync"

	"github.com/musicaulas/backend/core/session"
)

// InMemStore is a volatile Storage for tests and DEV runs.
type InMemStore struct {
	mutex sync.RWMutex
	table map[string][]byte
}

var _ session.Storage = (*InMemStore)(nil)

func NewInMem() *InMemStore {
	return &InMemStore{table: make(map[string][]byte)}
}

func (s *InMemStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, ok := s.table[key]
	if !ok {
		return nil, session.ErrEntryNotFound
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, nil
}

func (s *InMemStore) Set(_ context.Context, key string, value []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	s.table[key] = cp
	return nil
}

func (s *InMemStore) Delete(_ context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.table, key)
	return nil
}
