// Package memory provides a map-backed KV store. It backs tests and serves as
// the application's fallback when the SQLite store cannot be opened.
package memory

import (
	"context"
	"sync"

	"notekeeper/internal/infrastructure/storage"
)

type Storage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func New() *Storage {
	return &Storage{data: make(map[string][]byte)}
}

func (s *Storage) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}

	// Callers may mutate what they get back.
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *Storage) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	return nil
}

func (s *Storage) Close() error {
	return nil
}
