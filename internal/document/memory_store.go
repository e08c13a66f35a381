package document

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

type blob struct {
	data        []byte
	contentType string
}

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]blob
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]blob)}
}

func (s *MemoryStore) Put(_ context.Context, id, contentType string, content []byte) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = blob{data: append([]byte(nil), content...), contentType: contentType}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) ([]byte, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.data[strings.TrimSpace(id)]
	if !ok {
		return nil, "", ErrNotFound
	}
	return append([]byte(nil), b.data...), b.contentType, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, strings.TrimSpace(id))
	return nil
}

func (s *MemoryStore) URL(_ context.Context, _ string) (string, error) {
	return "", nil
}
