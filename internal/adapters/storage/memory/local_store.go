package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"petcare-companion/internal/ports/storage"
)

var errEmptyKey = errors.New("key required")

type localStore struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewLocalStore crea un store en memoria; se pierde al terminar el proceso.
func NewLocalStore() storage.Local {
	return &localStore{
		items: make(map[string]string),
	}
}

func (s *localStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	return v, ok, nil
}

func (s *localStore) SetItem(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return errEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
	return nil
}

func (s *localStore) RemoveItem(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

func (s *localStore) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.items))
	for k := range s.items {
		out = append(out, k)
	}
	// Orden estable
	sort.Strings(out)
	return out, nil
}
