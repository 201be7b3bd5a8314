package query

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Store guarda respuestas serializadas. Las keys llegan como "scope|key".
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	// DeleteMatching borra, en todos los scopes, las keys cuya parte posterior a "|" cae bajo prefix.
	DeleteMatching(ctx context.Context, prefix string) (int, error)
}

const scopeSep = "|"

func splitScoped(k string) (scope, key string) {
	i := strings.Index(k, scopeSep)
	if i < 0 {
		return "", k
	}
	return k[:i], k[i+len(scopeSep):]
}

type memEntry struct {
	val       []byte
	expiresAt time.Time
}

// MemoryStore es el store por defecto: vive en el proceso y se pierde al reiniciar.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]memEntry
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]memEntry),
		now:  time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		s.mu.Lock()
		delete(s.data, key)
		s.mu.Unlock()
		return nil, false, nil
	}
	return e.val, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	e := memEntry{val: val}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.data[key] = e
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) DeleteMatching(_ context.Context, prefix string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for k := range s.data {
		_, key := splitScoped(k)
		if matchesPrefix(key, prefix) {
			delete(s.data, k)
			n++
		}
	}
	return n, nil
}

// Len es útil en tests.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
