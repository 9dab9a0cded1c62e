package session

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	userID  string
	expires time.Time
}

// MemoryStore is the Redis-less fallback for dev runs and tests. Expired
// entries are dropped lazily on Resolve.
type MemoryStore struct {
	mu   sync.Mutex
	m    map[string]entry
	ttl  time.Duration
	now  func() time.Time
}

func NewMemory(ttl time.Duration) *MemoryStore {
	return &MemoryStore{m: make(map[string]entry), ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Create(_ context.Context, userID string) (string, error) {
	tok, err := NewToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.m[tok] = entry{userID: userID, expires: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return tok, nil
}

func (s *MemoryStore) Resolve(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[token]
	if !ok {
		return "", nil
	}
	if s.now().After(e.expires) {
		delete(s.m, token)
		return "", nil
	}
	return e.userID, nil
}

func (s *MemoryStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.m, token)
	s.mu.Unlock()
	return nil
}
