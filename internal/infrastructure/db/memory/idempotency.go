package memory

import (
	"context"
	"sync"
	"time"
)

// IdempotencyStore is the process-local counterpart of the Redis store,
// used when REDIS_ADDR is unset. Pending claims carry an empty id.
type IdempotencyStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]idemEntry
}

type idemEntry struct {
	id      string
	expires time.Time
}

const (
	idempotencyTTL = 24 * time.Hour
	pendingTTL     = time.Minute
)

// NewIdempotencyStore returns an empty store. A non-positive ttl selects 24h.
func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = idempotencyTTL
	}
	return &IdempotencyStore{ttl: ttl, now: time.Now, entries: make(map[string]idemEntry)}
}

func (s *IdempotencyStore) Claim(_ context.Context, scope, key string) (string, bool, error) {
	k := scope + "\x00" + key
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[k]; ok && now.Before(e.expires) {
		return e.id, false, nil
	}
	s.entries[k] = idemEntry{expires: now.Add(pendingTTL)}
	return "", true, nil
}

func (s *IdempotencyStore) Complete(_ context.Context, scope, key, id string) error {
	s.mu.Lock()
	s.entries[scope+"\x00"+key] = idemEntry{id: id, expires: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *IdempotencyStore) Release(_ context.Context, scope, key string) error {
	s.mu.Lock()
	delete(s.entries, scope+"\x00"+key)
	s.mu.Unlock()
	return nil
}
