package session

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/spec-kit/aastha-chatbot/internal/domain"
)

// MemoryStore keeps sessions in process with sliding TTL eviction.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore creates a store whose sessions expire after ttl of inactivity,
// purged every cleanup interval.
func NewMemoryStore(ttl, cleanup time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(ttl, cleanup)}
}

// Get returns a copy of the session so callers never share mutable state.
func (s *MemoryStore) Get(_ context.Context, id string) (*domain.Session, bool, error) {
	x, found := s.cache.Get(id)
	if !found {
		return nil, false, nil
	}
	cp := *x.(*domain.Session)
	return &cp, true, nil
}

func (s *MemoryStore) Save(_ context.Context, sess *domain.Session) error {
	cp := *sess
	s.cache.Set(sess.ID, &cp, cache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	return s.cache.ItemCount(), nil
}

func (s *MemoryStore) Snapshot(_ context.Context) (map[string]domain.Stage, error) {
	items := s.cache.Items()
	out := make(map[string]domain.Stage, len(items))
	for id, item := range items {
		out[id] = item.Object.(*domain.Session).Stage
	}
	return out, nil
}
