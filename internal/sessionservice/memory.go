package sessionservice

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in process memory. It is the default backend
// when no Redis address is configured; sessions do not survive a restart.
type MemoryStore struct {
	c *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{c: cache.New(DefaultTTL, 10*time.Minute)}
}

func (s *MemoryStore) Set(_ context.Context, key string, session *Session, ttl time.Duration) error {
	s.c.Set(key, session, ttl)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (*Session, error) {
	value, ok := s.c.Get(key)
	if !ok {
		return nil, ErrSessionNotFound
	}

	return value.(*Session), nil
}

func (s *MemoryStore) Renew(_ context.Context, key string, ttl time.Duration) error {
	value, ok := s.c.Get(key)
	if !ok {
		return ErrSessionNotFound
	}

	s.c.Set(key, value, ttl)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.c.Delete(key)
	return nil
}
