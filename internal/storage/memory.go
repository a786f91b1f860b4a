package storage

import (
	"context"

	"github.com/patrickmn/go-cache"
)

// MemoryStore is an in-process Store backed by go-cache. It is the
// default when no redis URL is configured; entries never expire.
type MemoryStore struct {
	c *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		c: cache.New(cache.NoExpiration, 0),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	v, found := s.c.Get(key)
	if !found {
		return "", ErrNotFound
	}
	value, ok := v.(string)
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.c.Set(key, value, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.c.Delete(key)
	return nil
}
