// Package memcache implements ports.ResultCache as an in-process, size-bounded LRU with TTL.
package memcache

import (
	"context"
	"time"

	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache is an in-memory result cache.
// Tables are cloned on the way in and out, so an entry is never visible half-written
// and eviction never affects a table a reader already holds.
type Cache struct {
	lru *expirable.LRU[string, *domain.Table]
}

// New creates a cache holding at most size entries, each expiring after ttl.
func New(size int, ttl time.Duration) *Cache {
	return &Cache{lru: expirable.NewLRU[string, *domain.Table](size, nil, ttl)}
}

// Get returns a copy of the table stored under key, or nil if absent.
func (c *Cache) Get(_ context.Context, key domain.CacheKey) (*domain.Table, error) {
	t, ok := c.lru.Get(key.String())
	if !ok {
		return nil, nil
	}
	return t.Clone(), nil
}

// Put stores a copy of table under key.
func (c *Cache) Put(_ context.Context, key domain.CacheKey, table *domain.Table) error {
	c.lru.Add(key.String(), table.Clone())
	return nil
}

// Delete removes key.
func (c *Cache) Delete(_ context.Context, key domain.CacheKey) error {
	c.lru.Remove(key.String())
	return nil
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Close drops every entry.
func (c *Cache) Close() error {
	c.lru.Purge()
	return nil
}
