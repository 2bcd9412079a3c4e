package services

import (
	"sync"
	"time"
)

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

type cacheKey struct {
	userID uint
	name   string
}

// TTLCache is a bounded map with per-entry expiry, keyed by user so a ledger
// mutation can drop every aggregate for that user at once. It is injected
// into the services that want it rather than living as a package global.
type TTLCache struct {
	mu         sync.Mutex
	entries    map[cacheKey]cacheEntry
	ttl        time.Duration
	maxEntries int
}

func NewTTLCache(ttl time.Duration, maxEntries int) *TTLCache {
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	return &TTLCache{
		entries:    make(map[cacheKey]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

func (c *TTLCache) Get(userID uint, name string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[cacheKey{userID, name}]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, cacheKey{userID, name})
		return nil, false
	}
	return e.value, true
}

func (c *TTLCache) Set(userID uint, name string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.maxEntries {
		c.evictLocked()
	}
	c.entries[cacheKey{userID, name}] = cacheEntry{value: value, expiresAt: time.Now().Add(c.ttl)}
}

// InvalidateUser drops every cached window for one user.
func (c *TTLCache) InvalidateUser(userID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.userID == userID {
			delete(c.entries, k)
		}
	}
}

func (c *TTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictLocked clears expired entries first; if everything is still live it
// drops the entry closest to expiry to stay within bounds.
func (c *TTLCache) evictLocked() {
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	if len(c.entries) < c.maxEntries {
		return
	}
	var oldest cacheKey
	var oldestAt time.Time
	first := true
	for k, e := range c.entries {
		if first || e.expiresAt.Before(oldestAt) {
			oldest, oldestAt, first = k, e.expiresAt, false
		}
	}
	delete(c.entries, oldest)
}
