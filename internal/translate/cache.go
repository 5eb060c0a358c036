// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     translate
// Description: TTL cache for raw model responses
// Author:      Mike Stoffels
// Created:     2026-02-15
// License:     MIT
// ============================================================================

package translate

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// responseCache remembers raw model responses per prompt so repeated
// requests against an unchanged table skip the provider round trip.
// Expired entries are pruned on access; there is no background sweeper
// since the cache lives inside a short-lived interactive session.
type responseCache struct {
	mu       sync.Mutex
	items    map[string]cacheEntry
	maxItems int
	ttl      time.Duration
	hits     int64
	misses   int64
}

type cacheEntry struct {
	response string
	expires  time.Time
}

func newResponseCache(maxItems int, ttl time.Duration) *responseCache {
	if maxItems <= 0 {
		maxItems = 256
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &responseCache{
		items:    make(map[string]cacheEntry),
		maxItems: maxItems,
		ttl:      ttl,
	}
}

// cacheKey fingerprints everything that influences the model output
func cacheKey(model, system, prompt string) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(system))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *responseCache) get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if !ok {
		c.misses++
		return "", false
	}
	if time.Now().After(entry.expires) {
		delete(c.items, key)
		c.misses++
		return "", false
	}
	c.hits++
	return entry.response, true
}

func (c *responseCache) set(key, response string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) >= c.maxItems {
		c.evictOldest()
	}
	c.items[key] = cacheEntry{
		response: response,
		expires:  time.Now().Add(c.ttl),
	}
}

func (c *responseCache) stats() (hits, misses int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// evictOldest removes the entry closest to expiry. Caller holds the
// lock.
func (c *responseCache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for key, entry := range c.items {
		if oldestKey == "" || entry.expires.Before(oldest) {
			oldestKey = key
			oldest = entry.expires
		}
	}
	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}
