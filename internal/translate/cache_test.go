package translate

import (
	"fmt"
	"testing"
	"time"
)

func TestCacheKeyDistinguishesInputs(t *testing.T) {
	base := cacheKey("model", "system", "prompt")
	if cacheKey("model", "system", "prompt") != base {
		t.Error("identical inputs should produce identical keys")
	}
	if cacheKey("other", "system", "prompt") == base {
		t.Error("model should influence the key")
	}
	if cacheKey("model", "other", "prompt") == base {
		t.Error("system prompt should influence the key")
	}
	if cacheKey("model", "system", "other") == base {
		t.Error("prompt should influence the key")
	}
	// Boundary shifts between fields must not collide
	if cacheKey("ab", "c", "") == cacheKey("a", "bc", "") {
		t.Error("field boundaries should be part of the key")
	}
}

func TestCacheGetSet(t *testing.T) {
	c := newResponseCache(10, time.Minute)

	if _, ok := c.get("missing"); ok {
		t.Error("empty cache should miss")
	}

	c.set("k1", "response one")
	got, ok := c.get("k1")
	if !ok || got != "response one" {
		t.Errorf("get = %q, %v", got, ok)
	}

	hits, misses := c.stats()
	if hits != 1 || misses != 1 {
		t.Errorf("stats = %d hits, %d misses, want 1/1", hits, misses)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := newResponseCache(10, 20*time.Millisecond)

	c.set("k1", "short lived")
	if _, ok := c.get("k1"); !ok {
		t.Fatal("fresh entry should hit")
	}

	time.Sleep(40 * time.Millisecond)
	if _, ok := c.get("k1"); ok {
		t.Error("expired entry should miss")
	}
	if _, exists := c.items["k1"]; exists {
		t.Error("expired entry should be pruned on access")
	}
}

func TestCacheEvictsAtCapacity(t *testing.T) {
	c := newResponseCache(3, time.Minute)

	for i := 0; i < 5; i++ {
		c.set(fmt.Sprintf("k%d", i), "v")
		time.Sleep(time.Millisecond)
	}

	if len(c.items) != 3 {
		t.Errorf("items = %d, want 3", len(c.items))
	}
	if _, ok := c.get("k4"); !ok {
		t.Error("newest entry should survive eviction")
	}
}

func TestCacheDefaults(t *testing.T) {
	c := newResponseCache(0, 0)
	if c.maxItems != 256 {
		t.Errorf("maxItems = %d, want 256", c.maxItems)
	}
	if c.ttl != 10*time.Minute {
		t.Errorf("ttl = %v, want 10m", c.ttl)
	}
}
