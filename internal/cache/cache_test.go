// ABOUTME: Tests for the TTL cache
// ABOUTME: Covers hits, misses, expiration, and explicit invalidation

package cache

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := New(1 * time.Minute)
	c.Set("key", "value")

	got, ok := c.Get("key")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got != "value" {
		t.Errorf("got %v, want value", got)
	}
}

func TestCacheMiss(t *testing.T) {
	c := New(1 * time.Minute)

	if _, ok := c.Get("absent"); ok {
		t.Error("expected cache miss")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.Set("key", "value")

	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("key"); ok {
		t.Error("expected entry to expire")
	}
}

func TestCacheClear(t *testing.T) {
	c := New(1 * time.Minute)
	c.Set("key", "value")
	c.Clear("key")

	if _, ok := c.Get("key"); ok {
		t.Error("expected entry to be cleared")
	}
}

func TestCacheOverwrite(t *testing.T) {
	c := New(1 * time.Minute)
	c.Set("key", 1)
	c.Set("key", 2)

	got, _ := c.Get("key")
	if got != 2 {
		t.Errorf("got %v, want 2", got)
	}
}
