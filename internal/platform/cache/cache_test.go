package cache

import (
	"testing"
	"time"
)

type item struct{ Name string }

func TestCache_SetGet(t *testing.T) {
	c, err := New[item](Options{TTL: time.Minute})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	if _, ok := c.Get("cpu"); ok {
		t.Fatalf("unexpected hit on empty cache")
	}
	c.Set("cpu", item{Name: "CPU load"})
	c.Wait()
	got, ok := c.Get("cpu")
	if !ok || got.Name != "CPU load" {
		t.Fatalf("Get = %+v, %v", got, ok)
	}
	c.Del("cpu")
	c.Wait()
	if _, ok := c.Get("cpu"); ok {
		t.Fatalf("hit after Del")
	}
}

func TestCache_Disabled(t *testing.T) {
	c, err := New[int](Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.Enabled() {
		t.Fatalf("zero TTL should disable")
	}
	if c.Set("a", 1) {
		t.Fatalf("disabled Set should report false")
	}
	c.Wait()
	if _, ok := c.Get("a"); ok {
		t.Fatalf("disabled cache should miss")
	}
	c.Del("a")
	c.Close()

	var nilCache *Cache[int]
	if _, ok := nilCache.Get("a"); ok {
		t.Fatalf("nil cache should miss")
	}
}
