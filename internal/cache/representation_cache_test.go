package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RepresentationCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return New(client, ttl), mr
}

func TestKeyIsDeterministic(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	a := c.Key("get_products", "abc", "0.01", "1000000", "true")
	b := c.Key("get_products", "abc", "0.01", "1000000", "true")
	if a != b {
		t.Errorf("identical calls derived different keys: %q vs %q", a, b)
	}
	if a == c.Key("get_products", "abc", "0.01", "1000000", "false") {
		t.Error("different argument values derived the same key")
	}
	if want := "catalog:get_product:abc"; c.Key("get_product", "abc") != want {
		t.Errorf("Key() = %q, want %q", c.Key("get_product", "abc"), want)
	}
}

func TestGetSetRoundTrip(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	key := c.Key("get_vendor", "deadbeef")

	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get on empty cache = (%v, %v), want miss", ok, err)
	}

	if err := c.Set(ctx, key, `{"id":"deadbeef"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get after Set = (%v, %v), want hit", ok, err)
	}
	if value != `{"id":"deadbeef"}` {
		t.Errorf("Get = %q, want stored representation", value)
	}

	// re-storing the same key is harmless
	if err := c.Set(ctx, key, `{"id":"deadbeef"}`); err != nil {
		t.Fatalf("re-Set: %v", err)
	}
}

func TestEntriesExpireAfterTTL(t *testing.T) {
	c, mr := newTestCache(t, 100*time.Millisecond)
	ctx := context.Background()

	key := c.Key("get_vendors")
	if err := c.Set(ctx, key, "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	mr.FastForward(200 * time.Millisecond)

	if _, ok, _ := c.Get(ctx, key); ok {
		t.Error("entry should have expired after the TTL")
	}
}

func TestDelete(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	key := c.Key("get_review", "cafebabe")
	if err := c.Set(ctx, key, "{}"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, key); ok {
		t.Error("entry should be gone after Delete")
	}
}
