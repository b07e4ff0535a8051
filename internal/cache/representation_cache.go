package cache

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every representation key in the shared Redis instance.
const KeyPrefix = "catalog"

// RepresentationCache memoizes serialized read responses behind a
// deterministic key. Staleness control is TTL-only: the read paths never
// invalidate, and a re-store of the same key is harmless, so concurrent
// misses computing the same key are tolerated (last write wins).
type RepresentationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a representation cache with the given TTL.
func New(client *redis.Client, ttl time.Duration) *RepresentationCache {
	return &RepresentationCache{client: client, ttl: ttl}
}

// Key derives a cache key from the operation name and its ordered argument
// values. Two semantically identical calls produce the same key regardless
// of call site, so arguments must be passed in canonical form.
func (c *RepresentationCache) Key(operation string, args ...string) string {
	parts := make([]string, 0, len(args)+2)
	parts = append(parts, KeyPrefix, operation)
	parts = append(parts, args...)
	return strings.Join(parts, ":")
}

// Get returns the cached representation for key and whether it was present.
func (c *RepresentationCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores the representation under key with the configured TTL.
func (c *RepresentationCache) Set(ctx context.Context, key, representation string) error {
	return c.client.Set(ctx, key, representation, c.ttl).Err()
}

// Delete removes a key. Unused by the read paths, which rely on TTL expiry,
// but part of the cache contract.
func (c *RepresentationCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// TTL returns the configured expiry.
func (c *RepresentationCache) TTL() time.Duration { return c.ttl }
