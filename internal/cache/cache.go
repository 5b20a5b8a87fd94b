// Package cache provides an optional Redis-backed cache for remix responses,
// keyed by recipe and theme so repeated remixes skip the chat endpoint.
package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const remixTTL = 24 * time.Hour

// RemixCache stores raw assistant responses in Redis. A nil *RemixCache is
// valid and behaves as a cache that never hits.
type RemixCache struct {
	redis *redis.Client
}

// NewRemixCache wraps a Redis client. Returns nil when client is nil, which
// disables caching.
func NewRemixCache(client *redis.Client) *RemixCache {
	if client == nil {
		return nil
	}
	return &RemixCache{redis: client}
}

// Key derives the cache key for one recipe/theme pair. Titles and themes are
// free text, so they are hashed rather than embedded in the key.
func Key(recipeTitle, theme string) string {
	sum := sha256.Sum256([]byte(recipeTitle + "\x00" + theme))
	return fmt.Sprintf("remix:response:%x", sum[:8])
}

// Get returns the cached assistant text for key, if present.
func (c *RemixCache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	raw, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("remix cache: failed to read %s: %v", key, err)
		}
		return "", false
	}
	return raw, true
}

// Set stores the assistant text for key with a bounded TTL. Failures are
// logged and swallowed: the cache is an optimization, never a dependency.
func (c *RemixCache) Set(ctx context.Context, key, raw string) {
	if c == nil {
		return
	}
	if err := c.redis.Set(ctx, key, raw, remixTTL).Err(); err != nil {
		log.Printf("remix cache: failed to write %s: %v", key, err)
	}
}
