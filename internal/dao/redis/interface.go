// Package redis provides the cache used for read-heavy lists and refresh-token ids.
// Services depend on the CacheService interface, never on the Redis client itself.
package redis

import (
	"context"
	"time"
)

// CacheService is the synchronous cache surface.
type CacheService interface {
	// Set stores value under key with a ttl (0 means no expiry).
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Get returns "" and a nil error when key is absent.
	Get(ctx context.Context, key string) (string, error)
	// Delete removes key if present.
	Delete(ctx context.Context, key string) error
	// DeleteByPattern removes every key matching a glob pattern.
	DeleteByPattern(ctx context.Context, pattern string) error
}

// AsyncCacheService adds background execution for cache maintenance that
// must not block the request path.
type AsyncCacheService interface {
	CacheService
	// SubmitTask queues action on the worker pool, running it inline when the queue is full.
	SubmitTask(action func())
}
