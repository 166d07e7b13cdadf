package redis

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/redis/go-redis/v9"

	"github.com/ndavault/nda-vault/internal/api/metrics"
	"github.com/ndavault/nda-vault/internal/core/domain"
)

const processCacheTTL = 5 * time.Minute

// ProcessCache is a non-authoritative read-through cache in front of
// ProcessRepository.FindByID. A miss or a Redis error is always resolved by
// falling back to the caller's loader rather than surfacing an error:
// Redis being unavailable must never block access to a process.
type ProcessCache struct {
	client *redis.Client
}

// NewProcessCache wraps the given Redis client.
func NewProcessCache(client *redis.Client) *ProcessCache {
	return &ProcessCache{client: client}
}

// Get returns the cached process for id, or (nil, false) on a miss or any
// Redis error. The process is serialized with bson, not json, since the
// sealed body and content key carry json:"-" to keep them off any HTTP
// response, but the cache must still round-trip them.
func (c *ProcessCache) Get(ctx context.Context, id string) (*domain.Process, bool) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		metrics.ProcessCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var p domain.Process
	if err := bson.Unmarshal(raw, &p); err != nil {
		metrics.ProcessCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.ProcessCacheTotal.WithLabelValues("hit").Inc()
	return &p, true
}

// Set stores p under its id with processCacheTTL. Errors are swallowed:
// caching is an optimization, never a correctness dependency.
func (c *ProcessCache) Set(ctx context.Context, p *domain.Process) {
	raw, err := bson.Marshal(p)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key(p.ID), raw, processCacheTTL).Err()
}

// Invalidate removes id from the cache. Called after any write that could
// make a cached copy stale.
func (c *ProcessCache) Invalidate(ctx context.Context, id string) {
	_ = c.client.Del(ctx, c.key(id)).Err()
}

func (c *ProcessCache) key(id string) string {
	return "process:" + id
}
