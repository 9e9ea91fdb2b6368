// Package cache holds the advisory bootstrap cache. It remembers which
// organizations already have their default book and chart seeded so repeated
// event recording does not re-run the seeding queries. A miss is harmless:
// the bootstrap itself is idempotent.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// BootstrapCache marks organizations whose ledger defaults are known to exist.
type BootstrapCache interface {
	IsSeeded(ctx context.Context, organizationID string) bool
	MarkSeeded(ctx context.Context, organizationID string)
}

const bootstrapKeyPrefix = "ledger:bootstrap:"

// bootstrapTTL bounds staleness after manual chart surgery in the database.
const bootstrapTTL = 24 * time.Hour

type redisBootstrapCache struct {
	client *redis.Client
}

// NewRedisBootstrapCache returns a BootstrapCache backed by redis.
func NewRedisBootstrapCache(client *redis.Client) BootstrapCache {
	return &redisBootstrapCache{client: client}
}

func (c *redisBootstrapCache) IsSeeded(ctx context.Context, organizationID string) bool {
	err := c.client.Get(ctx, bootstrapKeyPrefix+organizationID).Err()
	return err == nil
}

func (c *redisBootstrapCache) MarkSeeded(ctx context.Context, organizationID string) {
	// Advisory write, errors are deliberately ignored.
	c.client.Set(ctx, bootstrapKeyPrefix+organizationID, "1", bootstrapTTL)
}

type memoryBootstrapCache struct {
	mu   sync.RWMutex
	seen map[string]time.Time
}

// NewMemoryBootstrapCache returns an in-process BootstrapCache for
// deployments without redis.
func NewMemoryBootstrapCache() BootstrapCache {
	return &memoryBootstrapCache{seen: make(map[string]time.Time)}
}

func (c *memoryBootstrapCache) IsSeeded(_ context.Context, organizationID string) bool {
	c.mu.RLock()
	markedAt, ok := c.seen[organizationID]
	c.mu.RUnlock()
	return ok && time.Since(markedAt) < bootstrapTTL
}

func (c *memoryBootstrapCache) MarkSeeded(_ context.Context, organizationID string) {
	c.mu.Lock()
	c.seen[organizationID] = time.Now()
	c.mu.Unlock()
}
