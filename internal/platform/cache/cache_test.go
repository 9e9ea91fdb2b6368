package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisBootstrapCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisBootstrapCache(client)
	ctx := context.Background()

	assert.False(t, c.IsSeeded(ctx, "org-1"))

	c.MarkSeeded(ctx, "org-1")
	assert.True(t, c.IsSeeded(ctx, "org-1"))
	assert.False(t, c.IsSeeded(ctx, "org-2"))

	// Entries expire so a manually reset database is eventually re-seeded.
	mr.FastForward(bootstrapTTL * 2)
	assert.False(t, c.IsSeeded(ctx, "org-1"))
}

func TestRedisBootstrapCacheDownstreamFailure(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisBootstrapCache(client)
	ctx := context.Background()
	mr.Close()

	// A dead redis degrades to "not seeded", never to an error.
	c.MarkSeeded(ctx, "org-1")
	assert.False(t, c.IsSeeded(ctx, "org-1"))
}

func TestMemoryBootstrapCache(t *testing.T) {
	c := NewMemoryBootstrapCache()
	ctx := context.Background()

	assert.False(t, c.IsSeeded(ctx, "org-1"))
	c.MarkSeeded(ctx, "org-1")
	assert.True(t, c.IsSeeded(ctx, "org-1"))
	assert.False(t, c.IsSeeded(ctx, "org-2"))
}
