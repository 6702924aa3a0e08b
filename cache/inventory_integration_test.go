//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"Gin_postgres_redis_inventory_ledger/db"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestInventoryCacheAgainstContainer(t *testing.T) {
	ctx := context.Background()
	redisC, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisC.Terminate(context.Background()) })

	uri, err := redisC.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)
	rdb := redis.NewClient(opts)
	t.Cleanup(func() { _ = rdb.Close() })

	c := NewInventoryCache(rdb, 2*time.Second)
	_, gen, _ := c.Get(ctx)
	c.Set(ctx, gen, []db.InventoryRow{{ID: "e1", Quantity: 3}})

	rows, _, ok := c.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, 3, rows[0].Quantity)

	// TTL 到期后自动失效
	require.Eventually(t, func() bool {
		_, _, ok := c.Get(ctx)
		return !ok
	}, 10*time.Second, 200*time.Millisecond)

	// 失效之后，用旧代号回写的快照读不到
	_, gen, _ = c.Get(ctx)
	c.Invalidate(ctx)
	c.Set(ctx, gen, []db.InventoryRow{{ID: "e1", Quantity: 3}})
	_, _, ok = c.Get(ctx)
	assert.False(t, ok)
}
