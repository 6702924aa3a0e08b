// Package cache keeps a short-lived Redis copy of the joined inventory view.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"Gin_postgres_redis_inventory_ledger/db"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NoGeneration is returned when the generation could not be read; Set ignores it.
const NoGeneration int64 = -1

const generationKey = "inv:inventory:gen"

func snapshotKey(gen int64) string { return fmt.Sprintf("inv:inventory:snapshot:%d", gen) }

// InventoryCache 快照按代号存放：Invalidate 只把代号加一，旧快照不再被读到。
// 读库期间发生了失效，回写会落到旧代号的 key 上，不会覆盖新数据。
type InventoryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewInventoryCache returns nil when rdb is nil; a nil cache always misses.
func NewInventoryCache(rdb *redis.Client, ttl time.Duration) *InventoryCache {
	if rdb == nil {
		return nil
	}
	return &InventoryCache{rdb: rdb, ttl: ttl}
}

func (c *InventoryCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get 返回快照和当前代号。未命中时代号仍然有效，读库后原样交给 Set。
// Redis 故障当作未命中，只记日志。
func (c *InventoryCache) Get(ctx context.Context) ([]db.InventoryRow, int64, bool) {
	if c == nil {
		return nil, NoGeneration, false
	}
	gen, err := c.generation(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("inventory cache generation read failed")
		return nil, NoGeneration, false
	}
	b, err := c.rdb.Get(ctx, snapshotKey(gen)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("inventory cache read failed")
		}
		return nil, gen, false
	}
	var rows []db.InventoryRow
	if err := json.Unmarshal(b, &rows); err != nil {
		log.Warn().Err(err).Msg("inventory cache entry corrupt")
		_ = c.rdb.Del(ctx, snapshotKey(gen)).Err()
		return nil, gen, false
	}
	return rows, gen, true
}

// Set stores rows under the generation observed before they were loaded.
func (c *InventoryCache) Set(ctx context.Context, gen int64, rows []db.InventoryRow) {
	if c == nil || gen == NoGeneration {
		return
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, snapshotKey(gen), b, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("inventory cache write failed")
	}
}

// Invalidate 任何库存变动之后调用
func (c *InventoryCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.rdb.Incr(ctx, generationKey).Err(); err != nil {
		log.Warn().Err(err).Msg("inventory cache invalidate failed")
	}
}
