// Package cache holds the read-through redis cache for wallet views.
// Postgres stays the source of truth; every ledger mutation invalidates the
// cached balance and the next read re-populates it.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type BalanceCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *BalanceCache {
	return &BalanceCache{
		rdb: rdb,
		ttl: ttl,
	}
}

func balanceKey(userID int) string {
	return fmt.Sprintf("wallet:balance:%d", userID)
}

func (c *BalanceCache) Get(ctx context.Context, userID int) (int64, bool, error) {
	balance, err := c.rdb.Get(ctx, balanceKey(userID)).Int64()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return balance, true, nil
}

func (c *BalanceCache) Set(ctx context.Context, userID int, balance int64) error {
	return c.rdb.Set(ctx, balanceKey(userID), balance, c.ttl).Err()
}

func (c *BalanceCache) Invalidate(ctx context.Context, userID int) error {
	return c.rdb.Del(ctx, balanceKey(userID)).Err()
}
