package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// cached decorates a UseCase with a Redis cache keyed by owner and
// range. A cache failure falls back to recomputation.
type cached struct {
	inner UseCase
	rdb   *redis.Client
	ttl   time.Duration
}

// NewCached wraps uc so repeated dashboard loads within ttl do not
// re-scan the event tables.
func NewCached(uc UseCase, rdb *redis.Client, ttl time.Duration) UseCase {
	return &cached{inner: uc, rdb: rdb, ttl: ttl}
}

func (c *cached) ForOwner(ctx context.Context, ownerID uuid.UUID, days int) (Summary, error) {
	return c.lookup(ctx, ownerID, days, func() (Summary, error) {
		return c.inner.ForOwner(ctx, ownerID, days)
	})
}

func (c *cached) ForAll(ctx context.Context, days int) (Summary, error) {
	return c.lookup(ctx, uuid.Nil, days, func() (Summary, error) {
		return c.inner.ForAll(ctx, days)
	})
}

func (c *cached) lookup(ctx context.Context, ownerID uuid.UUID, days int, compute func() (Summary, error)) (Summary, error) {
	key := fmt.Sprintf("analytics:%s:%d", ownerID, days)

	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var sum Summary
		if json.Unmarshal(raw, &sum) == nil {
			return sum, nil
		}
	}

	sum, err := compute()
	if err != nil {
		return Summary{}, err
	}
	if raw, err := json.Marshal(sum); err == nil {
		if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			log.Printf("analytics: cache write for %s: %v", key, err)
		}
	}
	return sum, nil
}
