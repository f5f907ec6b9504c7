package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	viewKeyPrefix = "entity:views:"
	viewKeyTTL    = 7 * 24 * time.Hour
)

// ViewCache buffers entity view counters in Redis. Page views only touch
// Redis; the flusher periodically drains the pending counters into MySQL,
// which stays the source of truth. Readers overlay the pending delta on
// top of the stored value so counts never appear to go backwards.
type ViewCache struct {
	client *redis.Client
}

// NewViewCache creates a view cache.
func NewViewCache(client *redis.Client) *ViewCache {
	return &ViewCache{client: client}
}

// Increment bumps the pending counter for an entity and refreshes its TTL.
func (c *ViewCache) Increment(ctx context.Context, entityID int64) error {
	key := fmt.Sprintf("%s%d", viewKeyPrefix, entityID)

	if err := c.client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to increment view counter: %w", err)
	}
	if err := c.client.Expire(ctx, key, viewKeyTTL).Err(); err != nil {
		return fmt.Errorf("failed to refresh view counter TTL: %w", err)
	}
	return nil
}

// Get reads the pending (not yet flushed) counter; a missing key reads
// as zero.
func (c *ViewCache) Get(ctx context.Context, entityID int64) (int64, error) {
	key := fmt.Sprintf("%s%d", viewKeyPrefix, entityID)

	val, err := c.client.Get(ctx, key).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read view counter: %w", err)
	}
	return val, nil
}

// Drain atomically collects and clears every pending counter. Counters
// drained before an error are still returned so the caller can persist
// them.
func (c *ViewCache) Drain(ctx context.Context) (map[int64]int64, error) {
	pending := make(map[int64]int64)

	iter := c.client.Scan(ctx, 0, viewKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		val, err := c.client.GetDel(ctx, key).Int64()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return pending, fmt.Errorf("failed to drain view counter %s: %w", key, err)
		}

		id, err := strconv.ParseInt(strings.TrimPrefix(key, viewKeyPrefix), 10, 64)
		if err != nil {
			continue
		}
		pending[id] += val
	}
	if err := iter.Err(); err != nil {
		return pending, fmt.Errorf("failed to scan view counters: %w", err)
	}
	return pending, nil
}
