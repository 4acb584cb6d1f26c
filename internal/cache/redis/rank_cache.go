package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/rank"
	"keeper-ledger/internal/storage"
)

// DefaultRankTTL is used when NewRankCache is given a non-positive TTL.
const DefaultRankTTL = 24 * time.Hour

// RankCache stores a season's parsed rank table.
//
// Key schema:
//
//	rank:{season} - hash with field "data" (JSON rank entries) and "count"
type RankCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRankCache creates a RankCache backed by the given Client.
func NewRankCache(c *Client, ttl time.Duration) *RankCache {
	if ttl <= 0 {
		ttl = DefaultRankTTL
	}
	return &RankCache{rdb: c.Underlying(), ttl: ttl}
}

func rankKey(season int) string { return "rank:" + strconv.Itoa(season) }

// Set stores the table entries for a season and refreshes the TTL.
func (rc *RankCache) Set(ctx context.Context, season int, table *rank.Table) error {
	if table == nil {
		return storage.ErrInvalidInput
	}
	entries := table.Entries()
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("redis: marshal rank table %d: %w", season, err)
	}

	key := rankKey(season)
	pipe := rc.rdb.TxPipeline()
	pipe.HSet(ctx, key, "data", data, "count", len(entries))
	pipe.Expire(ctx, key, rc.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: set rank table %d: %w", season, err)
	}
	return nil
}

// Get returns the cached table for a season.
// It returns storage.ErrNotFound when nothing is cached.
func (rc *RankCache) Get(ctx context.Context, season int) (*rank.Table, error) {
	data, err := rc.rdb.HGet(ctx, rankKey(season), "data").Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("redis: get rank table %d: %w", season, err)
	}

	var entries []domain.RankEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("redis: unmarshal rank table %d: %w", season, err)
	}
	return rank.NewTable(entries), nil
}

// Invalidate drops the cached table for a season.
func (rc *RankCache) Invalidate(ctx context.Context, season int) error {
	if err := rc.rdb.Del(ctx, rankKey(season)).Err(); err != nil {
		return fmt.Errorf("redis: invalidate rank table %d: %w", season, err)
	}
	return nil
}
