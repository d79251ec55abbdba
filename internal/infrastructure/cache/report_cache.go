// Package cache keeps computed reports in redis. Every tenant has a version counter;
// bumping it on a ledger write orphans all of that tenant's cached reports.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/ledger-api/internal/config"
)

// NewRedisClient connects and pings redis
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect redis at %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

type ReportCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewReportCache(rdb *redis.Client, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &ReportCache{rdb: rdb, ttl: ttl}
}

func versionKey(tenantID uuid.UUID) string {
	return "report:version:" + tenantID.String()
}

func entryKey(tenantID uuid.UUID, version int64, key string) string {
	return fmt.Sprintf("report:%s:v%d:%s", tenantID, version, key)
}

func (c *ReportCache) version(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	v, err := c.rdb.Get(ctx, versionKey(tenantID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Get decodes the cached report into dest. The bool is false on a miss. The returned
// version is the one the lookup was made under and must be handed back to Set.
func (c *ReportCache) Get(ctx context.Context, tenantID uuid.UUID, key string, dest interface{}) (int64, bool, error) {
	v, err := c.version(ctx, tenantID)
	if err != nil {
		return 0, false, err
	}
	raw, err := c.rdb.Get(ctx, entryKey(tenantID, v, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return v, false, err
	}
	return v, true, nil
}

// Set stores value under version. A report built before an Invalidate lands under the
// old version and is never read.
func (c *ReportCache) Set(ctx context.Context, tenantID uuid.UUID, version int64, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, entryKey(tenantID, version, key), raw, c.ttl).Err()
}

// Invalidate bumps the tenant's version; stale entries expire on their own TTL
func (c *ReportCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	return c.rdb.Incr(ctx, versionKey(tenantID)).Err()
}
