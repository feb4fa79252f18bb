package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/bundleworks/commerce-backend/internal/logger"
	"github.com/bundleworks/commerce-backend/internal/utils"
)

// AvailabilityCache is a short-TTL read cache sitting in front of the
// availability endpoint. It caches the HTTP-facing answer only; the stock
// aggregation itself stays uncached and is recomputed on every miss.
type AvailabilityCache interface {
	Get(ctx context.Context, key string) (*BundleAvailability, bool)
	Set(ctx context.Context, key string, availability *BundleAvailability)
	Invalidate(ctx context.Context, bundleKeyPrefix string)
}

type availabilityCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewAvailabilityCache(log *logger.Logger) (AvailabilityCache, error) {
	addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", log))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttl := utils.GetEnvAsInt("AVAILABILITY_CACHE_TTL_SECONDS", 15, log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &availabilityCache{
		log: log.With("service", "AvailabilityCache"),
		rdb: rdb,
		ttl: time.Duration(ttl) * time.Second,
	}, nil
}

func (c *availabilityCache) Get(ctx context.Context, key string) (*BundleAvailability, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(key)).Bytes()
	if err == goredis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("Cache read failed (treating as miss)", "key", key, "error", err)
		return nil, false
	}
	var availability BundleAvailability
	if err := json.Unmarshal(raw, &availability); err != nil {
		c.log.Warn("Cache entry corrupt (treating as miss)", "key", key, "error", err)
		return nil, false
	}
	return &availability, true
}

func (c *availabilityCache) Set(ctx context.Context, key string, availability *BundleAvailability) {
	raw, err := json.Marshal(availability)
	if err != nil {
		c.log.Warn("Cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(key), raw, c.ttl).Err(); err != nil {
		c.log.Warn("Cache write failed", "key", key, "error", err)
	}
}

func (c *availabilityCache) Invalidate(ctx context.Context, bundleKeyPrefix string) {
	iter := c.rdb.Scan(ctx, 0, cacheKey(bundleKeyPrefix)+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn("Cache invalidation failed", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("Cache invalidation scan failed", "prefix", bundleKeyPrefix, "error", err)
	}
}

func cacheKey(key string) string {
	return "availability:" + key
}

// NoopAvailabilityCache is used when Redis is not configured.
type NoopAvailabilityCache struct{}

func (NoopAvailabilityCache) Get(ctx context.Context, key string) (*BundleAvailability, bool) {
	return nil, false
}
func (NoopAvailabilityCache) Set(ctx context.Context, key string, availability *BundleAvailability) {
}
func (NoopAvailabilityCache) Invalidate(ctx context.Context, bundleKeyPrefix string) {}
