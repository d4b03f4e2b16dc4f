package cache

import (
	"context"
	"encoding/json"
	"time"

	"movie-ticket-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache is a small cache-aside helper over redis. A nil client disables
// caching entirely; every method degrades to a no-op so callers never have
// to branch on whether redis is up.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisClient connects to redis using the application config. It returns
// nil when the server is unreachable; callers should keep going without
// caching in that case.
func NewRedisClient(config utils.RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}

func New(client *redis.Client, config utils.RedisConfig, log *zap.Logger) *Cache {
	ttl := time.Duration(config.TTLSecs) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("component", "cache")),
	}
}

// Get unmarshals the cached value for key into dest. Returns false on a
// miss, on a disabled cache, or when the stored payload cannot be decoded.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("Cache read failed", zap.Error(err), zap.String("key", key))
		}
		return false
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		c.log.Warn("Cache payload corrupt", zap.Error(err), zap.String("key", key))
		return false
	}
	return true
}

// Set stores value under key for the configured TTL. Failures are logged
// and swallowed; a missing cache entry is never an error.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	if c == nil || c.client == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("Cache marshal failed", zap.Error(err), zap.String("key", key))
		return
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn("Cache write failed", zap.Error(err), zap.String("key", key))
	}
}

// InvalidatePrefix drops every key under the given prefix. Used after
// mutations so list pages and detail entries do not serve stale data.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	if c == nil || c.client == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn("Cache invalidate failed", zap.Error(err), zap.String("key", iter.Val()))
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("Cache scan failed", zap.Error(err), zap.String("prefix", prefix))
	}
}
