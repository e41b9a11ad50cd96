package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/platewise/v1/internal/ports/outbound"
)

// RedisRepository implements outbound.CacheRepository on a Redis instance,
// sharing solved plans between replicas.
type RedisRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// RedisConfig carries the Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	Database int
}

// NewRedisRepository connects to Redis and verifies the connection
func NewRedisRepository(ctx context.Context, cfg RedisConfig, logger *zap.Logger) (outbound.CacheRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	logger.Info("connected to redis cache",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
	)
	return &RedisRepository{client: client, logger: logger.Named("redis-cache")}, nil
}

// Get returns the cached value or outbound.ErrCacheMiss
func (c *RedisRepository) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, outbound.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// Set stores a value with a TTL
func (c *RedisRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes a key
func (c *RedisRepository) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
