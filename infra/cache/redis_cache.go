package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/finance-tracker/pkg/cache"
	"github.com/redis/go-redis/v9"
)

// RedisRateCache implements cache.RateCache on Redis GET/SETEX.
type RedisRateCache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

var _ cache.RateCache = (*RedisRateCache)(nil)

// RedisOptions are the connection settings. Timeouts are mandatory; zero
// values fall back to 5s dial and 3s read/write.
type RedisOptions struct {
	URL          string
	KeyPrefix    string
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewRedisRateCache parses opts.URL and creates the client. It does not
// dial; call Connect.
func NewRedisRateCache(opts RedisOptions, logger *slog.Logger) (*RedisRateCache, error) {
	opt, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opt.DialTimeout = durationOr(opts.DialTimeout, 5*time.Second)
	opt.ReadTimeout = durationOr(opts.ReadTimeout, 3*time.Second)
	opt.WriteTimeout = durationOr(opts.WriteTimeout, 3*time.Second)
	if opts.PoolSize > 0 {
		opt.PoolSize = opts.PoolSize
	}
	return NewRedisRateCacheWithOptions(opt, opts.KeyPrefix, logger), nil
}

// NewRedisRateCacheWithOptions creates a RedisRateCache from redis.Options.
func NewRedisRateCacheWithOptions(
	opt *redis.Options,
	prefix string,
	logger *slog.Logger,
) *RedisRateCache {
	return &RedisRateCache{
		client: redis.NewClient(opt),
		prefix: prefix,
		logger: logger.With("cache", "redis"),
	}
}

func (r *RedisRateCache) key(key string) string {
	return r.prefix + key
}

func (r *RedisRateCache) Connect(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	r.logger.Info("Connected to Redis", "addr", r.client.Options().Addr)
	return nil
}

func (r *RedisRateCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("Redis cache miss", "key", key)
		return "", false, nil
	}
	if err != nil {
		r.logger.Error("Redis cache get error", "key", key, "error", err)
		return "", false, err
	}
	r.logger.Debug("Redis cache hit", "key", key, "value", val)
	return val, true, nil
}

func (r *RedisRateCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.SetEx(ctx, r.key(key), value, ttl).Err(); err != nil {
		r.logger.Error("Redis cache set error", "key", key, "error", err)
		return err
	}
	r.logger.Debug("Redis cache set", "key", key, "value", value, "ttl", ttl)
	return nil
}

func (r *RedisRateCache) Close() error {
	return r.client.Close()
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}
