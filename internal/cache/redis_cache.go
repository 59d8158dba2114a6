package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCache implements Cache using Redis
type redisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL    string
	Prefix string
	TTL    time.Duration
}

// NewRedisCache creates a new Redis-backed view cache
func NewRedisCache(cfg RedisConfig, logger *slog.Logger) (Cache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("connected to Redis",
		slog.String("addr", opts.Addr),
		slog.String("prefix", cfg.Prefix),
	)

	return newRedisCache(client, cfg, logger), nil
}

func newRedisCache(client *redis.Client, cfg RedisConfig, logger *slog.Logger) *redisCache {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &redisCache{
		client: client,
		prefix: cfg.Prefix,
		ttl:    ttl,
		logger: logger,
	}
}

// Get reads an entry under the view's current generation
func (c *redisCache) Get(ctx context.Context, view View, key string, dest any) (int64, bool, error) {
	generation, err := c.generation(ctx, view)
	if err != nil {
		return 0, false, err
	}

	data, err := c.client.Get(ctx, entryKey(c.prefix, view, generation, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return generation, false, nil
	}
	if err != nil {
		return generation, false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return generation, false, fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}

	return generation, true, nil
}

// Set writes an entry under the generation its lookup saw. If the view was
// invalidated in between, the entry sits under a key no reader asks for.
func (c *redisCache) Set(ctx context.Context, view View, generation int64, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := c.client.Set(ctx, entryKey(c.prefix, view, generation, key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	return nil
}

// Invalidate bumps the view's generation counter
func (c *redisCache) Invalidate(ctx context.Context, view View) error {
	generation, err := c.client.Incr(ctx, generationKey(c.prefix, view)).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate %s view: %w", view, err)
	}

	c.logger.Debug("cache view invalidated",
		slog.String("view", string(view)),
		slog.Int64("generation", generation),
	)

	return nil
}

// Health checks if Redis is healthy
func (c *redisCache) Health(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *redisCache) Close() error {
	c.logger.Info("closing Redis connection")
	return c.client.Close()
}

func (c *redisCache) generation(ctx context.Context, view View) (int64, error) {
	value, err := c.client.Get(ctx, generationKey(c.prefix, view)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read %s generation: %w", view, err)
	}

	generation, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s generation %q: %w", view, value, err)
	}

	return generation, nil
}
