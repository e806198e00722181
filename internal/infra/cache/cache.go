package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "landing:"

// PageCache guarda o HTML já renderizado das landing pages publicadas.
type PageCache interface {
	Get(ctx context.Context, slug string) ([]byte, bool, error)
	Set(ctx context.Context, slug string, html []byte) error
	Invalidate(ctx context.Context, slug string) error
}

type RedisPageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPageCache connects to url (redis://host:port/db) and pings it
// before returning.
func NewRedisPageCache(ctx context.Context, url string, ttl time.Duration) (*RedisPageCache, error) {
	if url == "" {
		return nil, errors.New("redis URL is required")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisPageCache{client: client, ttl: ttl}, nil
}

func pageKey(slug string) string { return keyPrefix + slug }

func (c *RedisPageCache) Get(ctx context.Context, slug string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, pageKey(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *RedisPageCache) Set(ctx context.Context, slug string, html []byte) error {
	return c.client.Set(ctx, pageKey(slug), html, c.ttl).Err()
}

func (c *RedisPageCache) Invalidate(ctx context.Context, slug string) error {
	return c.client.Del(ctx, pageKey(slug)).Err()
}

func (c *RedisPageCache) Healthy(ctx context.Context) bool {
	return c.client.Ping(ctx).Err() == nil
}

func (c *RedisPageCache) Close() error {
	return c.client.Close()
}

// NoopPageCache is used when REDIS_URL is not set.
type NoopPageCache struct{}

func (NoopPageCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NoopPageCache) Set(context.Context, string, []byte) error         { return nil }
func (NoopPageCache) Invalidate(context.Context, string) error          { return nil }
