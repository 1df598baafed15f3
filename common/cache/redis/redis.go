package redis

import (
	"context"
	"encoding"
	"time"

	"empleos/common/cache"

	"github.com/redis/go-redis/v9"
)

// Cache keeps pages in Redis; entries expire through Redis key TTLs.
type Cache struct {
	client     *redis.Client
	defaultTTL time.Duration
}

func New(opts cache.Options) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.RedisAddr,
		Password: opts.RedisPassword,
		DB:       opts.RedisDB,
	})

	ttl := opts.PageTTL
	if ttl == 0 {
		ttl = cache.DefaultOptions().PageTTL
	}

	return &Cache{client: client, defaultTTL: ttl}
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if key == "" {
		return cache.ErrInvalidKey
	}
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *Cache) Get(ctx context.Context, key string, value interface{}) error {
	if key == "" {
		return cache.ErrInvalidKey
	}
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return cache.ErrNotFound
	}
	if err != nil {
		return err
	}

	switch v := value.(type) {
	case *[]byte:
		*v = val
	case *string:
		*v = string(val)
	case encoding.BinaryUnmarshaler:
		return v.UnmarshalBinary(val)
	default:
		return cache.ErrInvalidValue
	}

	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
