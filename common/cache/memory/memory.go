// Package memory is an in-process cache.Cache used when no Redis address is configured.
package memory

import (
	"context"
	"encoding"
	"sync"
	"time"

	"empleos/common/cache"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

type Cache struct {
	mu         sync.Mutex
	items      map[string]entry
	defaultTTL time.Duration
	now        func() time.Time
	stop       chan struct{}
	closed     bool
}

func New(opts cache.Options) *Cache {
	ttl := opts.PageTTL
	if ttl == 0 {
		ttl = cache.DefaultOptions().PageTTL
	}
	c := &Cache{
		items:      make(map[string]entry),
		defaultTTL: ttl,
		now:        time.Now,
		stop:       make(chan struct{}),
	}
	if opts.SweepInterval > 0 {
		go c.sweep(opts.SweepInterval)
	}
	return c
}

func (c *Cache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	if key == "" {
		return cache.ErrInvalidKey
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = append([]byte(nil), v...)
	case string:
		data = []byte(v)
	case encoding.BinaryMarshaler:
		b, err := v.MarshalBinary()
		if err != nil {
			return err
		}
		data = b
	default:
		return cache.ErrInvalidValue
	}
	if ttl == 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return cache.ErrClosed
	}
	c.items[key] = entry{data: data, expiresAt: c.now().Add(ttl)}
	return nil
}

func (c *Cache) Get(_ context.Context, key string, value interface{}) error {
	if key == "" {
		return cache.ErrInvalidKey
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return cache.ErrClosed
	}
	e, ok := c.items[key]
	if ok && !c.now().Before(e.expiresAt) {
		delete(c.items, key)
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		return cache.ErrNotFound
	}

	switch v := value.(type) {
	case *[]byte:
		*v = append([]byte(nil), e.data...)
	case *string:
		*v = string(e.data)
	case encoding.BinaryUnmarshaler:
		return v.UnmarshalBinary(e.data)
	default:
		return cache.ErrInvalidValue
	}
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.stop)
	}
	return nil
}

func (c *Cache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := c.now()
			for k, e := range c.items {
				if !now.Before(e.expiresAt) {
					delete(c.items, k)
				}
			}
			c.mu.Unlock()
		}
	}
}
