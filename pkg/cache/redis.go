package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig selects a Redis server. Addr is either host:port or a
// redis:// or rediss:// URL, which may carry credentials and a database.
type RedisConfig struct {
	Addr string
	// DialTimeout bounds each connection attempt; zero keeps the client
	// default.
	DialTimeout time.Duration
}

// RedisCache stores entries as plain Redis strings with native expiry.
type RedisCache struct {
	client *redis.Client
}

// RedisOptions converts cfg into client options without connecting.
func RedisOptions(cfg RedisConfig) (*redis.Options, error) {
	var opts *redis.Options
	if strings.Contains(cfg.Addr, "://") {
		parsed, err := redis.ParseURL(cfg.Addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis address: %w", err)
		}
		opts = parsed
	} else {
		if cfg.Addr == "" {
			return nil, errors.New("parse redis address: empty")
		}
		opts = &redis.Options{Addr: cfg.Addr}
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	return opts, nil
}

// NewRedisCache connects to the server in cfg and pings it. Connection
// failures are retried with backoff; a server reply is not.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	opts, err := RedisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := ping(ctx, client); err != nil {
		client.Close()
		return nil, err
	}
	return &RedisCache{client: client}, nil
}

// pingAttempts bounds the pings sent before NewRedisCache gives up.
const pingAttempts = 3

// pingBackoff is the pause after the first failed ping. It doubles after
// each further failure.
var pingBackoff = 200 * time.Millisecond

func ping(ctx context.Context, client *redis.Client) error {
	wait := pingBackoff
	for attempt := 1; ; attempt++ {
		err := client.Ping(ctx).Err()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !transient(err) || attempt == pingAttempts {
			return fmt.Errorf("%w: %v", ErrNetwork, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
			wait *= 2
		}
	}
}

// transient reports whether a failed ping may succeed when repeated.
// Replies from the server itself, such as NOAUTH, are final.
func transient(err error) bool {
	var reply redis.Error
	return !errors.As(err, &reply)
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return data, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return nil
}

func (c *RedisCache) Close() error { return c.client.Close() }

var _ Cache = (*RedisCache)(nil)
