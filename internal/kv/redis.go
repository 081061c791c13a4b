package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/redis/go-redis/v9"
)

// redisMaxRetries bounds optimistic transaction retries in Update.
const redisMaxRetries = 5

// RedisStore implements Store over a Redis server. Keys are namespaced
// with prefix.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// OpenRedis connects using a redis:// URL and verifies the connection.
func OpenRedis(ctx context.Context, url string) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	c := redis.NewClient(opt)
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisStore(c, "gophdiary:"), nil
}

func (s *RedisStore) key(k string) string {
	return s.prefix + k
}

// Get returns the value for key.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return v, nil
}

// Put stores the value without expiry.
func (s *RedisStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Update watches the key and retries when a concurrent writer wins.
func (s *RedisStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	k := s.key(key)

	txf := func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, k).Bytes()
		found := true
		if errors.Is(err, redis.Nil) {
			found, err = false, nil
		}
		if err != nil {
			return fmt.Errorf("redis get: %w", err)
		}

		next, err := fn(cur, found)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, k, next, 0)
			return nil
		})
		return err
	}

	for i := 0; i < redisMaxRetries; i++ {
		err := s.client.Watch(ctx, txf, k)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("redis update %q: too many concurrent writers", key)
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
