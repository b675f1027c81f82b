// Package redisstore is a Redis-backed Token Store backend, used when the
// session core runs server-side on behalf of a device (one key prefix per
// installation).
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jrsteele09/go-legal-client/tokenstore"
	"github.com/redis/go-redis/v9"
)

var _ tokenstore.Backend = (*Store)(nil)

// Store implements tokenstore.Backend on a Redis client.
type Store struct {
	client *redis.Client
	prefix string
}

// New creates a Store whose keys are namespaced under prefix.
func New(client *redis.Client, prefix string) (*Store, error) {
	if client == nil {
		return nil, errors.New("[redisstore New] client is required")
	}
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = "legal-client"
	}
	return &Store{client: client, prefix: prefix}, nil
}

// Open parses redisURL, pings the server and returns a Store.
func Open(ctx context.Context, redisURL, prefix string) (*Store, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}
	client := redis.NewClient(options)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping failed: %w", err)
	}
	return New(client, prefix)
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) key(k string) string {
	return s.prefix + ":" + k
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis_get_failed: %w", err)
	}
	return value, true, nil
}

// SetMany writes every value inside MULTI/EXEC.
func (s *Store) SetMany(ctx context.Context, values map[string]string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range values {
			pipe.Set(ctx, s.key(k), v, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_set_many_failed: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis_delete_failed: %w", err)
	}
	return nil
}
