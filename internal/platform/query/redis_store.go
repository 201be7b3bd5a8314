package query

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisNamespace = "vetclinic:query:"

// RedisStore comparte el cache entre réplicas del BFF.
type RedisStore struct {
	rdb       *redis.Client
	namespace string
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, namespace: defaultRedisNamespace}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.rdb.Get(ctx, s.namespace+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query: redis get: %w", err)
	}
	return data, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, s.namespace+key, val, ttl).Err(); err != nil {
		return fmt.Errorf("query: redis set: %w", err)
	}
	return nil
}

// DeleteMatching recorre con SCAN (nunca KEYS) las dos formas posibles: key exacta y sub-keys.
func (s *RedisStore) DeleteMatching(ctx context.Context, prefix string) (int, error) {
	escaped := escapeGlob(prefix)
	patterns := []string{
		s.namespace + "*" + scopeSep + escaped,
		s.namespace + "*" + scopeSep + escaped + ":*",
	}
	if prefix == "" {
		patterns = []string{s.namespace + "*"}
	}

	total := 0
	for _, pattern := range patterns {
		var cursor uint64
		for {
			keys, next, err := s.rdb.Scan(ctx, cursor, pattern, 200).Result()
			if err != nil {
				return total, fmt.Errorf("query: redis scan: %w", err)
			}
			if len(keys) > 0 {
				n, err := s.rdb.Del(ctx, keys...).Result()
				if err != nil {
					return total, fmt.Errorf("query: redis del: %w", err)
				}
				total += int(n)
			}
			cursor = next
			if cursor == 0 {
				break
			}
		}
	}
	return total, nil
}

func escapeGlob(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)
	return r.Replace(s)
}
