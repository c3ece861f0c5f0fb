// Package redisstore keeps the profile document in Redis string keys.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-profile-manager/internal/domain/repository"
)

// KVStore stores each key as a plain Redis string without expiry.
type KVStore struct {
	rdb    *redis.Client
	prefix string
}

// NewKVStore namespaces every key with prefix (e.g. "profiles:").
func NewKVStore(rdb *redis.Client, prefix string) *KVStore {
	return &KVStore{rdb: rdb, prefix: prefix}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

var _ repository.KVStore = (*KVStore)(nil)
