package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisStore 每个集合一个 key：<prefix>:<collection>
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) key(collection string) string {
	return fmt.Sprintf("%s:%s", s.prefix, collection)
}

func (s *RedisStore) Read(ctx context.Context, collection string) ([]json.RawMessage, error) {
	data, err := s.rdb.Get(ctx, s.key(collection)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeArray(collection, data)
}

func (s *RedisStore) Write(ctx context.Context, collection string, records []json.RawMessage) error {
	data, err := encodeArray(collection, records)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(collection), data, 0).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
