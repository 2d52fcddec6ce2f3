package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "missionboard:"

// RedisSlots keeps slots in Redis so several machines can share one session.
type RedisSlots struct {
	client *redis.Client
}

func NewRedisSlots(addr, password string, db int) *RedisSlots {
	return &RedisSlots{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (s *RedisSlots) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	return nil
}

func (s *RedisSlots) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("slot get: %w", err)
	}
	return v, true, nil
}

func (s *RedisSlots) Put(ctx context.Context, key string, value string) error {
	if err := s.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("slot put: %w", err)
	}
	return nil
}

func (s *RedisSlots) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("slot delete: %w", err)
	}
	return nil
}

func (s *RedisSlots) Close() error {
	return s.client.Close()
}
