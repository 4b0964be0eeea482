package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mente-leve/wellbeing-service/internal/utils"
	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	client *redis.Client
	logger utils.Logger
}

// NewRedisCache returns the redis-backed CacheService.
func NewRedisCache(client *redis.Client, logger utils.Logger) CacheService {
	return &redisCache{
		client: client,
		logger: logger,
	}
}

func userIndexKey(userID uint) string {
	return fmt.Sprintf("cachekeys:user:%d", userID)
}

func (r *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCache) SetForUser(ctx context.Context, userID uint, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, ttl)
	pipe.SAdd(ctx, userIndexKey(userID), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (r *redisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *redisCache) InvalidateUser(ctx context.Context, userID uint) error {
	indexKey := userIndexKey(userID)

	keys, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	if len(keys) > 0 {
		pipe.Del(ctx, keys...)
	}
	pipe.Del(ctx, indexKey)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to invalidate user cache", "user_id", userID, "error", err)
		return err
	}

	return nil
}
