package session_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"RestaurantPOS/internal/domain/session"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "pos_session:"

type RedisSessionRepo struct {
	client *redis.Client
}

func NewRedisSessionRepo(client *redis.Client) session.Repo {
	return &RedisSessionRepo{client: client}
}

func redisKey(token string) string {
	return redisKeyPrefix + token
}

func (r *RedisSessionRepo) Load(ctx context.Context, token string) (*session.Staff, error) {
	raw, err := r.client.Get(ctx, redisKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var staff session.Staff
	if err := json.Unmarshal(raw, &staff); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &staff, nil
}

func (r *RedisSessionRepo) Save(ctx context.Context, token string, staff session.Staff, ttl time.Duration) error {
	raw, err := json.Marshal(staff)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := r.client.Set(ctx, redisKey(token), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (r *RedisSessionRepo) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, redisKey(token)).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}
