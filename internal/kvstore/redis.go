package kvstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/freshplate/ordering-client/internal/config"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ordering_client"

// redisStore backs the key-value contract with Redis for shared kiosk-style
// deployments where several terminals present the same cart and session.
type redisStore struct {
	client *redis.Client
}

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {

	redisURL := cfg.RedisConnect.GetDSN()

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("✅ Successfully connected to Redis")

	return client, nil
}

func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (r *redisStore) key(key string) string {
	return redisKeyPrefix + ":" + key
}

func (r *redisStore) Get(key string) (string, bool, error) {

	value, err := r.client.Get(context.Background(), r.key(key)).Result()
	if err != nil {

		if err == redis.Nil {
			return "", false, nil
		}

		return "", false, fmt.Errorf("failed to get key %s from redis: %w", key, err)
	}

	return value, true, nil
}

func (r *redisStore) Set(key, value string) error {

	// no TTL: client state lives until explicitly cleared
	if err := r.client.Set(context.Background(), r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set key %s in redis: %w", key, err)
	}

	return nil
}

func (r *redisStore) Delete(key string) error {

	if err := r.client.Del(context.Background(), r.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s from redis: %w", key, err)
	}

	return nil
}

func (r *redisStore) Close() error {
	return r.client.Close()
}
