package utils

import (
	"context"
	"fmt"
	"time"

	"gigmatch/config"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient connects to the configured Redis server on the given DB and
// verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.Config, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis db %d: %w", db, err)
	}
	return client, nil
}

// InitCache returns the client for the recommendation cache.
func InitCache(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	return NewRedisClient(ctx, cfg, cfg.RedisCacheDB)
}
