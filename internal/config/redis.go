package config

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// NewRedis اتصال به Redis را راه‌اندازی می‌کند
func NewRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// بررسی اتصال به Redis
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("error connecting to Redis: %w", err)
	}
	return client, nil
}
