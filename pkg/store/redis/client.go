package redis

import (
	"context"
	"fmt"
	"time"

	"voltshop/pkg/config"

	"github.com/go-redis/redis/v8"
)

// RedisClient wraps the catalog's redis connection. The verdict cache and the
// rules-version counter live on top of it.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient connects to redis and verifies the connection before
// handing it out
func NewRedisClient(cfg *config.Config) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
	}

	return &RedisClient{client: client}, nil
}

// GetClient retrieves the underlying Redis client
func (r *RedisClient) GetClient() *redis.Client {
	return r.client
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}
