// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"

	"salesops-workers/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the connection behind the triage session store.
type RedisClient struct {
	Client *redis.Client
}

// NewRedis builds a client sized by the database.redis section. It does not
// dial; call Ping to check the server.
func NewRedis(cfg config.RedisConfig) (*RedisClient, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis: address is required")
	}
	return &RedisClient{Client: redis.NewClient(redisOptions(cfg))}, nil
}

func redisOptions(cfg config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  config.GetDuration(cfg.DialTimeout),
		ReadTimeout:  config.GetDuration(cfg.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.WriteTimeout),
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	}
}

// Ping checks that the session store is reachable.
func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}
