package database

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/salonkit/settlement-api/internal/config"
)

// NewRedisClient connects to Redis and verifies the connection. Returns an
// error instead of a client when Redis is unreachable so the caller can
// fall back to in-process locking.
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}
