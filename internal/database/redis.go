package database

import (
	"context"

	"finance-tracker-backend/config"

	"github.com/go-redis/redis/v8"
)

var (
	RedisClient *redis.Client
	Ctx         = context.Background()
)

// ConnectRedis dials the configured Redis. When no host is configured the
// client stays nil and Redis-backed features (token denylist, user cache)
// are disabled.
func ConnectRedis(cfg *config.Config) error {
	if !cfg.RedisEnabled() {
		RedisClient = nil
		return nil
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisFullAddr(),
		Password: cfg.RedisPassword,
		DB:       0, // use default DB
	})

	_, err := RedisClient.Ping(Ctx).Result()
	return err
}
