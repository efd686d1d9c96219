package config

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var (
	// RedisClient is nil when Redis is not configured. Callers must check.
	RedisClient *redis.Client
	Ctx         = context.Background()
)

func ConnectRedis(cfg RedisConfig) error {
	if cfg.URL == "" {
		Log.Warn("[redis] redis.url empty, rate limiting and cross-instance cache invalidation disabled")
		return nil
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return fmt.Errorf("invalid redis.url: %w", err)
	}

	client := redis.NewClient(opt)

	res, err := client.Ping(Ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	RedisClient = client
	Log.Infof("[redis] connected: %s", res)
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		_ = RedisClient.Close()
	}
}
