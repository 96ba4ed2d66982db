package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/config"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 10 * time.Second

// NewRedisClient connects and pings. The caller owns the returned client.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*redis.Client, error) {
	logger.Info("Initializing central Redis client...", "addr", cfg.Addr)
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address (addr) is not configured")
	}

	rdb := redis.NewClient(newOptions(cfg))

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	logger.Info("Central Redis client connected successfully.", "addr", cfg.Addr, "db", cfg.DB)
	return rdb, nil
}

func newOptions(cfg config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func Close(redisClient *redis.Client, logger *slog.Logger) {
	if redisClient == nil {
		logger.Info("Redis client was not initialized, skipping close.")
		return
	}
	logger.Info("Closing central Redis client connection...")
	if err := redisClient.Close(); err != nil {
		logger.Error("Failed to close central Redis client connection gracefully", "error", err)
		return
	}
	logger.Info("Central Redis client connection closed.")
}
