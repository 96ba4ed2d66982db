package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Used when the configuration leaves a pool setting at zero.
const (
	fallbackMaxConns          int32 = 10
	fallbackMaxConnIdleTime         = 5 * time.Minute
	fallbackHealthCheckPeriod       = time.Minute
	fallbackPingTimeout             = 5 * time.Second
)

// NewConnectionPool opens the pool backing the postgres customer store and
// fails unless the database answers a ping within cfg.PingTimeout.
func NewConnectionPool(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is empty in configuration")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewConnectionPool, using default stderr handler")
	}

	poolConfig, err := configurePool(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("Connecting to customer database",
		slog.String("host", poolConfig.ConnConfig.Host),
		slog.String("db", poolConfig.ConnConfig.Database),
		slog.Int("maxConns", int(poolConfig.MaxConns)),
		slog.Duration("maxConnIdleTime", poolConfig.MaxConnIdleTime),
		slog.Duration("healthCheckPeriod", poolConfig.HealthCheckPeriod),
	)
	dbpool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := verifyConnection(ctx, dbpool, pingTimeout(cfg), logger); err != nil {
		dbpool.Close()
		return nil, err
	}

	logger.Info("Customer database ready", slog.String("host", poolConfig.ConnConfig.Host))
	return dbpool, nil
}

func configurePool(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}

	poolConfig.MaxConns = fallbackMaxConns
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	poolConfig.MaxConnIdleTime = fallbackMaxConnIdleTime
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	poolConfig.HealthCheckPeriod = fallbackHealthCheckPeriod
	if cfg.HealthCheckPeriod > 0 {
		poolConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	}

	return poolConfig, nil
}

func pingTimeout(cfg config.DatabaseConfig) time.Duration {
	if cfg.PingTimeout > 0 {
		return cfg.PingTimeout
	}
	return fallbackPingTimeout
}

func verifyConnection(ctx context.Context, dbpool *pgxpool.Pool, timeout time.Duration, logger *slog.Logger) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := dbpool.Ping(pingCtx); err != nil {
		logger.Error("Customer database did not answer ping", slog.Duration("timeout", timeout), slog.Any("error", err))
		return fmt.Errorf("failed to ping database on connect: %w", err)
	}

	return nil
}
