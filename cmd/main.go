package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/arwebdeveloper/credit-risk-analytics-server/docs"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/api"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/api/middleware"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/batch"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/config"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/domain/alert"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/domain/customer"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/event"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/infrastructure/cache"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/infrastructure/database/postgres"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/infrastructure/logging"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/infrastructure/storage/filestore"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// @title Credit Risk Analytics API
// @version 1.0
// @description Customer records for loan applicants, status review and risk alerts.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
func main() {
	cfg, logger := initializeApp()

	repo, dbPool := initializeStore(cfg, logger)
	defer closeDatabase(dbPool, logger)
	publisher, rabbitMQConn := initializePublisher(cfg, logger)
	redisClient := initializeRedisClient(cfg, logger)
	rateLimiter := initializeRateLimiter(cfg, redisClient, logger)
	customerService, alertService := initializeServices(repo, publisher, logger)

	summaryJob := batch.NewStatusSummaryJob(customerService, logger)
	cronScheduler := startBatchJobs(cfg, logger, summaryJob)
	router := api.SetupRouter(rateLimiter, customerService, alertService, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, rabbitMQConn, redisClient, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Logger)
	logger.Info("Application starting...", "config_source", cfg.Source, "store_driver", cfg.Store.Driver)

	return cfg, logger
}

// initializeStore returns the pool only for the postgres driver; it is nil otherwise.
func initializeStore(cfg *config.Config, logger *slog.Logger) (customer.Repository, *pgxpool.Pool) {
	ctx := context.Background()

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		dbPool := initializeDatabase(cfg, logger)
		repo := postgres.NewCustomerRepository(dbPool, logger)
		repo.Initialize(ctx)
		return repo, dbPool
	case config.StoreDriverFile, "":
		store := filestore.NewCustomerStore(cfg.Store.Path, logger)
		store.Initialize(ctx)
		return store, nil
	default:
		logger.Error("Unknown store driver", "driver", cfg.Store.Driver)
		os.Exit(1)
		return nil, nil
	}
}

func initializeDatabase(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(context.Background(), cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}
	return dbPool
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	if dbPool == nil {
		return
	}
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

// initializePublisher falls back to logging events when the broker is
// disabled or unreachable; alerts must keep working without RabbitMQ.
func initializePublisher(cfg *config.Config, logger *slog.Logger) (event.EventPublisher, *amqp.Connection) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ disabled, events will be logged only.")
		return event.NewLogEventPublisher(logger), nil
	}

	conn, err := connectRabbitMQ(cfg.RabbitMQ.URL, 5, logger)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ, events will be logged only", "error", err)
		return event.NewLogEventPublisher(logger), nil
	}

	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to set up RabbitMQ publisher, events will be logged only", "error", err)
		_ = conn.Close()
		return event.NewLogEventPublisher(logger), nil
	}
	return publisher, conn
}

func connectRabbitMQ(uri string, retryCount int, logger *slog.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	for i := 1; i <= retryCount; i++ {
		conn, err = event.Dial(uri, logger)
		if err == nil {
			go func() {
				blockChan := conn.NotifyBlocked(make(chan amqp.Blocking))
				closeChan := conn.NotifyClose(make(chan *amqp.Error))

				select {
				case b := <-blockChan:
					logger.Warn("RabbitMQ Connection Blocked", "reason", b.Reason)
				case e := <-closeChan:
					logger.Error("RabbitMQ Connection Closed", slog.Any("error", e))
				}
			}()
			return conn, nil
		}
		logger.Warn("Failed to connect to RabbitMQ, retrying...",
			slog.Int("attempt", i),
			slog.Int("max_attempts", retryCount),
			slog.Any("error", err),
		)
		if i < retryCount {
			time.Sleep(time.Duration(i*2) * time.Second)
		}
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", retryCount, err)
}

func initializeRedisClient(cfg *config.Config, logger *slog.Logger) *redis.Client {
	if !cfg.Redis.Enabled {
		logger.Info("Redis disabled, rate limiting (if enabled) is per instance.")
		return nil
	}
	rdb, err := cache.NewRedisClient(context.Background(), cfg.Redis, logger)
	if err != nil {
		logger.Error("Failed to connect to Redis, falling back to in-memory rate limiting", "error", err)
		return nil
	}
	return rdb
}

func initializeRateLimiter(cfg *config.Config, redisClient *redis.Client, logger *slog.Logger) *middleware.RateLimiterMiddleware {
	return middleware.NewRateLimiterMiddleware(
		cfg.Server.RateLimit,
		redisClient,
		logger,
	)
}

func initializeServices(repo customer.Repository, publisher event.EventPublisher, logger *slog.Logger) (customer.CustomerService, alert.AlertService) {
	logger.Info("Initializing application components...")
	return customer.NewCustomerService(repo, publisher, logger), alert.NewAlertService(publisher, logger)
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, rabbitConn *amqp.Connection, redisClient *redis.Client,
	shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	triggerReason := waitForShutdownTrigger(shutdownChan, serverErrors, logger)

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	stopCronScheduler(cronScheduler, logger)
	closeRabbitMQConnection(rabbitConn, logger)
	cache.Close(redisClient, logger)
	shutdownHTTPServer(srv, serverErrors, logger)

	logger.Info("Application shutdown process complete.")
}

func waitForShutdownTrigger(shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) string {
	select {
	case sig := <-shutdownChan:
		logger.Info("Shutdown signal received.", "signal", sig.String())
		return "signal: " + sig.String()
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		logger.Info("Server goroutine finished before signal.", "error", err)
		return "server exited"
	}
}

func stopCronScheduler(cronScheduler *cron.Cron, logger *slog.Logger) {
	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}
}

func closeRabbitMQConnection(rabbitConn *amqp.Connection, logger *slog.Logger) {
	switch {
	case rabbitConn == nil:
		logger.Info("RabbitMQ connection was not established, skipping close.")
	case rabbitConn.IsClosed():
		logger.Info("RabbitMQ connection already closed, skipping close.")
	default:
		logger.Info("Closing RabbitMQ connection...")
		if err := rabbitConn.Close(); err != nil {
			logger.Error("Failed to close RabbitMQ connection gracefully", slog.Any("error", err))
		} else {
			logger.Info("RabbitMQ connection closed.")
		}
	}
}

func shutdownHTTPServer(srv *http.Server, serverErrors <-chan error, logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	logger.Info("Waiting for server goroutine to confirm exit...")
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		} else {
			logger.Info("Server goroutine confirmed exit.")
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, summaryJob *batch.StatusSummaryJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.StatusSummarySchedule
	if scheduleSpec == "" {
		scheduleSpec = "*/5 * * * *"
		logger.Warn("Status summary schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := cfg.Batch.StatusSummaryTimeout
	if jobTimeout <= 0 {
		jobTimeout = 30 * time.Second
	} else {
		jobTimeout = jobTimeout * time.Second
	}

	runSummary := func() {
		jobLogger := logger.With("job_name", "StatusSummary")
		jobLogger.Info("Running customer status summary job.")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if _, runErr := summaryJob.Run(ctx); runErr != nil {
			jobLogger.Error("Status summary job finished with error", slog.Any("error", runErr))
		} else {
			jobLogger.Info("Status summary job finished successfully.")
		}
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(runSummary))
	if err != nil {
		logger.Error("Failed to schedule status summary job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled status summary job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

func setupLogger(cfg config.LoggerConfig) *slog.Logger {
	return logging.NewLogger(cfg)
}
