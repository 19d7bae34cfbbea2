// @title           Activity Service API
// @version         1.0
// @description     Extracurricular activity signup service

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "activity-service/docs" // Swagger docs import

	"activity-service/internal/config"
	"activity-service/internal/database"
	"activity-service/internal/event"
	"activity-service/internal/job"
	"activity-service/internal/metrics"
	"activity-service/internal/repository"
	"activity-service/internal/router"
	"activity-service/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Server.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	dialect, err := database.ParseURL(cfg.Database.URL)
	if err != nil {
		logger.Fatal("Invalid database url", zap.Error(err))
	}

	logger.Info("Starting Activity Service",
		zap.String("port", cfg.Server.Port),
		zap.String("env", cfg.Server.Env),
		zap.String("database", dialect.Name),
		zap.Bool("events", cfg.Redis.URL != ""),
	)

	// Initialize database
	db, err := database.New(database.Config{
		URL:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogSQL:          cfg.Server.LogLevel == "debug",
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	if err := database.AutoMigrate(db, logger); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize metrics
	m := metrics.NewWithLogger(logger)
	if err := database.RegisterMetricsCallbacks(db, m); err != nil {
		logger.Warn("Failed to register database metrics callbacks", zap.Error(err))
	}
	logger.Info("Metrics initialized")

	// Seed the catalog on first start
	store := repository.NewStore(db)
	var catalog *service.Catalog
	if cfg.Seed.CatalogPath != "" {
		catalog, err = service.LoadCatalog(cfg.Seed.CatalogPath)
		if err != nil {
			logger.Fatal("Failed to load seed catalog",
				zap.String("path", cfg.Seed.CatalogPath),
				zap.Error(err),
			)
		}
	}
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	_, err = service.NewBootstrapService(store, catalog, logger).Initialize(seedCtx)
	seedCancel()
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Roster events are optional
	var redisClient *redis.Client
	var publisher event.Publisher = event.NopPublisher{}
	if cfg.Redis.URL != "" {
		redisClient, err = event.NewRedisClient(context.Background(), cfg.Redis.URL)
		if err != nil {
			logger.Warn("Failed to connect to Redis, roster events disabled", zap.Error(err))
		} else {
			publisher = event.NewRedisPublisher(redisClient, cfg.Redis.Channel, logger)
			logger.Info("Roster events enabled", zap.String("channel", cfg.Redis.Channel))
		}
	}

	// Schedule the roster stats job
	var pool job.DBStatter
	if sqlDB, err := db.DB(); err == nil {
		pool = sqlDB
	}
	scheduler := job.NewScheduler(logger)
	statsJob := job.NewStatsJob(store, pool, m, logger)
	if err := scheduler.Schedule(cfg.Stats.Schedule, "roster-stats", statsJob); err != nil {
		logger.Warn("Failed to schedule roster stats job", zap.Error(err))
	}
	statsJob.Run()
	scheduler.Start()

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:             db,
		Redis:          redisClient,
		Logger:         logger,
		Metrics:        m,
		Publisher:      publisher,
		StaticDir:      cfg.Server.StaticDir,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Activity Service started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	scheduler.Stop(ctx)

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis client", zap.Error(err))
		}
	}
	if err := database.Close(db); err != nil {
		logger.Warn("Failed to close database", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
