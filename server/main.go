package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ticketly/api/routes"
	"ticketly/internal/audit"
	"ticketly/internal/shared/config"
	"ticketly/internal/shared/database"
	"ticketly/pkg/logger"
	"ticketly/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	// Load config
	cfg := config.Load()

	// Set Gin mode (debug/release)
	gin.SetMode(cfg.GinMode)

	// Initialize connections (both optional depending on config)
	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Audit trail: Kafka when enabled, otherwise a no-op recorder so the
	// engine runs standalone.
	recorder, consumer := setupAudit(cfg, appLogger)
	defer func() {
		if err := recorder.Close(); err != nil {
			appLogger.Error("Error closing audit recorder", slog.Any("error", err))
		}
	}()
	if consumer != nil {
		auditCtx, auditCancel := context.WithCancel(context.Background())
		defer auditCancel()
		if err := consumer.Start(auditCtx); err != nil {
			appLogger.Error("Failed to start audit consumer", slog.Any("error", err))
		}
		defer func() {
			if err := consumer.Stop(); err != nil {
				appLogger.Error("Error stopping audit consumer", slog.Any("error", err))
			}
		}()
	}

	// Initialize Rate Limiter (needs Redis)
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled && db.GetRedisClient() != nil {
		rateLimiterConfig := &ratelimit.Config{
			Enabled:         cfg.RateLimit.Enabled,
			WindowDuration:  cfg.RateLimit.WindowDuration,
			DefaultRequests: cfg.RateLimit.DefaultRequests,
			PublicRequests:  cfg.RateLimit.PublicRequests,
			CartRequests:    cfg.RateLimit.CartRequests,
			AdminRequests:   cfg.RateLimit.AdminRequests,
			HealthRequests:  cfg.RateLimit.HealthRequests,
			WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
		}

		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), rateLimiterConfig)
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Setup router with rate limiter
	appRouter := routes.NewRouter(cfg, db, recorder)
	engine := setupEngine(appRouter, rateLimiter)

	// Optional demo inventory so a fresh checkout has something to sell
	if cfg.Demo.ProvisionDemo {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		result, err := appRouter.VenueService().ProvisionDemo(ctx, cfg.Demo.Seed, "system")
		cancel()
		if err != nil {
			appLogger.Error("Failed to provision demo inventory", slog.Any("error", err))
			os.Exit(1)
		}
		appLogger.Info("Demo inventory provisioned",
			slog.String("venue_id", result.VenueID),
			slog.Int("seat_count", result.SeatCount),
		)
	}

	// HTTP server
	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        engine,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("store_backend", cfg.StoreBackend),
			slog.Bool("redis_cache", db.GetRedisClient() != nil),
			slog.Bool("audit_trail", cfg.Kafka.Enabled),
			slog.Bool("rate_limiting", rateLimiter != nil),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func setupAudit(cfg *config.Config, appLogger *logger.Logger) (audit.Recorder, *audit.LogConsumer) {
	if !cfg.Kafka.Enabled {
		appLogger.Info("Audit trail disabled, using no-op recorder")
		return audit.NewNopRecorder(), nil
	}

	producerConfig := audit.DefaultProducerConfig()
	producerConfig.Brokers = cfg.Kafka.Brokers
	producerConfig.Topic = cfg.Kafka.AuditTopic

	recorder, err := audit.NewKafkaRecorder(producerConfig)
	if err != nil {
		appLogger.Error("Failed to create audit recorder, continuing without audit trail", slog.Any("error", err))
		return audit.NewNopRecorder(), nil
	}

	consumerConfig := audit.DefaultConsumerConfig()
	consumerConfig.Brokers = cfg.Kafka.Brokers
	consumerConfig.Topics = []string{cfg.Kafka.AuditTopic}
	consumerConfig.GroupID = cfg.Kafka.ConsumerGroup

	consumer, err := audit.NewLogConsumer(consumerConfig)
	if err != nil {
		appLogger.Error("Failed to create audit consumer, producing without local log sink", slog.Any("error", err))
		return recorder, nil
	}

	return recorder, consumer
}

func setupEngine(appRouter *routes.Router, rateLimiter *ratelimit.RateLimiter) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	// Built-in middleware: logs requests + recovers from panics
	engine.Use(RequestLoggerMiddleware(appLogger), gin.Recovery())

	// CORS configuration
	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true // allow every origin dynamically
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-RateLimit-*"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Global rate limiting middleware (applied to all routes)
	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
	}

	appRouter.SetupRoutes(engine)

	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		l.LogHTTPRequest(c, duration)
	}
}
