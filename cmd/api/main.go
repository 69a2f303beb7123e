package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"

	_ "github.com/sjperalta/tuition-api/docs" // Swagger docs
	"github.com/sjperalta/tuition-api/internal/admission"
	"github.com/sjperalta/tuition-api/internal/config"
	"github.com/sjperalta/tuition-api/internal/database"
	"github.com/sjperalta/tuition-api/internal/handlers"
	"github.com/sjperalta/tuition-api/internal/jobs"
	"github.com/sjperalta/tuition-api/internal/middleware"
	"github.com/sjperalta/tuition-api/internal/repository"
	"github.com/sjperalta/tuition-api/internal/services"
	"github.com/sjperalta/tuition-api/internal/storage"
	"github.com/sjperalta/tuition-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Tuition API
// @version 1.0
// @description REST API for university tuition ledgers, bank payments and mobile tuition queries
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureAdmin(startupCtx, db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logger.Error("Failed to create bootstrap admin", "error", err)
		os.Exit(1)
	}

	// Initialize storage
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage", "path", cfg.StoragePath)

	// Admission control backend
	rdb := connectRedis(startupCtx, cfg)
	cancelStartup()
	policy, admissionStats := admissionBackend(cfg, rdb)
	logger.Info("Admission control ready", "backend", cfg.AdmissionBackend, "daily_quota", policy.Quota())

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, store, cfg, policy, admissionStats)

	loginLimiter := middleware.NewLimiterStore(cfg.LoginRatePerSecond, cfg.LoginBurst, 15*time.Minute)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs, loginLimiter)

	h := handlers.NewHandlers(svcs)
	router := setupRouter(h, svcs, cfg, loginLimiter)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Warn("Redis close failed", "error", err)
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

// connectRedis returns a client when REDIS_ADDR is set. A redis admission
// backend that cannot be reached is fatal; otherwise Redis is optional.
func connectRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		if cfg.AdmissionBackend == config.AdmissionBackendRedis {
			logger.Error("Failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		logger.Warn("Redis unreachable, continuing without it", "addr", cfg.RedisAddr, "error", err)
		_ = rdb.Close()
		return nil
	}
	logger.Info("Connected to redis", "addr", cfg.RedisAddr)
	return rdb
}

func admissionBackend(cfg *config.Config, rdb *redis.Client) (*admission.Policy, admission.StatsStore) {
	if cfg.AdmissionBackend == config.AdmissionBackendRedis && rdb != nil {
		return admission.NewPolicy(admission.NewRedisStore(rdb), cfg.AdmissionDailyQuota),
			admission.NewRedisStatsStore(rdb)
	}
	return admission.NewPolicy(admission.NewMemoryStore(), cfg.AdmissionDailyQuota),
		admission.NewMemoryStatsStore()
}

func setupRouter(h *handlers.Handlers, svcs *services.Services, cfg *config.Config, loginLimiter *middleware.LimiterStore) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	handlers.SetupRoutes(router, h, handlers.RouteOptions{
		JWTSecret:    cfg.JWTSecret,
		Admitter:     svcs.Admission,
		LoginLimiter: loginLimiter,
	})

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services, loginLimiter *middleware.LimiterStore) {
	// Entries are pruned only when their key is written again; report growth
	worker.ScheduleEveryImmediate("admission-usage", 1*time.Hour, svcs.Admission.ReportUsage)

	// Forget idle login buckets
	worker.ScheduleEvery("login-limiter-cleanup", 5*time.Minute, loginLimiter.CleanupJob)

	logger.Info("Scheduled recurring jobs")
}
