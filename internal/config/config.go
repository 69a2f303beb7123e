package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Admission backends
const (
	AdmissionBackendMemory = "memory"
	AdmissionBackendRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	DatabaseURL string

	// JWT
	JWTSecret          string
	JWTExpirationHours int

	// Bootstrap admin, created on startup when both are set
	AdminUsername string
	AdminPassword string

	// Storage
	StoragePath string

	// Background Workers
	WorkerCount int

	// CORS
	AllowedOrigins []string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Admission control for mobile lookups
	AdmissionBackend    string
	AdmissionDailyQuota int

	// Login throttle (token bucket per client IP)
	LoginRatePerSecond float64
	LoginBurst         int

	// Sentry
	SentryDSN string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		Environment:         getEnv("ENVIRONMENT", "development"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		JWTExpirationHours:  getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		AdminUsername:       getEnv("ADMIN_USERNAME", ""),
		AdminPassword:       getEnv("ADMIN_PASSWORD", ""),
		StoragePath:         getEnv("STORAGE_PATH", "./storage"),
		WorkerCount:         getEnvAsInt("WORKER_COUNT", 5),
		AllowedOrigins:      getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             getEnvAsInt("REDIS_DB", 0),
		AdmissionBackend:    strings.ToLower(getEnv("ADMISSION_BACKEND", AdmissionBackendMemory)),
		AdmissionDailyQuota: getEnvAsInt("ADMISSION_DAILY_QUOTA", 3),
		LoginRatePerSecond:  getEnvAsFloat("LOGIN_RATE_PER_SECOND", 0.2),
		LoginBurst:          getEnvAsInt("LOGIN_BURST", 5),
		SentryDSN:           getEnv("SENTRY_DSN", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Set default JWT secret for development
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.JWTSecret == "" && c.Environment == "production" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}

	switch c.AdmissionBackend {
	case AdmissionBackendMemory:
	case AdmissionBackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when ADMISSION_BACKEND=redis")
		}
	default:
		return fmt.Errorf("unknown ADMISSION_BACKEND %q", c.AdmissionBackend)
	}

	if c.AdmissionDailyQuota <= 0 {
		return fmt.Errorf("ADMISSION_DAILY_QUOTA must be positive")
	}

	return nil
}

// getEnv reads an environment variable or returns a default value.
// Empty values count as unset.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsFloat reads an environment variable as float64
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
