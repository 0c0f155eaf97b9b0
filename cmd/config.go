package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// RedisAddr enables the cross-instance order lock. Empty means a
	// process-local lock, which is only correct for a single instance.
	RedisAddr      string
	LockTTL        time.Duration
	LockWait       time.Duration
	WebhookURL     string
	WebhookTimeout time.Duration

	NotifySchedule      string
	NotifyBatchSize     int
	NotifyMaxAttempts   int
	IdempotencyTTL      time.Duration
	IdempotencySchedule string

	LogLevel  string
	LogFormat string
}

// LoadConfig reads .env when present, then the environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort:            env("HTTP_PORT", "8080"),
		DBHost:              env("DB_HOST", "localhost"),
		DBPort:              env("DB_PORT", "5432"),
		DBUser:              env("DB_USER", "postgres"),
		DBPassword:          env("DB_PASSWORD", ""),
		DBName:              env("DB_NAME", "workshop"),
		DBSslMode:           env("DB_SSLMODE", "disable"),
		RedisAddr:           env("REDIS_ADDR", ""),
		WebhookURL:          env("WEBHOOK_URL", ""),
		NotifySchedule:      env("NOTIFY_SCHEDULE", "*/5 * * * * *"),
		IdempotencySchedule: env("IDEMPOTENCY_CLEANUP_SCHEDULE", "0 0 * * * *"),
		LogLevel:            env("LOG_LEVEL", "info"),
		LogFormat:           env("LOG_FORMAT", "json"),
	}

	var err error
	if cfg.LockTTL, err = envDuration("LOCK_TTL", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.LockWait, err = envDuration("LOCK_WAIT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.WebhookTimeout, err = envDuration("WEBHOOK_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.IdempotencyTTL, err = envDuration("IDEMPOTENCY_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.NotifyBatchSize, err = envInt("NOTIFY_BATCH_SIZE", 50); err != nil {
		return Config{}, err
	}
	if cfg.NotifyMaxAttempts, err = envInt("NOTIFY_MAX_ATTEMPTS", 10); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN renders the connection string understood by both lib/pq and pgx.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := env(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func envInt(key string, fallback int) (int, error) {
	v := env(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
