package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// Sleeper API
	SleeperBaseURL   string        `envconfig:"SLEEPER_BASE_URL" default:"https://api.sleeper.app/v1"`
	SleeperRateLimit int           `envconfig:"SLEEPER_RATE_LIMIT" default:"60"` // requests per minute
	SleeperTimeout   time.Duration `envconfig:"SLEEPER_TIMEOUT" default:"30s"`

	// nflverse bulk stats
	NFLVerseBaseURL string        `envconfig:"NFLVERSE_BASE_URL" default:"https://github.com/nflverse/nflverse-data/releases/download"`
	NFLVerseTimeout time.Duration `envconfig:"NFLVERSE_TIMEOUT" default:"120s"`

	// Database
	DatabaseHost     string `envconfig:"DATABASE_HOST" default:"localhost"`
	DatabasePort     int    `envconfig:"DATABASE_PORT" default:"5432"`
	DatabaseName     string `envconfig:"DATABASE_NAME" default:"ffwarehouse"`
	DatabaseUser     string `envconfig:"DATABASE_USER" default:"ffw_user"`
	DatabasePassword string `envconfig:"DATABASE_PASSWORD" required:"true"`
	DatabaseSSLMode  string `envconfig:"DATABASE_SSL_MODE" default:"disable"`

	// Redis
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Loader
	BatchSize         int `envconfig:"BATCH_SIZE" default:"500"`
	PlayerCommitEvery int `envconfig:"PLAYER_COMMIT_EVERY" default:"500"`

	// Scheduler (daemon only; the one-shot loaders never schedule anything)
	EnableScheduler    bool     `envconfig:"ENABLE_SCHEDULER" default:"true"`
	NightlyRefreshCron string   `envconfig:"NIGHTLY_REFRESH_CRON" default:"0 2 * * *"`
	StatsRefreshCron   string   `envconfig:"STATS_REFRESH_CRON" default:"0 3 * * 2"`
	WatchedLeagues     []string `envconfig:"WATCHED_LEAGUES" default:""`

	// Caching TTL (in seconds)
	CacheTTLPlayers int `envconfig:"CACHE_TTL_PLAYERS" default:"86400"` // 24 hours
	CacheTTLState   int `envconfig:"CACHE_TTL_STATE" default:"300"`     // 5 minutes

	// Monitoring
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"true"`
	MetricsPort   int  `envconfig:"METRICS_PORT" default:"9090"`
}

// Load loads configuration from environment variables
// It first attempts to load from .env file if in development mode
func Load() (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DatabasePassword == "" {
		return fmt.Errorf("DATABASE_PASSWORD is required")
	}

	if c.SleeperRateLimit <= 0 {
		return fmt.Errorf("SLEEPER_RATE_LIMIT must be positive")
	}

	if c.BatchSize <= 0 {
		return fmt.Errorf("BATCH_SIZE must be positive")
	}

	return nil
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// MustLoad loads configuration or panics on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
