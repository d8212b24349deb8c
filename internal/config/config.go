package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all service configuration, read from the environment.
type Config struct {
	Mode string `env:"APP_MODE" envDefault:"api"`

	// Server
	Host string `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"APP_PORT" envDefault:"8080"`

	// Database
	DatabaseURL   string `env:"DATABASE_URL" envDefault:"postgres://localhost:5432/eclub?sslmode=disable"`
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"migrations"`

	// Redis
	RedisURL         string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	SettingsCacheTTL time.Duration `env:"SETTINGS_CACHE_TTL" envDefault:"5m"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Metrics
	MetricsPath string `env:"METRICS_PATH" envDefault:"/metrics"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Uploaded files
	StorageDir      string `env:"STORAGE_DIR" envDefault:"storage"`
	StorageMaxBytes int64  `env:"STORAGE_MAX_BYTES" envDefault:"5242880"`

	// Session
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionMaxAge time.Duration `env:"SESSION_MAX_AGE" envDefault:"24h"`

	// Seeded admin
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@eclub.local"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Slack
	SlackBotToken string `env:"SLACK_BOT_TOKEN"`
	SlackChannel  string `env:"SLACK_CHANNEL"`
	// SlackSigningSecret verifies interaction callbacks. When empty the
	// interactions endpoint answers 401 unless DevMode is set.
	SlackSigningSecret string `env:"SLACK_SIGNING_SECRET"`

	// Dev mode
	DevMode bool `env:"DEV_MODE" envDefault:"false"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := new(Config)
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config from env: %w", err)
	}
	return cfg, nil
}

// ListenAddr returns the address the HTTP server should listen on.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
