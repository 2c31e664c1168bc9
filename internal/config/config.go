package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type AppConfig struct {
	Port        string `env:"PORT" envDefault:"8080"`
	StoreDriver string `env:"STORE_DRIVER" envDefault:"mongo"`

	MongoURI      string `env:"MONGODB_URI"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"employeePortalDB"`
	DatabaseURL   string `env:"DATABASE_URL"`

	// RunMigrations applies the embedded schema on startup (postgres only).
	RunMigrations bool          `env:"RUN_MIGRATIONS" envDefault:"true"`
	StoreTimeout  time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`

	AdminSecret     string        `env:"ADMIN_SECRET"`
	AdminSecretHash string        `env:"ADMIN_SECRET_HASH"`
	JWTSecret       string        `env:"JWT_SECRET"`
	AdminTokenTTL   time.Duration `env:"ADMIN_TOKEN_TTL" envDefault:"1h"`

	MailDomain       string   `env:"MAIL_DOMAIN"`
	ValidateMobile   bool     `env:"VALIDATE_MOBILE" envDefault:"true"`
	AllowedTeams     []string `env:"ALLOWED_TEAMS" envSeparator:","`
	StrictDateFormat bool     `env:"STRICT_DATE_FORMAT" envDefault:"false"`

	StaticDir      string   `env:"STATIC_DIR"`
	AllowedOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env if present, then the process environment.
func Load() (AppConfig, error) {
	_ = godotenv.Load() // load .env if present

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func (c AppConfig) Validate() error {
	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("missing required env: MONGODB_URI")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("missing required env: DATABASE_URL")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want mongo, postgres or memory)", c.StoreDriver)
	}
	if c.AdminSecret == "" && c.AdminSecretHash == "" {
		return fmt.Errorf("missing required env: ADMIN_SECRET or ADMIN_SECRET_HASH")
	}
	if c.AdminTokenTTL <= 0 {
		return fmt.Errorf("ADMIN_TOKEN_TTL must be positive")
	}
	return nil
}

func (c AppConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
