package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	DatabaseDriver    string
	DatabaseURL       string
	ServerPort        string
	SecretKey         string
	SessionExpiration time.Duration
	// AuthPasswordHash is a bcrypt hash. Empty disables the login gate.
	AuthPasswordHash string
	LogLevel         string
	// GeneratedSecret is set when SecretKey was not configured and a random
	// per-process key is used instead. Sessions do not survive a restart.
	GeneratedSecret bool
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string
}

func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

func LoadWithOptions(opts LoadOptions) (*Config, error) {
	if opts.EnvFile != "" {
		// A missing file is fine, the environment may already be populated.
		if err := godotenv.Load(opts.EnvFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading env file: %w", err)
		}
	}

	v := viper.New()
	v.SetDefault("DATABASE_DRIVER", DriverPostgres)
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SECRET_KEY", "")
	v.SetDefault("SESSION_EXPIRATION", 24*time.Hour)
	v.SetDefault("AUTH_PASSWORD_HASH", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	driver := strings.ToLower(v.GetString("DATABASE_DRIVER"))
	dsn := v.GetString("DATABASE_URL")
	switch driver {
	case DriverPostgres:
		if dsn == "" {
			dsn = "postgresql://postgres@localhost:5432/se_team"
		}
	case DriverSQLite:
		if dsn == "" {
			dsn = "se_team.db"
		}
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", driver)
	}

	cfg := &Config{
		DatabaseDriver:    driver,
		DatabaseURL:       dsn,
		ServerPort:        v.GetString("SERVER_PORT"),
		SecretKey:         v.GetString("SECRET_KEY"),
		SessionExpiration: v.GetDuration("SESSION_EXPIRATION"),
		AuthPasswordHash:  v.GetString("AUTH_PASSWORD_HASH"),
		LogLevel:          v.GetString("LOG_LEVEL"),
	}

	if cfg.SecretKey == "" {
		if cfg.AuthEnabled() {
			return nil, fmt.Errorf("SECRET_KEY is required when AUTH_PASSWORD_HASH is set")
		}
		cfg.SecretKey = uuid.NewString()
		cfg.GeneratedSecret = true
	}

	return cfg, nil
}

func (c *Config) AuthEnabled() bool {
	return c.AuthPasswordHash != ""
}
