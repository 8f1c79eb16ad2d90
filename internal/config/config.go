package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultJWTSecret is the placeholder signing key used when no explicit
// secret is configured. A production deployment must override it; startup
// logs a warning when it is still in effect.
const DefaultJWTSecret = "your-secret-key-change-in-production"

// Storage driver names accepted in Storage.Driver.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Storage struct {
		Driver  string
		DataDir string
	}
	Database struct {
		Path string
	}
	Auth struct {
		JWTSecret     string
		TokenTTLHours int
	}
}

// UsingDefaultSecret reports whether the placeholder signing key is in effect.
func (c Config) UsingDefaultSecret() bool {
	return c.Auth.JWTSecret == DefaultJWTSecret
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	_ = godotenv.Load() // optional .env

	v := viper.New()
	v.SetEnvPrefix("TODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:5000")
	v.SetDefault("storage.driver", DriverJSON)
	v.SetDefault("storage.datadir", "data")
	v.SetDefault("database.path", "data/todos.db")
	v.SetDefault("auth.jwtsecret", DefaultJWTSecret)
	v.SetDefault("auth.tokenttlhours", 7*24)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	switch cfg.Storage.Driver {
	case DriverJSON, DriverSQLite:
	default:
		return Config{}, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if cfg.Auth.TokenTTLHours <= 0 {
		return Config{}, fmt.Errorf("token ttl must be positive, got %d", cfg.Auth.TokenTTLHours)
	}

	return cfg, nil
}
