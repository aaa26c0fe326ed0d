package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// HTTPConfig holds the settings of the sample web server.
type HTTPConfig struct {
	Addr          string
	ShutdownGrace time.Duration
}

// Config holds all configuration for the application.
type Config struct {
	AppEnv  string
	AppName string
	HTTP    HTTPConfig

	// The three below are optional: an empty value disables the
	// corresponding observer (journal or bridge).
	DatabaseURL string
	RedisURL    string
	NATSURL     string

	// DatabaseMaxConns caps the pgx pool; zero keeps the driver default.
	DatabaseMaxConns int32
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {

	// 1. Load .env file into the process environment.
	// If the file just doesn't exist, that's fine in prod;
	// we fall back to OS-set env vars. Any other error we want to know about.
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	// 2. Explicitly bind viper keys to env var names
	bindings := map[string]string{
		"app.env":             "APP_ENV",
		"app.name":            "APP_NAME",
		"http.addr":           "HTTP_ADDR",
		"http.shutdown_grace": "HTTP_SHUTDOWN_GRACE",
		"database.url":        "DATABASE_URL",
		"database.max_conns":  "DATABASE_MAX_CONNS",
		"redis.url":           "REDIS_URL",
		"nats.url":            "NATS_URL",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	// 3. Set defaults
	viper.SetDefault("app.env", "dev")
	viper.SetDefault("app.name", "appevents")
	viper.SetDefault("http.addr", ":8080")
	viper.SetDefault("http.shutdown_grace", "10s")

	// 4. Get values directly from viper
	cfg := Config{
		AppEnv:  viper.GetString("app.env"),
		AppName: viper.GetString("app.name"),
		HTTP: HTTPConfig{
			Addr:          viper.GetString("http.addr"),
			ShutdownGrace: viper.GetDuration("http.shutdown_grace"),
		},
		DatabaseURL:      viper.GetString("database.url"),
		RedisURL:         viper.GetString("redis.url"),
		NATSURL:          viper.GetString("nats.url"),
		DatabaseMaxConns: viper.GetInt32("database.max_conns"),
	}

	// 5. Validation
	if cfg.AppName == "" {
		return nil, errors.New("APP_NAME must not be empty")
	}
	if cfg.HTTP.Addr == "" {
		return nil, errors.New("HTTP_ADDR must not be empty")
	}
	if cfg.HTTP.ShutdownGrace <= 0 {
		return nil, fmt.Errorf("HTTP_SHUTDOWN_GRACE must be a positive duration, got %q", viper.GetString("http.shutdown_grace"))
	}
	if cfg.DatabaseMaxConns < 0 {
		return nil, fmt.Errorf("DATABASE_MAX_CONNS must not be negative, got %d", cfg.DatabaseMaxConns)
	}

	return &cfg, nil
}
