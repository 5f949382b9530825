package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName         = "Registra"
	defaultAppEnv          = "development"
	defaultPort            = "3000"
	defaultLogLevel        = "info"
	defaultShutdownDelay   = 10 * time.Second
	defaultDBPort          = 5432
	defaultPoolMax         = 10
	defaultPoolMin         = 0
	defaultIdleTimeout     = 30 * time.Second
	shutdownSecondsEnvVar  = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar = "SHUTDOWN_TIMEOUT"
)

// Database holds the connection-pool settings sourced from the DB_* variables.
type Database struct {
	Server      string
	Name        string
	User        string
	Password    string
	Port        int
	PoolMax     int32
	PoolMin     int32
	IdleTimeout time.Duration
}

// DSN renders the pool configuration as a Postgres URL. TLS is always
// required; there is deliberately no knob to turn it off.
func (d Database) DSN() string {
	host := d.Server
	if d.Port != 0 {
		host = fmt.Sprintf("%s:%d", d.Server, d.Port)
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     host,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=require",
	}
	return u.String()
}

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	DB             Database
	RedisURL       string
	ShutdownPeriod time.Duration
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName: getEnv("APP_NAME", defaultAppName),
		// NODE_ENV is honored for compatibility with the previous deployment manifests.
		AppEnv:         getEnv("APP_ENV", getEnv("NODE_ENV", defaultAppEnv)),
		Port:           getEnv("PORT", defaultPort),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		RedisURL:       os.Getenv("REDIS_URL"),
		ShutdownPeriod: defaultShutdownDelay,
		DB: Database{
			Server:      os.Getenv("DB_SERVER"),
			Name:        os.Getenv("DB_DATABASE"),
			User:        os.Getenv("DB_USER"),
			Password:    os.Getenv("DB_PASSWORD"),
			Port:        defaultDBPort,
			PoolMax:     defaultPoolMax,
			PoolMin:     defaultPoolMin,
			IdleTimeout: defaultIdleTimeout,
		},
	}

	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DB_PORT: %w", err)
		}
		cfg.DB.Port = port
	}

	if v := os.Getenv("DB_POOL_MAX"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DB_POOL_MAX: %w", err)
		}
		cfg.DB.PoolMax = int32(n)
	}

	if v := os.Getenv("DB_POOL_MIN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DB_POOL_MIN: %w", err)
		}
		cfg.DB.PoolMin = int32(n)
	}

	if v := os.Getenv("DB_IDLE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DB_IDLE_TIMEOUT: %w", err)
		}
		cfg.DB.IdleTimeout = d
	}

	if v := os.Getenv(shutdownSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownSecondsEnvVar, err)
		}
		cfg.ShutdownPeriod = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(shutdownDurationEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownDurationEnvVar, err)
		}
		cfg.ShutdownPeriod = d
	}

	if cfg.DB.Server == "" {
		return Config{}, fmt.Errorf("DB_SERVER must be set")
	}
	if cfg.DB.Name == "" {
		return Config{}, fmt.Errorf("DB_DATABASE must be set")
	}
	if cfg.DB.User == "" {
		return Config{}, fmt.Errorf("DB_USER must be set")
	}
	if cfg.DB.Password == "" {
		return Config{}, fmt.Errorf("DB_PASSWORD must be set")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	switch strings.ToLower(c.AppEnv) {
	case "production", "prod":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
