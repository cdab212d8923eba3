package database

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the database connection settings
type Config struct {
	Driver          string        `mapstructure:"db_driver"`
	Host            string        `mapstructure:"db_host"`
	Port            int           `mapstructure:"db_port"`
	Username        string        `mapstructure:"db_username"`
	Password        string        `mapstructure:"db_password"`
	Database        string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"db_ssl_mode"`
	MaxOpenConns    int           `mapstructure:"db_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"db_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"db_conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"db_conn_max_idle_time"`
	QueryTimeout    time.Duration `mapstructure:"db_query_timeout"`
	LogLevel        string        `mapstructure:"db_log_level"`
	RetryAttempts   int           `mapstructure:"db_retry_attempts"`
	RetryDelay      int           `mapstructure:"db_retry_delay"`
}

// DefaultConfig reads the configuration from RP_DB_* environment
// variables. Credentials have no defaults; they must be provided.
func DefaultConfig() *Config {
	return &Config{
		Driver:          envOr("RP_DB_DRIVER", "postgres"),
		Host:            os.Getenv("RP_DB_HOST"),
		Port:            envInt("RP_DB_PORT", 5432),
		Username:        os.Getenv("RP_DB_USERNAME"),
		Password:        os.Getenv("RP_DB_PASSWORD"),
		Database:        os.Getenv("RP_DB_NAME"),
		SSLMode:         envOr("RP_DB_SSL_MODE", "disable"),
		MaxOpenConns:    envInt("RP_DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    envInt("RP_DB_MAX_IDLE_CONNS", 25),
		ConnMaxLifetime: time.Duration(envInt("RP_DB_CONN_MAX_LIFETIME_MINUTES", 5)) * time.Minute,
		ConnMaxIdleTime: time.Duration(envInt("RP_DB_CONN_MAX_IDLE_TIME_MINUTES", 5)) * time.Minute,
		QueryTimeout:    time.Duration(envInt("RP_DB_QUERY_TIMEOUT_SECONDS", 10)) * time.Second,
		LogLevel:        envOr("RP_LOGGER_LEVEL", "info"),
		RetryAttempts:   envInt("RP_DB_RETRY_ATTEMPTS", 3),
		RetryDelay:      envInt("RP_DB_RETRY_DELAY_SECONDS", 5),
	}
}

var (
	validSSLModes  = []string{"disable", "require", "verify-ca", "verify-full", "prefer"}
	validLogLevels = []string{"debug", "info", "warn", "error"}
)

// Validate checks the configuration before any connection attempt
func (c *Config) Validate() error {
	switch {
	case c.Driver != "postgres":
		return fmt.Errorf("unsupported database driver: %s", c.Driver)
	case c.Host == "":
		return errors.New("database host is required")
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("invalid port number: %d", c.Port)
	case c.Username == "":
		return errors.New("database username is required")
	case c.Password == "":
		return errors.New("database password is required")
	case c.Database == "":
		return errors.New("database name is required")
	}

	if !contains(validSSLModes, c.SSLMode) {
		return fmt.Errorf("invalid SSL mode: %s", c.SSLMode)
	}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	switch {
	case c.MaxOpenConns <= 0:
		return fmt.Errorf("max open connections must be positive, got: %d", c.MaxOpenConns)
	case c.MaxIdleConns <= 0:
		return fmt.Errorf("max idle connections must be positive, got: %d", c.MaxIdleConns)
	case c.QueryTimeout <= 0:
		return errors.New("query timeout must be positive")
	case c.RetryAttempts < 0:
		return fmt.Errorf("retry attempts must be non-negative, got: %d", c.RetryAttempts)
	case c.RetryDelay < 0:
		return fmt.Errorf("retry delay must be non-negative, got: %d", c.RetryDelay)
	}

	return nil
}

// DSN builds the postgres connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode,
	)
}

// ParsePort converts a port string to an int, falling back to the
// postgres default on bad input
func ParsePort(port string) int {
	value, err := strconv.Atoi(port)
	if err != nil || value <= 0 {
		return 5432
	}
	return value
}

func contains(values []string, candidate string) bool {
	for _, value := range values {
		if value == candidate {
			return true
		}
	}
	return false
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
