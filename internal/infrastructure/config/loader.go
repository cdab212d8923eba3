package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment names
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// ConfigPaths are the directories searched for the yaml config file
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths are the locations searched for a .env file
var DotEnvPaths = []string{
	".env",
	"./.env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
	"../../configs/.env",
}

// stringOverrides maps environment variables straight onto viper keys
var stringOverrides = map[string]string{
	"RP_DB_HOST":        "database.host",
	"RP_DB_PORT":        "database.port",
	"RP_DB_USERNAME":    "database.username",
	"RP_DB_PASSWORD":    "database.password",
	"RP_DB_NAME":        "database.database",
	"RP_DB_SSL_MODE":    "database.sslMode",
	"RP_SERVER_HOST":    "server.host",
	"RP_SERVER_PORT":    "server.port",
	"RP_LOGGER_LEVEL":   "logger.level",
	"RP_AUTH_SECRET":    "auth.secret",
	"RP_AUTH_ALGORITHM": "auth.algorithm",
}

// intOverrides maps numeric environment variables onto viper keys;
// non-positive values are ignored
var intOverrides = map[string]string{
	"RP_DB_MAX_OPEN_CONNS":            "database.maxOpenConns",
	"RP_DB_MAX_IDLE_CONNS":            "database.maxIdleConns",
	"RP_DB_CONN_MAX_LIFETIME_MINUTES": "database.connMaxLifetime",
	"RP_DB_CONN_MAX_IDLE_TIME_MINUTES": "database.connMaxIdleTime",
	"RP_DB_QUERY_TIMEOUT_SECONDS":     "database.queryTimeout",
	"RP_DB_RETRY_ATTEMPTS":            "database.retryAttempts",
	"RP_DB_RETRY_DELAY_SECONDS":       "database.retryDelay",
	"RP_AUTH_EXPIRY_MINUTES":          "auth.expiryMinutes",
	"RP_LISTING_DEFAULT_PAGE_SIZE":    "listing.defaultPageSize",
	"RP_LISTING_MAX_PAGE_SIZE":        "listing.maxPageSize",
}

// LoadConfig reads the yaml file for the current environment, then layers
// RP_-prefixed environment variables on top. The auth secret has no
// default and must come from the environment or the file.
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := environmentName()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetEnvPrefix("RP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	applyEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.Environment = env
	expandDurations(&config)

	if config.Auth.Secret == "" {
		return nil, fmt.Errorf("auth secret is required (set RP_AUTH_SECRET)")
	}
	return &config, nil
}

// loadDotEnvFile loads the first readable .env file from the search paths
func loadDotEnvFile() error {
	var lastError error
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}
	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults covers every non-sensitive setting so a minimal yaml file
// still yields a runnable configuration
func setDefaults(v *viper.Viper) {
	// Server, timeouts in seconds
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)
	v.SetDefault("server.writeTimeout", 15)
	v.SetDefault("server.idleTimeout", 60)
	v.SetDefault("server.readHeaderTimeout", 10)
	v.SetDefault("server.shutdownTimeout", 10)

	// Database, lifetimes in minutes and timeouts in seconds
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30)
	v.SetDefault("database.connMaxIdleTime", 15)
	v.SetDefault("database.queryTimeout", 10)
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.callerInfo", true)

	// Auth, the secret itself must come from the environment
	v.SetDefault("auth.algorithm", "HS256")
	v.SetDefault("auth.expiryMinutes", 60)

	v.SetDefault("listing.defaultPageSize", 50)
	v.SetDefault("listing.maxPageSize", 100)
}

// environmentName resolves the environment from RP_ENV
func environmentName() string {
	env := os.Getenv("RP_ENV")
	if env == "" {
		return Development
	}
	return strings.ToLower(env)
}

// applyEnvOverrides forces environment values over file values for the
// keys viper's AutomaticEnv does not reach through Unmarshal
func applyEnvOverrides(v *viper.Viper) {
	for envVar, key := range stringOverrides {
		if value := os.Getenv(envVar); value != "" {
			v.Set(key, value)
		}
	}
	for envVar, key := range intOverrides {
		raw := os.Getenv(envVar)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			continue
		}
		v.Set(key, value)
	}
}

// expandDurations converts the raw numeric config fields into durations
// with their documented units
func expandDurations(config *Config) {
	config.Server.ReadTimeout *= time.Second
	config.Server.WriteTimeout *= time.Second
	config.Server.IdleTimeout *= time.Second
	config.Server.ReadHeaderTimeout *= time.Second
	config.Server.ShutdownTimeout *= time.Second

	config.Database.ConnMaxLifetime *= time.Minute
	config.Database.ConnMaxIdleTime *= time.Minute
	config.Database.QueryTimeout *= time.Second
	config.Database.RetryDelay *= time.Second
}
