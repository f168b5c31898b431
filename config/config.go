// Package config provides configuration management for the exercise tracker.
// It handles loading and validation of configuration values from environment variables,
// with support for required variables, default values, and collective error reporting.
package config

import (
	"fmt"
	"log/slog"
	// `os` package provides operating system functionalities, like reading environment variables.
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/user/exercise-tracker-go/apperror"
)

// Supported values for STORE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// PoolConfig represents configuration for a single PostgreSQL connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// MongoConfig holds the MongoDB connection settings.
type MongoConfig struct {
	URI      string
	Database string
}

// SQLiteConfig holds the SQLite database file location.
type SQLiteConfig struct {
	Path string
}

// StoreConfig selects a backend and carries the settings of each one.
// Only the settings of the selected driver are validated.
type StoreConfig struct {
	Driver         string
	Mongo          *MongoConfig
	Postgres       *PoolConfig
	SQLite         *SQLiteConfig
	MigrationsPath string
	AutoMigrate    bool
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port               string        // Port for the HTTP server
	RequestTimeout     time.Duration // Per-request timeout enforced by middleware
	CORSAllowedOrigins []string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level slog.Level
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	Store  *StoreConfig
	Server *ServerConfig
	Log    *LogConfig
}

// Helper function to get a required environment variable.
// Appends an error to the errors slice if the variable is not set.
func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// Helper function to get an optional environment variable with a default string value.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get an optional environment variable parsed as an int.
// Uses defaultValue if not set or if parsing fails. Appends an error if parsing fails.
func getOptionalEnvInt(key string, defaultValue int, errors *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// Helper function to get an optional environment variable parsed as a bool.
func getOptionalEnvBool(key string, defaultValue bool, errors *[]string) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueBool, err := strconv.ParseBool(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected boolean, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueBool
}

// Helper function to get an optional environment variable parsed as time.Duration.
// `time.ParseDuration` expects a string like "15m", "1h30s".
func getOptionalEnvDuration(key string, defaultValue time.Duration, errors *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// parseLogLevel maps LOG_LEVEL onto a slog level.
func parseLogLevel(value string, errors *[]string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for LOG_LEVEL: '%s': %v", value, err))
		return slog.LevelInfo
	}
	return level
}

// clampPoolSize keeps pool sizes between 5 and 100, recording a note when it had to clamp.
func clampPoolSize(size int, varName string, errors *[]string) int {
	if size < 5 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is less than minimum 5", varName, size))
		return 5
	}
	if size > 100 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100", varName, size))
		return 100
	}
	return size
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// loadStoreConfig reads the settings for the configured driver.
func loadStoreConfig(errors *[]string) *StoreConfig {
	driver := strings.ToLower(getOptionalEnv("STORE_DRIVER", DriverMongo))
	cfg := &StoreConfig{
		Driver:         driver,
		MigrationsPath: getOptionalEnv("MIGRATIONS_PATH", "./migrations"),
		AutoMigrate:    getOptionalEnvBool("AUTO_MIGRATE", false, errors),
	}

	switch driver {
	case DriverMongo:
		cfg.Mongo = &MongoConfig{
			URI:      getRequiredEnv("MONGO_URI", errors),
			Database: getOptionalEnv("MONGO_DATABASE", "exercise_tracker"),
		}
	case DriverPostgres:
		cfg.Postgres = &PoolConfig{
			Host:     getOptionalEnv("DB_HOST", "localhost"),
			Port:     getOptionalEnvInt("DB_PORT", 5432, errors),
			User:     getRequiredEnv("DB_USER", errors),
			Password: getRequiredEnv("DB_PASSWORD", errors),
			DBName:   getRequiredEnv("DB_NAME", errors),
			MaxSize:  clampPoolSize(getOptionalEnvInt("DB_POOL_SIZE", 10, errors), "DB_POOL_SIZE", errors),
		}
	case DriverSQLite:
		cfg.SQLite = &SQLiteConfig{
			Path: getOptionalEnv("SQLITE_PATH", "exercise-tracker.db"),
		}
	default:
		*errors = append(*errors, fmt.Sprintf("invalid value for STORE_DRIVER: '%s' (expected %s, %s or %s)",
			driver, DriverMongo, DriverPostgres, DriverSQLite))
	}
	return cfg
}

// LoadConfig creates and returns an AppConfig by reading and validating environment variables.
// It collects all errors encountered during loading and returns a single error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errors []string

	storeConfig := loadStoreConfig(&errors)

	serverConfig := &ServerConfig{
		// Port stays a string because it's used directly in the listen address (e.g., ":3000").
		Port:               getOptionalEnv("PORT", "3000"),
		RequestTimeout:     getOptionalEnvDuration("REQUEST_TIMEOUT", 60*time.Second, &errors),
		CORSAllowedOrigins: splitList(getOptionalEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	logConfig := &LogConfig{
		Level: parseLogLevel(getOptionalEnv("LOG_LEVEL", "info"), &errors),
	}

	if len(errors) > 0 {
		return nil, apperror.NewConfigError(fmt.Sprintf("configuration errors:\n- %s", strings.Join(errors, "\n- ")), nil)
	}

	return &AppConfig{
		Store:  storeConfig,
		Server: serverConfig,
		Log:    logConfig,
	}, nil
}

// String returns a summary of the configuration with secrets masked.
func (c *AppConfig) String() string {
	target := ""
	switch c.Store.Driver {
	case DriverMongo:
		target = c.Store.Mongo.Database
	case DriverPostgres:
		target = fmt.Sprintf("%s@%s:%d/%s", c.Store.Postgres.User, c.Store.Postgres.Host, c.Store.Postgres.Port, c.Store.Postgres.DBName)
	case DriverSQLite:
		target = c.Store.SQLite.Path
	}
	return fmt.Sprintf("Config{Store: %s(%s), Port: %s, LogLevel: %s}", c.Store.Driver, target, c.Server.Port, c.Log.Level)
}
