package helper

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Configuration holds the runtime settings of the analysis workflow
type Configuration struct {
	OutputDir string
	LogLevel  slog.Level
	// Seed for the analysis randomness, 0 seeds from the clock
	Seed      uint64
	CacheSize int
}

// DatabaseConfiguration holds the connection settings for Postgres
type DatabaseConfiguration struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	Schema   string
	SSLMode  string
}

// LoadEnv loads a .env file if one exists. System environment variables take precedence.
func LoadEnv() {
	_ = godotenv.Load()
}

// NewConfiguration reads the runtime settings from the environment
func NewConfiguration() (*Configuration, error) {
	LoadEnv()

	config := &Configuration{
		OutputDir: GetEnvString("COMPANYGRAPH_OUTPUT_DIR", "."),
		LogLevel:  slog.LevelInfo,
		CacheSize: 128,
	}

	if level, ok := os.LookupEnv("COMPANYGRAPH_LOG_LEVEL"); ok {
		if err := config.LogLevel.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
			return nil, NewError("parse log level", err)
		}
	}

	if seed, ok := os.LookupEnv("COMPANYGRAPH_SEED"); ok {
		parsed, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return nil, NewError("parse seed", err)
		}
		config.Seed = parsed
	}

	if size, ok := os.LookupEnv("COMPANYGRAPH_CACHE_SIZE"); ok {
		parsed, err := strconv.Atoi(size)
		if err != nil || parsed <= 0 {
			return nil, NewError("parse cache size", fmt.Errorf("invalid cache size %q", size))
		}
		config.CacheSize = parsed
	}

	return config, nil
}

// NewDatabaseConfiguration reads the database settings from the environment.
// Host, port, database and username are required.
func NewDatabaseConfiguration() (*DatabaseConfiguration, error) {
	LoadEnv()

	config := &DatabaseConfiguration{
		Host:     GetEnvString("COMPANYGRAPH_DB_HOST", ""),
		Port:     GetEnvString("COMPANYGRAPH_DB_PORT", ""),
		Database: GetEnvString("COMPANYGRAPH_DB_DATABASE", ""),
		Username: GetEnvString("COMPANYGRAPH_DB_USERNAME", ""),
		Password: GetEnvString("COMPANYGRAPH_DB_PASSWORD", ""),
		Schema:   GetEnvString("COMPANYGRAPH_DB_SCHEMA", "public"),
		SSLMode:  GetEnvString("COMPANYGRAPH_DB_SSLMODE", "disable"),
	}

	var missing []string
	if config.Host == "" {
		missing = append(missing, "COMPANYGRAPH_DB_HOST")
	}
	if config.Port == "" {
		missing = append(missing, "COMPANYGRAPH_DB_PORT")
	}
	if config.Database == "" {
		missing = append(missing, "COMPANYGRAPH_DB_DATABASE")
	}
	if config.Username == "" {
		missing = append(missing, "COMPANYGRAPH_DB_USERNAME")
	}
	if len(missing) > 0 {
		return nil, NewError("database configuration", fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", ")))
	}

	return config, nil
}

// DSN returns the lib/pq connection string
func (c *DatabaseConfiguration) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=%s search_path=%s",
		c.Host, c.Port, c.Database, c.Username, c.Password, c.SSLMode, c.Schema,
	)
}

// GetEnvString returns the environment value for key or defaultValue when unset
func GetEnvString(key string, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}
