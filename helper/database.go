package helper

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// Database is a Postgres connection with its logger
type Database struct {
	Name     string
	Config   *DatabaseConfiguration
	Instance *sql.DB
	Logger   *slog.Logger
}

// NewDatabase opens and pings a Postgres connection, terminating the process on failure
func NewDatabase(name string, config *DatabaseConfiguration, logger *slog.Logger) *Database {
	db, err := OpenDatabase(name, config, logger)
	if err != nil {
		log.Fatalf("error connecting to database %s: %v", name, err)
	}
	return db
}

// NewTestDatabase opens a database with a debug logger writing to stdout
func NewTestDatabase(config *DatabaseConfiguration) *Database {
	return NewDatabase("test", config, NewLogger(os.Stdout, slog.LevelDebug))
}

var errNilConfig = errors.New("database configuration is nil")

// OpenDatabase opens and pings a Postgres connection
func OpenDatabase(name string, config *DatabaseConfiguration, logger *slog.Logger) (*Database, error) {
	if config == nil {
		return nil, NewError("database configuration validation", errNilConfig)
	}
	if logger == nil {
		logger = NewLogger(os.Stdout, slog.LevelInfo)
	}

	instance, err := sql.Open("postgres", config.DSN())
	if err != nil {
		return nil, NewError("open database", err)
	}

	instance.SetMaxOpenConns(10)
	instance.SetMaxIdleConns(5)
	instance.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := instance.PingContext(ctx); err != nil {
		_ = instance.Close()
		return nil, NewError("ping database", err)
	}

	logger.Info("Connected to database", slog.String("name", name), slog.String("host", config.Host), slog.String("database", config.Database))

	return &Database{
		Name:     name,
		Config:   config,
		Instance: instance,
		Logger:   logger,
	}, nil
}

// Close closes the underlying connection pool
func (d *Database) Close() error {
	if d == nil || d.Instance == nil {
		return nil
	}
	return d.Instance.Close()
}
