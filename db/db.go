// Package db provides database connectivity and migration functionality for the exercise tracker.
// It opens the handle for whichever backend is configured (PostgreSQL pool, MongoDB client,
// SQLite file) and runs the PostgreSQL schema migrations.
package db

import (
	"context"
	"fmt"
	// `time` is used for setting timeouts and connection pool configurations.
	"time"

	// `golang-migrate` applies versioned SQL migrations.
	"github.com/golang-migrate/migrate/v4"
	// The postgres database driver for golang-migrate; it talks to the server through `lib/pq`.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	// `_ "github.com/golang-migrate/migrate/v4/source/file"` registers the file source driver.
	_ "github.com/golang-migrate/migrate/v4/source/file"
	// `pgxpool` is part of the `jackc/pgx` suite, providing a robust connection pool for PostgreSQL.
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // driver for database/sql, needed by migrate's postgres driver with DSN
	_ "github.com/mattn/go-sqlite3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/user/exercise-tracker-go/apperror"
	"github.com/user/exercise-tracker-go/config"
)

// NewPgxPool establishes a PostgreSQL connection pool using the provided configuration
// and verifies it with a ping.
func NewPgxPool(cfg *config.PoolConfig) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable&pool_max_conns=%d",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.MaxSize,
	)

	// `pgxpool.ParseConfig` parses the DSN string into a `pgxpool.Config` struct.
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error parsing DSN for database %s", cfg.DBName), err)
	}

	poolConfig.MaxConns = int32(cfg.MaxSize)
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	poolConfig.MaxConnLifetime = 30 * time.Minute

	// Use a context with a timeout for the pool creation process.
	// This prevents indefinite blocking if the database is unreachable.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error creating pgxpool for database %s", cfg.DBName), err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close() // Clean up on connection failure
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error connecting to the database %s with pgxpool", cfg.DBName), err)
	}

	return pool, nil
}

// getDSN constructs a DSN string from PoolConfig, suitable for golang-migrate.
func getDSN(cfg *config.PoolConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName,
	)
}

// newMigrator builds a golang-migrate instance reading SQL files from migrationsPath.
// The migrations directory contains files named {version}_{title}.up.sql / .down.sql.
func newMigrator(cfg *config.PoolConfig, migrationsPath string) (*migrate.Migrate, error) {
	m, err := migrate.New("file://"+migrationsPath, getDSN(cfg))
	if err != nil {
		return nil, apperror.NewMigrationError("failed to create migrator", err)
	}
	return m, nil
}

// closeMigrator releases the source and database handles held by golang-migrate.
func closeMigrator(m *migrate.Migrate) error {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		return apperror.NewMigrationError("error closing migration source", srcErr)
	}
	if dbErr != nil {
		return apperror.NewMigrationError("error closing migration database instance", dbErr)
	}
	return nil
}

// RunMigrations applies any pending database migrations from the specified migrations directory.
// `migrate.ErrNoChange` is not an error: the schema is already current.
func RunMigrations(cfg *config.PoolConfig, migrationsPath string) (err error) {
	m, err := newMigrator(cfg, migrationsPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeMigrator(m); err == nil {
			err = closeErr
		}
	}()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return apperror.NewMigrationError("failed to run migrations", err)
	}
	return nil
}

// RollbackMigrations reverts the given number of applied migrations.
func RollbackMigrations(cfg *config.PoolConfig, migrationsPath string, steps int) (err error) {
	if steps <= 0 {
		return apperror.NewMigrationError(fmt.Sprintf("invalid rollback step count %d", steps), nil)
	}
	m, err := newMigrator(cfg, migrationsPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeMigrator(m); err == nil {
			err = closeErr
		}
	}()

	if err := m.Steps(-steps); err != nil && err != migrate.ErrNoChange {
		return apperror.NewMigrationError("failed to roll back migrations", err)
	}
	return nil
}

// ConnectMongo connects to MongoDB and pings the primary before returning the client.
func ConnectMongo(ctx context.Context, cfg *config.MongoConfig) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, apperror.NewDatabaseError("error connecting to MongoDB", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, apperror.NewDatabaseError("error pinging MongoDB", err)
	}
	return client, nil
}

// OpenSQLite opens (or creates) a SQLite database file.
// SQLite allows one writer at a time, so the handle is limited to a single connection;
// this also keeps ":memory:" databases alive for the life of the handle.
func OpenSQLite(path string) (*sqlx.DB, error) {
	if path == "" {
		path = "exercise-tracker.db"
	}
	d, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, apperror.NewDatabaseError("error opening SQLite database", err)
	}
	d.SetMaxOpenConns(1)
	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, apperror.NewDatabaseError("error connecting to SQLite database", err)
	}
	if _, err := d.Exec(`PRAGMA foreign_keys=ON`); err != nil {
		_ = d.Close()
		return nil, apperror.NewDatabaseError("error enabling SQLite foreign keys", err)
	}
	return d, nil
}
