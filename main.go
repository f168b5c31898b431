// Command exercise-tracker serves the exercise tracking API and manages its
// PostgreSQL schema.
//
// @title Exercise Tracker API
// @version 1.0
// @description Create users, log their exercises and query the logs by date range.
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	// `godotenv` loads environment variables from a .env file, useful for development.
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/user/exercise-tracker-go/config"
	"github.com/user/exercise-tracker-go/db"
	"github.com/user/exercise-tracker-go/logger"
	"github.com/user/exercise-tracker-go/server"
	"github.com/user/exercise-tracker-go/store"
	"github.com/user/exercise-tracker-go/store/mongostore"
	"github.com/user/exercise-tracker-go/store/pgstore"
	"github.com/user/exercise-tracker-go/store/sqlitestore"
)

const serviceName = "exercise-tracker"

func main() {
	// In production the variables are set directly; a missing .env is fine.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	app := &cli.App{
		Name:  serviceName,
		Usage: "exercise tracking REST API",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "driver",
				Usage:   "store backend: mongo, postgres or sqlite",
				EnvVars: []string{"STORE_DRIVER"},
				Value:   config.DriverMongo,
			},
			&cli.StringFlag{
				Name:    "port",
				Usage:   "HTTP port",
				EnvVars: []string{"PORT"},
				Value:   "3000",
			},
		},
		Action: func(c *cli.Context) error {
			// Flags win over the environment; config reads the environment.
			if err := os.Setenv("STORE_DRIVER", c.String("driver")); err != nil {
				return err
			}
			if err := os.Setenv("PORT", c.String("port")); err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			s, err := openStore(ctx, cfg.Store)
			if err != nil {
				return err
			}
			return server.New(cfg.Server, s, slog.Default()).Run(ctx)
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply or roll back the PostgreSQL schema",
		Before: func(*cli.Context) error {
			return os.Setenv("STORE_DRIVER", config.DriverPostgres)
		},
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					if err := db.RunMigrations(cfg.Store.Postgres, cfg.Store.MigrationsPath); err != nil {
						return err
					}
					slog.Info("migrations applied", "path", cfg.Store.MigrationsPath)
					return nil
				},
			},
			{
				Name:  "down",
				Usage: "roll back applied migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Usage: "number of migrations to roll back", Value: 1},
				},
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					steps := c.Int("steps")
					if err := db.RollbackMigrations(cfg.Store.Postgres, cfg.Store.MigrationsPath, steps); err != nil {
						return err
					}
					slog.Info("migrations rolled back", "steps", steps)
					return nil
				},
			},
		},
	}
}

// loadConfig reads the configuration and installs the process logger.
func loadConfig() (*config.AppConfig, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	slog.SetDefault(logger.New(serviceName, cfg.Log.Level))
	slog.Info("configuration loaded", "config", cfg.String())
	return cfg, nil
}

// openStore connects to the configured backend.
func openStore(ctx context.Context, cfg *config.StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, err := db.ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		s, err := mongostore.New(ctx, client, cfg.Mongo.Database)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return s, nil

	case config.DriverPostgres:
		if cfg.AutoMigrate {
			if err := db.RunMigrations(cfg.Postgres, cfg.MigrationsPath); err != nil {
				return nil, err
			}
			slog.Info("migrations applied", "path", cfg.MigrationsPath)
		}
		pool, err := db.NewPgxPool(cfg.Postgres)
		if err != nil {
			return nil, err
		}
		return pgstore.New(pool), nil

	case config.DriverSQLite:
		handle, err := db.OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		s, err := sqlitestore.New(ctx, handle)
		if err != nil {
			_ = handle.Close()
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
}
