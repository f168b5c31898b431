package config

import (
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/user/exercise-tracker-go/apperror"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STORE_DRIVER", "MONGO_URI", "MONGO_DATABASE",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_POOL_SIZE",
		"SQLITE_PATH", "MIGRATIONS_PATH", "AUTO_MIGRATE",
		"PORT", "REQUEST_TIMEOUT", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL",
	} {
		if value, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, value) })
		}
	}
}

func TestLoadConfig_MongoDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Store.Driver != DriverMongo || cfg.Store.Mongo.Database != "exercise_tracker" {
		t.Fatalf("unexpected store config: %+v", cfg.Store)
	}
	if cfg.Server.Port != "3000" || cfg.Server.RequestTimeout != 60*time.Second {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
	if len(cfg.Server.CORSAllowedOrigins) != 1 || cfg.Server.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORS origins: %v", cfg.Server.CORSAllowedOrigins)
	}
	if cfg.Log.Level != slog.LevelInfo {
		t.Fatalf("unexpected log level: %v", cfg.Log.Level)
	}
}

func TestLoadConfig_CollectsAllErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_PORT", "not-a-port")
	t.Setenv("LOG_LEVEL", "loud")

	_, err := LoadConfig()
	if err == nil {
		t.Fatalf("expected configuration error")
	}
	if ae, ok := apperror.FromError(err); !ok || ae.Type != apperror.ConfigError {
		t.Fatalf("expected a ConfigError, got %T: %v", err, err)
	}
	for _, want := range []string{"DB_USER", "DB_PASSWORD", "DB_NAME", "DB_PORT", "LOG_LEVEL"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error does not mention %s:\n%v", want, err)
		}
	}
}

func TestLoadConfig_Postgres(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_USER", "tracker")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "tracker")
	t.Setenv("DB_POOL_SIZE", "20")
	t.Setenv("AUTO_MIGRATE", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	pg := cfg.Store.Postgres
	if pg.Host != "localhost" || pg.Port != 5432 || pg.MaxSize != 20 {
		t.Fatalf("unexpected pool config: %+v", pg)
	}
	if !cfg.Store.AutoMigrate {
		t.Fatalf("AUTO_MIGRATE not honoured")
	}
	if strings.Contains(cfg.String(), "secret") {
		t.Fatalf("String() leaked the password: %s", cfg)
	}
}

func TestLoadConfig_SQLiteNeedsNothing(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Store.SQLite.Path == "" {
		t.Fatalf("expected default sqlite path")
	}
	if got := cfg.Server.CORSAllowedOrigins; len(got) != 2 || got[1] != "http://b.test" {
		t.Fatalf("unexpected CORS origins: %v", got)
	}
}

func TestLoadConfig_RejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "cassandra")
	if _, err := LoadConfig(); err == nil || !strings.Contains(err.Error(), "STORE_DRIVER") {
		t.Fatalf("expected STORE_DRIVER error, got %v", err)
	}
}
