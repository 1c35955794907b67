// Package testhelper opens migrated test databases for the sqldb adapters.
package testhelper

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/YaredDejene/kidase-presentation/internal/adapter/sqldb"
	"github.com/YaredDejene/kidase-presentation/internal/config"
)

var (
	pgOnce    sync.Once
	pgDSN     string
	pgInitErr error
)

// SetupSQLite opens a fresh migrated SQLite database in a temp directory.
func SetupSQLite(t *testing.T) *sqldb.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "kidase.db") + "?_pragma=foreign_keys(1)"
	db := open(t, config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		DSN:          dsn,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	if _, err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("testhelper: migrate sqlite: %v", err)
	}
	return db
}

// SetupPostgres starts a shared PostgreSQL container (once for the entire
// test run) and returns a migrated connection to it. The container lives
// until the process exits. Migrations run once, when the container starts.
// Tests share the database, so they must seed unique ids. Skipped in -short mode and when no container
// runtime is available.
func SetupPostgres(t *testing.T) *sqldb.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("postgres tests skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	pgOnce.Do(func() {
		pgDSN, pgInitErr = startPostgres()
	})
	if pgInitErr != nil {
		t.Fatalf("testhelper: failed to start postgres: %v", pgInitErr)
	}

	return open(t, config.DatabaseConfig{
		Driver:       config.DriverPostgres,
		DSN:          pgDSN,
		MaxOpenConns: 4,
		MaxIdleConns: 2,
	})
}

// Dialects returns the database openers a repository test should run
// against, keyed by dialect.
func Dialects() map[sqldb.Dialect]func(*testing.T) *sqldb.DB {
	return map[sqldb.Dialect]func(*testing.T) *sqldb.DB{
		sqldb.DialectSQLite:   SetupSQLite,
		sqldb.DialectPostgres: SetupPostgres,
	}
}

func open(t *testing.T, cfg config.DatabaseConfig) *sqldb.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := sqldb.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("testhelper: open %s: %v", cfg.Driver, err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func startPostgres() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "kidase",
			"POSTGRES_PASSWORD": "kidase",
			"POSTGRES_DB":       "kidase",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}

	dsn := fmt.Sprintf("postgres://kidase:kidase@%s:%s/kidase?sslmode=disable", host, port.Port())

	db, err := sqldb.Open(ctx, config.DatabaseConfig{
		Driver:       config.DriverPostgres,
		DSN:          dsn,
		MaxOpenConns: 1,
	})
	if err != nil {
		return "", err
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return "", err
	}
	return dsn, nil
}
