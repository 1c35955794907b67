package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
database:
  driver: "postgres"
  dsn: "postgres://u:p@localhost:5432/kidase"
  max_open_conns: 10
  max_idle_conns: 3
  conn_max_lifetime: "30m"
  auto_migrate: true

log:
  level: "debug"
  format: "text"

render:
  concurrency: 8
  timeout: "5s"
  fail_fast: true
`

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Driver: DriverSQLite, DSN: "file:kidase.db", MaxOpenConns: 4, MaxIdleConns: 2},
		Log:      LogConfig{Level: "info", Format: "json"},
		Render:   RenderConfig{Concurrency: 4, Timeout: 30 * time.Second},
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Database
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("database.driver = %q, want %q", cfg.Database.Driver, DriverPostgres)
	}
	if cfg.Database.DSN != "postgres://u:p@localhost:5432/kidase" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxOpenConns != 10 {
		t.Errorf("database.max_open_conns = %d, want 10", cfg.Database.MaxOpenConns)
	}
	if cfg.Database.ConnMaxLifetime != 30*time.Minute {
		t.Errorf("database.conn_max_lifetime = %v, want 30m", cfg.Database.ConnMaxLifetime)
	}
	if !cfg.Database.AutoMigrate {
		t.Error("database.auto_migrate should be true")
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}

	// Render
	if cfg.Render.Concurrency != 8 {
		t.Errorf("render.concurrency = %d, want 8", cfg.Render.Concurrency)
	}
	if cfg.Render.Timeout != 5*time.Second {
		t.Errorf("render.timeout = %v, want 5s", cfg.Render.Timeout)
	}
	if !cfg.Render.FailFast {
		t.Error("render.fail_fast should be true")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("RENDER_CONCURRENCY", "2")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Render.Concurrency != 2 {
		t.Errorf("render.concurrency = %d, want 2 (ENV override)", cfg.Render.Concurrency)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_NoFile_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("database.driver = %q, want sqlite (default)", cfg.Database.Driver)
	}
	if cfg.Database.DSN != "file:kidase.db" {
		t.Errorf("database.dsn = %q, want file:kidase.db (default)", cfg.Database.DSN)
	}
	if cfg.Database.AutoMigrate {
		t.Error("database.auto_migrate should default to false")
	}
	if cfg.Render.Concurrency != 4 {
		t.Errorf("render.concurrency = %d, want 4 (default)", cfg.Render.Concurrency)
	}
	if cfg.Render.Timeout != 30*time.Second {
		t.Errorf("render.timeout = %v, want 30s (default)", cfg.Render.Timeout)
	}
}

func TestLoadFrom_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("database.driver = %q, want postgres", cfg.Database.Driver)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "driver is case-insensitive", mutate: func(c *Config) { c.Database.Driver = " SQLite " }},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: true},
		{name: "empty dsn", mutate: func(c *Config) { c.Database.DSN = "  " }, wantErr: true},
		{name: "negative max open conns", mutate: func(c *Config) { c.Database.MaxOpenConns = -1 }, wantErr: true},
		{name: "negative max idle conns", mutate: func(c *Config) { c.Database.MaxIdleConns = -1 }, wantErr: true},
		{name: "unknown log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "zero concurrency", mutate: func(c *Config) { c.Render.Concurrency = 0 }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.Render.Timeout = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidate_NormalizesDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "Postgres"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("driver = %q, want %q", cfg.Database.Driver, DriverPostgres)
	}
}
