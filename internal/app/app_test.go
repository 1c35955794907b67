package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/YaredDejene/kidase-presentation/internal/config"
	"github.com/YaredDejene/kidase-presentation/internal/domain"
	"github.com/YaredDejene/kidase-presentation/internal/service/render"
)

func testConfig(t *testing.T, autoMigrate bool) *config.Config {
	t.Helper()
	return &config.Config{
		Database: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			DSN:          "file:" + filepath.Join(t.TempDir(), "kidase.db"),
			MaxOpenConns: 1,
			AutoMigrate:  autoMigrate,
		},
		Log:    config.LogConfig{Level: "error", Format: "text"},
		Render: config.RenderConfig{Concurrency: 1, Timeout: 5 * time.Second},
	}
}

func TestNewWithConfig_AutoMigrate(t *testing.T) {
	ctx := context.Background()

	a, err := NewWithConfig(ctx, testConfig(t, true))
	if err != nil {
		t.Fatalf("NewWithConfig: unexpected error: %v", err)
	}
	defer a.Close()

	// The schema exists, so an unknown presentation is simply not found.
	_, err = a.Render.Render(ctx, render.RenderInput{PresentationID: "missing"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Render(missing) error = %v, want ErrNotFound", err)
	}

	results, err := a.Render.RenderMany(ctx, render.BatchInput{})
	if err != nil {
		t.Fatalf("RenderMany: unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("RenderMany on an empty database returned %d results", len(results))
	}
}

func TestNewWithConfig_NoAutoMigrate(t *testing.T) {
	ctx := context.Background()

	a, err := NewWithConfig(ctx, testConfig(t, false))
	if err != nil {
		t.Fatalf("NewWithConfig: unexpected error: %v", err)
	}
	defer a.Close()

	// Without migrations the tables do not exist yet.
	if _, err := a.Render.RenderMany(ctx, render.BatchInput{}); err == nil {
		t.Fatal("RenderMany on an unmigrated database: expected error")
	}

	version, err := a.DB.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate: unexpected error: %v", err)
	}
	if version != 11 {
		t.Errorf("version = %d, want 11", version)
	}
}

func TestNewWithConfig_BadDriver(t *testing.T) {
	cfg := testConfig(t, false)
	cfg.Database.Driver = "oracle"

	if _, err := NewWithConfig(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
