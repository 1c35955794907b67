package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Database.validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Render.validate(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func (d *DatabaseConfig) validate() error {
	d.Driver = strings.ToLower(strings.TrimSpace(d.Driver))
	switch d.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("driver must be %q or %q (got %q)", DriverSQLite, DriverPostgres, d.Driver)
	}
	if strings.TrimSpace(d.DSN) == "" {
		return fmt.Errorf("dsn is required")
	}
	if d.MaxOpenConns < 0 {
		return fmt.Errorf("max_open_conns must be >= 0 (got %d)", d.MaxOpenConns)
	}
	if d.MaxIdleConns < 0 {
		return fmt.Errorf("max_idle_conns must be >= 0 (got %d)", d.MaxIdleConns)
	}
	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(l.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("format must be json or text (got %q)", l.Format)
	}
	return nil
}

func (r *RenderConfig) validate() error {
	if r.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be > 0 (got %d)", r.Concurrency)
	}
	if r.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", r.Timeout)
	}
	return nil
}
