package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Render   RenderConfig   `yaml:"render"`
}

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DatabaseConfig holds store connection settings. The desktop application
// keeps its data in a SQLite file; a shared deployment may point at
// PostgreSQL instead.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"            env:"DATABASE_DRIVER"            env-default:"sqlite"`
	DSN             string        `yaml:"dsn"               env:"DATABASE_DSN"               env-default:"file:kidase.db"`
	MaxOpenConns    int           `yaml:"max_open_conns"    env:"DATABASE_MAX_OPEN_CONNS"    env-default:"4"`
	MaxIdleConns    int           `yaml:"max_idle_conns"    env:"DATABASE_MAX_IDLE_CONNS"    env-default:"2"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DATABASE_CONN_MAX_LIFETIME" env-default:"1h"`
	AutoMigrate     bool          `yaml:"auto_migrate"      env:"DATABASE_AUTO_MIGRATE"      env-default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RenderConfig holds presentation rendering settings.
type RenderConfig struct {
	// Concurrency bounds how many presentations render at once.
	Concurrency int           `yaml:"concurrency" env:"RENDER_CONCURRENCY" env-default:"4"`
	Timeout     time.Duration `yaml:"timeout"     env:"RENDER_TIMEOUT"     env-default:"30s"`
	// FailFast aborts a batch on the first presentation that fails.
	FailFast bool `yaml:"fail_fast" env:"RENDER_FAIL_FAST" env-default:"false"`
}
