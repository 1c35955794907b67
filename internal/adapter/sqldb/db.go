// Package sqldb is the relational store adapter. It serves the desktop
// application's SQLite file through modernc.org/sqlite and a shared
// PostgreSQL database through pgx, behind one database/sql handle.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	_ "modernc.org/sqlite"             // pure-Go SQLite driver for database/sql

	"github.com/YaredDejene/kidase-presentation/internal/config"
)

// Dialect identifies the SQL flavour of an open database.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DB wraps *sql.DB with the dialect it speaks.
type DB struct {
	sql     *sql.DB
	dialect Dialect
}

// Open connects to the configured database, applies pool settings and pings
// it for fail-fast validation.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	var (
		driver  string
		dialect Dialect
	)
	switch cfg.Driver {
	case config.DriverSQLite:
		driver, dialect = "sqlite", DialectSQLite
	case config.DriverPostgres:
		driver, dialect = "pgx", DialectPostgres
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{sql: db, dialect: dialect}, nil
}

// New wraps an already open handle.
func New(db *sql.DB, dialect Dialect) *DB {
	return &DB{sql: db, dialect: dialect}
}

// SQL returns the underlying handle.
func (d *DB) SQL() *sql.DB { return d.sql }

// Dialect returns the SQL flavour of the database.
func (d *DB) Dialect() Dialect { return d.dialect }

// Close closes the underlying handle.
func (d *DB) Close() error { return d.sql.Close() }

// Builder returns a squirrel statement builder using the dialect's
// placeholder format.
func (d *DB) Builder() sq.StatementBuilderType {
	if d.dialect == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}
