package database

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/alexivanou/geotrip-api/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver for database/sql
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Connect creates a database connection based on configuration using sqlx
func Connect(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	var driverName string
	var dsn string

	if cfg.IsMemory() {
		driverName = "sqlite3"
		dsn = cfg.DSN()
	} else {
		driverName = "pgx"
		dsn = cfg.DSN()
	}

	db, err := sqlx.ConnectContext(ctx, driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.IsMemory() {
		// A single connection serializes SQLite writers and keeps the
		// shared in-memory database alive for the lifetime of the pool.
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	return db, nil
}

// Migrate applies all pending migrations found under dir/<dialect>.
func Migrate(db *sqlx.DB, cfg config.DBConfig, dir string) error {
	var m *migrate.Migrate
	var err error

	if cfg.IsMemory() {
		sourcePath := "file://" + filepath.ToSlash(filepath.Join(dir, "sqlite"))
		// Use driver instance directly to avoid DSN parsing issues with in-memory SQLite
		driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
		if err != nil {
			return fmt.Errorf("could not create sqlite driver: %w", err)
		}
		m, err = migrate.NewWithDatabaseInstance(sourcePath, "sqlite3", driver)
		if err != nil {
			return fmt.Errorf("could not create migrate instance: %w", err)
		}
	} else {
		sourcePath := "file://" + filepath.ToSlash(filepath.Join(dir, "postgres"))
		m, err = migrate.New(sourcePath, cfg.DSN())
		if err != nil {
			return fmt.Errorf("could not create migrate instance: %w", err)
		}
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
