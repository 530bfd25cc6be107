// Package migrations applies the embedded PostgreSQL schema migrations.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	pgxv5 "github.com/jackc/pgx/v5"
)

//go:embed sql/*.sql
var files embed.FS

// Up creates schema if needed and applies every pending migration.
// A schema already at the latest version is not an error.
// Tables are created unqualified, so db must carry schema in its search_path.
func Up(db *sql.DB, schema string, logger *slog.Logger) error {
	if schema != "" {
		stmt := "CREATE SCHEMA IF NOT EXISTS " + pgxv5.Identifier{schema}.Sanitize()
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema %s: %w", schema, err)
		}
	}

	m, err := newMigrate(db, schema)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migrations current")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("read migration version: %w", err)
	}
	logger.Info("migrations applied", "version", version, "dirty", dirty)
	return nil
}

// Down reverts every applied migration.
func Down(db *sql.DB, schema string, logger *slog.Logger) error {
	m, err := newMigrate(db, schema)
	if err != nil {
		return err
	}

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("revert migrations: %w", err)
	}
	logger.Info("migrations reverted")
	return nil
}

func newMigrate(db *sql.DB, schema string) (*migrate.Migrate, error) {
	src, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("open migration source: %w", err)
	}

	driver, err := pgx.WithInstance(db, &pgx.Config{SchemaName: schema})
	if err != nil {
		return nil, fmt.Errorf("open migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}
