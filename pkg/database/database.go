// Package database opens PostgreSQL connection pools for the SQL-backed stores.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// DriverName is the database/sql driver registered by pgx.
const DriverName = "pgx"

// Open connects to the database described by cfg, applies pool settings and
// verifies connectivity within the configured connection timeout.
func Open(ctx context.Context, cfg *Config, logger *slog.Logger) (*sqlx.DB, error) {
	db, err := sql.Open(DriverName, cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnTimeoutDuration())
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("database connected", "host", cfg.Host, "port", cfg.Port, "name", cfg.Name)
	return sqlx.NewDb(db, DriverName), nil
}
