package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/entity-handlers/internal/config"
	"github.com/JaimeStill/entity-handlers/internal/members"
	"github.com/JaimeStill/entity-handlers/internal/migrations"
	"github.com/JaimeStill/entity-handlers/pkg/database"
	"github.com/JaimeStill/entity-handlers/pkg/handlers"
	"github.com/JaimeStill/entity-handlers/pkg/store"
	"github.com/JaimeStill/entity-handlers/pkg/store/boltstore"
	"github.com/JaimeStill/entity-handlers/pkg/store/memstore"
	"github.com/JaimeStill/entity-handlers/pkg/store/pgstore"
)

// openMembers builds the member repository for the configured backend.
// The returned close func releases the backend's resources.
func openMembers(ctx context.Context, cfg *config.Config, migrate bool, logger *slog.Logger) (handlers.Repository[members.Record], func() error, error) {
	opts := []store.Option{
		store.WithPagination(cfg.Pagination),
		store.WithLogger(logger),
	}

	switch cfg.Store.Backend {
	case config.BackendBolt:
		db, err := boltstore.Open(&cfg.Store.Bolt)
		if err != nil {
			return nil, nil, err
		}
		repo, err := boltstore.New[members.Record](db, members.EntityName, cfg.Store.Bolt.MaxRecordSizeBytes(), opts...)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, db.Close, nil

	case config.BackendPostgres:
		db, err := database.Open(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		if migrate {
			if err := migrations.Up(db.DB, cfg.Database.Schema, logger); err != nil {
				db.Close()
				return nil, nil, err
			}
		}
		return pgstore.New[members.Record](db, members.Table(cfg.Database.Schema), opts...), db.Close, nil

	case config.BackendMemory:
		return memstore.New[members.Record](opts...), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend)
	}
}
