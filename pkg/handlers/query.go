package handlers

import (
	"log/slog"

	"github.com/google/uuid"
)

// queryBase is the state shared by the query handlers.
type queryBase[S any] struct {
	repo   Repository[S]
	mapper Mapper
	entity string
	logger *slog.Logger
}

func newQueryBase[S any](kind string, deps Deps[S]) queryBase[S] {
	return queryBase[S]{
		repo:   deps.Repository,
		mapper: deps.Mapper,
		entity: deps.entity(),
		logger: deps.logger(kind),
	}
}

func (b *queryBase[S]) begin() *slog.Logger {
	logger := b.logger.With("invocation", uuid.NewString())
	logger.Debug("query received")
	return logger
}
