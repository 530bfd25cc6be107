package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// commandBase is the state shared by the command handlers.
type commandBase[S, C any] struct {
	repo      Repository[S]
	mapper    Mapper
	validator Validator[C]
	entity    string
	logger    *slog.Logger

	beforeValidation Hook[C]
}

func newCommandBase[S, C any](kind string, deps Deps[S], validator Validator[C], beforeValidation Hook[C]) commandBase[S, C] {
	return commandBase[S, C]{
		repo:             deps.Repository,
		mapper:           deps.Mapper,
		validator:        validator,
		entity:           deps.entity(),
		logger:           deps.logger(kind),
		beforeValidation: beforeValidation,
	}
}

// begin returns the logger for one invocation.
func (b *commandBase[S, C]) begin() *slog.Logger {
	logger := b.logger.With("invocation", uuid.NewString())
	logger.Debug("command received")
	return logger
}

// validate runs the before-validation hook and, when configured, the validator.
func (b *commandBase[S, C]) validate(ctx context.Context, logger *slog.Logger, cmd *C) error {
	if err := b.beforeValidation.run(ctx, cmd); err != nil {
		return err
	}

	if b.validator == nil {
		return nil
	}

	if err := b.validator.Validate(ctx, *cmd); err != nil {
		logger.Warn("command rejected", "error", err)
		return err
	}
	return nil
}

// existing loads the record targeted by a command.
func (b *commandBase[S, C]) existing(ctx context.Context, logger *slog.Logger, id int64) (*S, error) {
	return findExisting(ctx, logger, b.repo, b.entity, id)
}

func findExisting[S any](ctx context.Context, logger *slog.Logger, repo Repository[S], entity string, id int64) (*S, error) {
	record, found, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find %s %d: %w", entity, id, err)
	}
	if !found || record == nil {
		logger.Warn("entity not found", "id", id)
		return nil, &NotFoundError{Entity: entity, ID: id}
	}
	return record, nil
}
