package handlers

import (
	"context"
	"fmt"
)

// DeleteHooks are the extension points of the delete pipeline.
type DeleteHooks[C, S any] struct {
	BeforeValidation Hook[C]
	BeforeDelete     Hook[S]
}

// Delete removes an existing record.
type Delete[C Identifiable, S any] struct {
	commandBase[S, C]
	hooks DeleteHooks[C, S]
}

// NewDelete creates a delete handler. validator may be nil.
func NewDelete[C Identifiable, S any](deps Deps[S], validator Validator[C], hooks DeleteHooks[C, S]) *Delete[C, S] {
	return &Delete[C, S]{
		commandBase: newCommandBase("delete", deps, validator, hooks.BeforeValidation),
		hooks:       hooks,
	}
}

// Handle runs the delete pipeline. It fails with *NotFoundError when no
// record matches the command identity, in which case nothing is deleted.
func (h *Delete[C, S]) Handle(ctx context.Context, cmd C) error {
	logger := h.begin()

	if err := h.validate(ctx, logger, &cmd); err != nil {
		return err
	}

	id := cmd.Identity()
	record, err := h.existing(ctx, logger, id)
	if err != nil {
		return err
	}

	if err := h.hooks.BeforeDelete.run(ctx, record); err != nil {
		return err
	}

	if err := h.repo.Delete(ctx, record); err != nil {
		return fmt.Errorf("delete %s %d: %w", h.entity, id, err)
	}

	logger.Info("entity deleted", "id", id)
	return nil
}
