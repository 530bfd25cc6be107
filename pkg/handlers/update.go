package handlers

import (
	"context"
	"fmt"
)

// UpdateHooks are the extension points of the update pipeline, in invocation order.
type UpdateHooks[C, D, S any] struct {
	// BeforeValidation normalizes the command before it is validated.
	BeforeValidation Hook[C]

	// BeforeDomain runs once the existing record has been resolved.
	BeforeDomain Hook[C]

	// AfterDomainUpdate runs after the command has been merged into the domain value.
	AfterDomainUpdate Hook[D]

	// BeforeUpdate runs on the merged storage record before it is persisted.
	BeforeUpdate Hook[S]

	// AfterUpdate runs on the persisted record.
	AfterUpdate Hook[S]
}

// Update loads an existing record, merges the command into it through the
// domain representation, persists it and returns its output representation.
// Fields left unset on the command keep their stored values.
type Update[C Identifiable, D, S, O any] struct {
	commandBase[S, C]
	hooks UpdateHooks[C, D, S]
}

// NewUpdate creates an update handler. validator may be nil.
func NewUpdate[C Identifiable, D, S, O any](deps Deps[S], validator Validator[C], hooks UpdateHooks[C, D, S]) *Update[C, D, S, O] {
	return &Update[C, D, S, O]{
		commandBase: newCommandBase("update", deps, validator, hooks.BeforeValidation),
		hooks:       hooks,
	}
}

// Handle runs the update pipeline. It fails with *NotFoundError when no
// record matches the command identity, in which case nothing is saved.
func (h *Update[C, D, S, O]) Handle(ctx context.Context, cmd C) (O, error) {
	var zero O
	logger := h.begin()

	if err := h.validate(ctx, logger, &cmd); err != nil {
		return zero, err
	}

	id := cmd.Identity()
	record, err := h.existing(ctx, logger, id)
	if err != nil {
		return zero, err
	}

	if err := h.hooks.BeforeDomain.run(ctx, &cmd); err != nil {
		return zero, err
	}

	domain, err := mapNew[D](h.mapper, record)
	if err != nil {
		return zero, fmt.Errorf("map %s to domain: %w", h.entity, err)
	}

	if err := h.mapper.Merge(&cmd, domain); err != nil {
		return zero, fmt.Errorf("merge command into domain: %w", err)
	}

	if err := h.hooks.AfterDomainUpdate.run(ctx, domain); err != nil {
		return zero, err
	}

	// Copy every field back so zeros assigned through pointer fields reach storage.
	if err := h.mapper.Map(domain, record); err != nil {
		return zero, fmt.Errorf("copy domain into %s: %w", h.entity, err)
	}

	if err := h.hooks.BeforeUpdate.run(ctx, record); err != nil {
		return zero, err
	}

	updated, err := h.repo.Save(ctx, record)
	if err != nil {
		return zero, fmt.Errorf("save %s %d: %w", h.entity, id, err)
	}

	if err := h.hooks.AfterUpdate.run(ctx, updated); err != nil {
		return zero, err
	}

	out, err := mapNew[O](h.mapper, updated)
	if err != nil {
		return zero, fmt.Errorf("map %s to output: %w", h.entity, err)
	}

	logger.Info("entity updated", "id", id)
	return *out, nil
}
