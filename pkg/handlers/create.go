package handlers

import (
	"context"
	"fmt"
)

// CreateHooks are the extension points of the create pipeline, in invocation order.
type CreateHooks[C, D, S any] struct {
	// BeforeValidation normalizes the command before it is validated.
	BeforeValidation Hook[C]

	// BeforeDomain runs after validation, before the command is mapped.
	BeforeDomain Hook[C]

	// AfterDomainCreation adjusts the domain value before it is projected to storage shape.
	AfterDomainCreation Hook[D]

	// BeforeSave runs on the storage record before it is persisted.
	BeforeSave Hook[S]

	// AfterSave runs on the persisted record.
	AfterSave Hook[S]
}

// Create maps a command through domain and storage representations,
// persists the record and returns its output representation.
type Create[C, D, S, O any] struct {
	commandBase[S, C]
	hooks CreateHooks[C, D, S]
}

// keyed is implemented by storage records that expose their identity.
type keyed interface {
	SetKey(id int64)
}

// NewCreate creates a create handler. validator may be nil.
// Any identity mapped onto the new record is cleared before BeforeSave, so a
// create always inserts.
func NewCreate[C, D, S, O any](deps Deps[S], validator Validator[C], hooks CreateHooks[C, D, S]) *Create[C, D, S, O] {
	return &Create[C, D, S, O]{
		commandBase: newCommandBase("create", deps, validator, hooks.BeforeValidation),
		hooks:       hooks,
	}
}

// Handle runs the create pipeline. The caller's command is not modified.
func (h *Create[C, D, S, O]) Handle(ctx context.Context, cmd C) (O, error) {
	var zero O
	logger := h.begin()

	if err := h.validate(ctx, logger, &cmd); err != nil {
		return zero, err
	}

	if err := h.hooks.BeforeDomain.run(ctx, &cmd); err != nil {
		return zero, err
	}

	domain, err := mapNew[D](h.mapper, &cmd)
	if err != nil {
		return zero, fmt.Errorf("map command to domain: %w", err)
	}

	if err := h.hooks.AfterDomainCreation.run(ctx, domain); err != nil {
		return zero, err
	}

	record, err := mapNew[S](h.mapper, domain)
	if err != nil {
		return zero, fmt.Errorf("map domain to %s: %w", h.entity, err)
	}
	// An identity carried over from the command would turn Save into an update.
	if k, ok := any(record).(keyed); ok {
		k.SetKey(0)
	}

	if err := h.hooks.BeforeSave.run(ctx, record); err != nil {
		return zero, err
	}

	created, err := h.repo.Save(ctx, record)
	if err != nil {
		return zero, fmt.Errorf("save %s: %w", h.entity, err)
	}

	if err := h.hooks.AfterSave.run(ctx, created); err != nil {
		return zero, err
	}

	out, err := mapNew[O](h.mapper, created)
	if err != nil {
		return zero, fmt.Errorf("map %s to output: %w", h.entity, err)
	}

	logger.Info("entity created")
	return *out, nil
}
