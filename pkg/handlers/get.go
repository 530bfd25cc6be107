package handlers

import (
	"context"
	"fmt"
)

// GetByIDHooks are the extension points of the get-by-id pipeline.
type GetByIDHooks[S any] struct {
	BeforeReturn Hook[S]
}

// GetByID loads one record and returns its output representation.
// Queries are not validated.
type GetByID[Q Identifiable, S, O any] struct {
	queryBase[S]
	hooks GetByIDHooks[S]
}

// NewGetByID creates a get-by-id handler.
func NewGetByID[Q Identifiable, S, O any](deps Deps[S], hooks GetByIDHooks[S]) *GetByID[Q, S, O] {
	return &GetByID[Q, S, O]{
		queryBase: newQueryBase("get", deps),
		hooks:     hooks,
	}
}

// Handle runs the get-by-id pipeline. It fails with *NotFoundError when no
// record matches the query identity.
func (h *GetByID[Q, S, O]) Handle(ctx context.Context, q Q) (O, error) {
	var zero O
	logger := h.begin()

	record, err := findExisting(ctx, logger, h.repo, h.entity, q.Identity())
	if err != nil {
		return zero, err
	}

	if err := h.hooks.BeforeReturn.run(ctx, record); err != nil {
		return zero, err
	}

	out, err := mapNew[O](h.mapper, record)
	if err != nil {
		return zero, fmt.Errorf("map %s to output: %w", h.entity, err)
	}
	return *out, nil
}
