package handlers

import (
	"context"
	"fmt"

	"github.com/JaimeStill/entity-handlers/pkg/entity"
	"github.com/JaimeStill/entity-handlers/pkg/pagination"
)

// RetrieveFunc loads the page of records for a collection query.
type RetrieveFunc[Q any, S any] func(ctx context.Context, q Q, repo Repository[S]) (pagination.Page[*S], error)

// GetAllHooks are the extension points of the get-all pipeline.
type GetAllHooks[Q, S any] struct {
	// Retrieve replaces the default unfiltered page request, typically to
	// apply filters carried by the query.
	Retrieve RetrieveFunc[Q, S]

	// AfterRetrieve runs over the raw records before they are mapped.
	AfterRetrieve func(ctx context.Context, records []*S) error
}

// GetAll loads a page of records and returns them as a collection of outputs
// in store order. Queries are not validated.
type GetAll[Q Pageable, S, O any] struct {
	queryBase[S]
	hooks GetAllHooks[Q, S]
}

// NewGetAll creates a get-all handler.
func NewGetAll[Q Pageable, S, O any](deps Deps[S], hooks GetAllHooks[Q, S]) *GetAll[Q, S, O] {
	return &GetAll[Q, S, O]{
		queryBase: newQueryBase("list", deps),
		hooks:     hooks,
	}
}

// Handle runs the get-all pipeline. An empty first page is a valid empty
// collection; an empty page at any other index fails with
// *PaginationOutOfBoundsError, as does a negative index, which never
// reaches the repository.
func (h *GetAll[Q, S, O]) Handle(ctx context.Context, q Q) (entity.Collection[O], error) {
	var zero entity.Collection[O]
	logger := h.begin()

	number := q.PageRequest().Page
	if number < 0 {
		logger.Warn("page out of bounds", "page", number)
		return zero, &PaginationOutOfBoundsError{Page: number}
	}

	page, err := h.retrieve(ctx, q)
	if err != nil {
		return zero, fmt.Errorf("retrieve %s page: %w", h.entity, err)
	}

	if !page.HasContent() && number != 0 {
		logger.Warn("page out of bounds", "page", number)
		return zero, &PaginationOutOfBoundsError{Page: number}
	}

	if h.hooks.AfterRetrieve != nil {
		if err := h.hooks.AfterRetrieve(ctx, page.Content); err != nil {
			return zero, err
		}
	}

	out := entity.NewCollection[O](len(page.Content))
	for _, record := range page.Content {
		o, err := mapNew[O](h.mapper, record)
		if err != nil {
			return zero, fmt.Errorf("map %s to output: %w", h.entity, err)
		}
		out.Add(*o)
	}

	logger.Debug("page retrieved", "page", number, "count", out.Len())
	return out, nil
}

func (h *GetAll[Q, S, O]) retrieve(ctx context.Context, q Q) (pagination.Page[*S], error) {
	if h.hooks.Retrieve != nil {
		return h.hooks.Retrieve(ctx, q, h.repo)
	}
	return h.repo.FindPage(ctx, q.PageRequest())
}
