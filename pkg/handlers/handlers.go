// Package handlers provides generic create, update, delete, get-by-id and
// get-all handlers for entity lifecycle operations.
//
// Each handler runs a fixed pipeline around three capabilities supplied at
// construction: a Repository for one storage type, a Mapper that copies
// matching fields between representations, and an optional Validator for
// commands. Custom behavior is injected through hook structs whose nil slots
// are no-ops. Handlers hold no per-call state and may be shared across
// goroutines when the capabilities they wrap are safe for concurrent use.
package handlers

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/JaimeStill/entity-handlers/pkg/pagination"
)

// Repository is the persistence capability for storage type S.
type Repository[S any] interface {
	// FindByID returns the record with the given identity and whether it exists.
	FindByID(ctx context.Context, id int64) (*S, bool, error)

	// FindPage returns one page of records in store order.
	FindPage(ctx context.Context, page pagination.PageRequest) (pagination.Page[*S], error)

	// Save creates the record when its identity is zero and updates it otherwise.
	// The returned record carries the assigned identity and refreshed timestamps.
	Save(ctx context.Context, record *S) (*S, error)

	// Delete removes the record.
	Delete(ctx context.Context, record *S) error
}

// Mapper copies matching fields between representations.
type Mapper interface {
	// Map copies every matching field of src into dst. Fields of dst
	// without a counterpart in src are left untouched.
	Map(src, dst any) error

	// Merge copies only the set fields of src into the existing dst.
	Merge(src, dst any) error
}

// Validator inspects a command and returns a *ValidationError when it is invalid.
type Validator[C any] interface {
	Validate(ctx context.Context, cmd C) error
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc[C any] func(ctx context.Context, cmd C) error

// Validate calls f. A nil func accepts every command.
func (f ValidatorFunc[C]) Validate(ctx context.Context, cmd C) error {
	if f == nil {
		return nil
	}
	return f(ctx, cmd)
}

// Identifiable is satisfied by commands and queries that target one entity.
type Identifiable interface {
	Identity() int64
}

// Pageable is satisfied by collection queries.
type Pageable interface {
	PageRequest() pagination.PageRequest
}

// CommandHandler handles a command and returns an output.
type CommandHandler[C, O any] interface {
	Handle(ctx context.Context, cmd C) (O, error)
}

// CommandWithoutResponseHandler handles a command that produces no output.
type CommandWithoutResponseHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// QueryHandler handles a query and returns an output.
type QueryHandler[Q, O any] interface {
	Handle(ctx context.Context, q Q) (O, error)
}

// Hook is an extension point invoked at a fixed pipeline position.
// A nil Hook is a no-op. A non-nil error aborts the pipeline and is
// returned to the caller unchanged.
type Hook[T any] func(ctx context.Context, v *T) error

func (h Hook[T]) run(ctx context.Context, v *T) error {
	if h == nil {
		return nil
	}
	return h(ctx, v)
}

// Deps bundles the capabilities shared by every handler over storage type S.
type Deps[S any] struct {
	Repository Repository[S]
	Mapper     Mapper

	// Logger defaults to a discarding logger.
	Logger *slog.Logger

	// Entity names the entity in log records and errors.
	// Defaults to the name of S.
	Entity string
}

func (d Deps[S]) entity() string {
	if d.Entity != "" {
		return d.Entity
	}
	return reflect.TypeFor[S]().Name()
}

func (d Deps[S]) logger(kind string) *slog.Logger {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return logger.With("handler", kind, "entity", d.entity())
}

func mapNew[T any](m Mapper, src any) (*T, error) {
	dst := new(T)
	if err := m.Map(src, dst); err != nil {
		return nil, err
	}
	return dst, nil
}
