// Package store holds the options and optional record capabilities shared
// by the handlers.Repository implementations in its subpackages.
package store

import (
	"log/slog"
	"time"

	"github.com/JaimeStill/entity-handlers/pkg/pagination"
	"github.com/JaimeStill/entity-handlers/pkg/query"
)

// Searchable is implemented by storage records that can be matched against
// a free-text page search by the in-process stores.
type Searchable interface {
	Matches(search string) bool
}

// Options carries the settings common to every store.
type Options struct {
	Now        func() time.Time
	Pagination pagination.Config
	Logger     *slog.Logger
}

// Option configures a store.
type Option func(*Options)

// WithClock sets the time source used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		o.Now = now
	}
}

// WithPagination sets the page size bounds applied to page requests.
func WithPagination(cfg pagination.Config) Option {
	return func(o *Options) {
		o.Pagination = cfg
	}
}

// WithLogger sets the store logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// Apply resolves opts over the defaults.
func Apply(opts ...Option) Options {
	o := Options{
		Now:        func() time.Time { return time.Now().UTC() },
		Pagination: pagination.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Matches reports whether record satisfies the search of a page request.
// Records that are not Searchable match every search.
func Matches(record any, search *string) bool {
	if search == nil || *search == "" {
		return true
	}
	s, ok := record.(Searchable)
	if !ok {
		return true
	}
	return s.Matches(*search)
}

// Descending reports whether a page request orders the in-process stores
// by descending identity. Only the "id" field is honored there.
func Descending(sort []query.SortField) bool {
	for _, f := range sort {
		if f.Field == "id" || f.Field == "ID" {
			return f.Descending
		}
	}
	return false
}
