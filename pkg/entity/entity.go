// Package entity defines the base representation shapes shared by the
// handler pipelines: storage records, commands, queries and outputs.
// Concrete types embed these to satisfy the handler constraints.
package entity

import (
	"time"

	"github.com/JaimeStill/entity-handlers/pkg/pagination"
)

// Storable is satisfied by pointers to storage representations.
// Stores use it to read and assign identity and timestamps.
type Storable[S any] interface {
	*S
	Key() int64
	SetKey(id int64)
	Created() time.Time
	Stamp(created, updated time.Time)
}

// Record is the embeddable base of a storage representation.
type Record struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Key returns the record identity. Zero means not yet persisted.
func (r *Record) Key() int64 {
	return r.ID
}

// SetKey assigns the record identity.
func (r *Record) SetKey(id int64) {
	r.ID = id
}

// Created returns the creation timestamp.
func (r *Record) Created() time.Time {
	return r.CreatedAt
}

// Stamp sets the creation and update timestamps.
func (r *Record) Stamp(created, updated time.Time) {
	r.CreatedAt = created
	r.UpdatedAt = updated
}

// Command is the embeddable base of a command representation.
// The identity is supplied out of band (e.g. a route parameter) and is
// never part of the serialized command.
type Command struct {
	ID int64 `json:"-"`
}

// Identity returns the target entity identity.
func (c Command) Identity() int64 {
	return c.ID
}

// Query is the embeddable base of a single-entity query.
type Query struct {
	ID int64 `json:"-"`
}

// Identity returns the requested entity identity.
func (q Query) Identity() int64 {
	return q.ID
}

// PagedQuery is the embeddable base of a collection query.
type PagedQuery struct {
	Page pagination.PageRequest `json:"page"`
}

// PageRequest returns the pagination parameters passed to the store.
func (q PagedQuery) PageRequest() pagination.PageRequest {
	return q.Page
}

// Output is the embeddable base of an output representation.
type Output struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Collection is an ordered sequence of outputs returned by collection queries.
type Collection[O any] struct {
	Entities []O `json:"entities"`
}

// NewCollection creates an empty collection with room for n entities.
func NewCollection[O any](n int) Collection[O] {
	return Collection[O]{Entities: make([]O, 0, n)}
}

// Add appends a single output.
func (c *Collection[O]) Add(o O) {
	c.Entities = append(c.Entities, o)
}

// AddAll appends outputs in order.
func (c *Collection[O]) AddAll(os []O) {
	c.Entities = append(c.Entities, os...)
}

// Len returns the number of outputs in the collection.
func (c Collection[O]) Len() int {
	return len(c.Entities)
}
