// Package memstore provides an in-process handlers.Repository backed by a map.
// Records are copied on every read and write so callers never share memory
// with the store. Pages are ordered by identity.
package memstore

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/JaimeStill/entity-handlers/pkg/entity"
	"github.com/JaimeStill/entity-handlers/pkg/pagination"
	"github.com/JaimeStill/entity-handlers/pkg/repository"
	"github.com/JaimeStill/entity-handlers/pkg/store"
)

// Store holds records of type S keyed by identity.
type Store[S any, P entity.Storable[S]] struct {
	mu      sync.RWMutex
	records map[int64]S
	seq     int64

	now        func() time.Time
	pagination pagination.Config
	logger     *slog.Logger
}

// New creates an empty store.
func New[S any, P entity.Storable[S]](opts ...store.Option) *Store[S, P] {
	o := store.Apply(opts...)
	return &Store[S, P]{
		records:    make(map[int64]S),
		now:        o.Now,
		pagination: o.Pagination,
		logger:     o.Logger.With("store", "memory"),
	}
}

// FindByID returns a copy of the record with the given identity.
func (s *Store[S, P]) FindByID(_ context.Context, id int64) (*S, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return nil, false, nil
	}
	return &r, true, nil
}

// FindPage returns the requested page of records matching the page search.
func (s *Store[S, P]) FindPage(ctx context.Context, page pagination.PageRequest) (pagination.Page[*S], error) {
	return s.FindPageWhere(ctx, page, nil)
}

// FindPageWhere returns the requested page of records that satisfy both the
// page search and pred. A nil pred accepts every record.
func (s *Store[S, P]) FindPageWhere(_ context.Context, page pagination.PageRequest, pred func(*S) bool) (pagination.Page[*S], error) {
	page.Normalize(s.pagination)

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	if store.Descending(page.Sort) {
		slices.Reverse(ids)
	}

	matched := make([]*S, 0, len(ids))
	for _, id := range ids {
		r := s.records[id]
		if !store.Matches(P(&r), page.Search) {
			continue
		}
		if pred != nil && !pred(&r) {
			continue
		}
		matched = append(matched, &r)
	}

	start, end := pagination.Window(page, len(matched))
	s.logger.Debug("page read", "page", page.Page, "size", page.PageSize, "total", len(matched))
	return pagination.NewPage(matched[start:end], page, len(matched)), nil
}

// Save inserts the record when its identity is zero and replaces it otherwise.
// Updating an identity the store does not hold fails with repository.ErrNotFound.
func (s *Store[S, P]) Save(_ context.Context, record *S) (*S, error) {
	p := P(record)
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Key() == 0 {
		s.seq++
		p.SetKey(s.seq)
		p.Stamp(now, now)
	} else {
		prev, ok := s.records[p.Key()]
		if !ok {
			return nil, repository.ErrNotFound
		}
		p.Stamp(P(&prev).Created(), now)
	}

	s.records[p.Key()] = *record
	out := *record
	s.logger.Debug("record saved", "id", p.Key())
	return &out, nil
}

// Delete removes the record. Deleting an identity the store does not hold
// fails with repository.ErrNotFound.
func (s *Store[S, P]) Delete(_ context.Context, record *S) error {
	id := P(record).Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.records, id)
	s.logger.Debug("record deleted", "id", id)
	return nil
}

// Len returns the number of stored records.
func (s *Store[S, P]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
