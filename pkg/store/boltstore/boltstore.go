// Package boltstore provides a handlers.Repository backed by a bolt database.
// Each entity type lives in its own bucket keyed by big-endian identity, so
// cursor order is identity order. Values are JSON documents.
package boltstore

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
	jsoniter "github.com/json-iterator/go"

	"github.com/JaimeStill/entity-handlers/pkg/entity"
	"github.com/JaimeStill/entity-handlers/pkg/pagination"
	"github.com/JaimeStill/entity-handlers/pkg/repository"
	"github.com/JaimeStill/entity-handlers/pkg/store"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// Open opens the database file described by cfg, creating its directory.
func Open(cfg *Config) (*bolt.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	db, err := bolt.Open(cfg.Path, 0o600, &bolt.Options{Timeout: cfg.TimeoutDuration()})
	if err != nil {
		return nil, fmt.Errorf("open bolt database: %w", err)
	}
	return db, nil
}

// Store holds records of type S in one bucket.
type Store[S any, P entity.Storable[S]] struct {
	db      *bolt.DB
	bucket  []byte
	maxSize int64

	now        func() time.Time
	pagination pagination.Config
	logger     *slog.Logger
}

// New creates a store over bucket, creating the bucket if needed.
// maxSize bounds the encoded record size; zero disables the limit.
func New[S any, P entity.Storable[S]](db *bolt.DB, bucket string, maxSize int64, opts ...store.Option) (*Store[S, P], error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create bucket %s: %w", bucket, err)
	}

	o := store.Apply(opts...)
	return &Store[S, P]{
		db:         db,
		bucket:     []byte(bucket),
		maxSize:    maxSize,
		now:        o.Now,
		pagination: o.Pagination,
		logger:     o.Logger.With("store", "bolt", "bucket", bucket),
	}, nil
}

// FindByID returns the record with the given identity.
func (s *Store[S, P]) FindByID(_ context.Context, id int64) (*S, bool, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(s.bucket).Get(key(id)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if data == nil {
		return nil, false, nil
	}

	r := new(S)
	if err := codec.Unmarshal(data, r); err != nil {
		return nil, false, fmt.Errorf("decode record %d: %w", id, err)
	}
	return r, true, nil
}

// FindPage returns the requested page of records matching the page search.
func (s *Store[S, P]) FindPage(_ context.Context, page pagination.PageRequest) (pagination.Page[*S], error) {
	page.Normalize(s.pagination)
	desc := store.Descending(page.Sort)

	matched := make([]*S, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()

		k, v := c.First()
		next := c.Next
		if desc {
			k, v = c.Last()
			next = c.Prev
		}

		for ; k != nil; k, v = next() {
			r := new(S)
			if err := codec.Unmarshal(v, r); err != nil {
				return fmt.Errorf("decode record %d: %w", binary.BigEndian.Uint64(k), err)
			}
			if store.Matches(P(r), page.Search) {
				matched = append(matched, r)
			}
		}
		return nil
	})
	if err != nil {
		return pagination.Page[*S]{}, err
	}

	start, end := pagination.Window(page, len(matched))
	return pagination.NewPage(matched[start:end], page, len(matched)), nil
}

// Save inserts the record when its identity is zero and replaces it otherwise.
// Updating an identity the bucket does not hold fails with repository.ErrNotFound.
func (s *Store[S, P]) Save(_ context.Context, record *S) (*S, error) {
	p := P(record)
	now := s.now()
	insert := p.Key() == 0

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)

		if insert {
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			p.SetKey(int64(seq))
			p.Stamp(now, now)
		} else {
			v := b.Get(key(p.Key()))
			if v == nil {
				return repository.ErrNotFound
			}
			prev := P(new(S))
			if err := codec.Unmarshal(v, prev); err != nil {
				return fmt.Errorf("decode record %d: %w", p.Key(), err)
			}
			p.Stamp(prev.Created(), now)
		}

		data, err := codec.Marshal(record)
		if err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
		if s.maxSize > 0 && int64(len(data)) > s.maxSize {
			return fmt.Errorf("%w: %d bytes", repository.ErrTooLarge, len(data))
		}
		return b.Put(key(p.Key()), data)
	})
	if err != nil {
		if insert {
			p.SetKey(0)
		}
		return nil, err
	}

	s.logger.Debug("record saved", "id", p.Key())
	out := *record
	return &out, nil
}

// Delete removes the record. Deleting an identity the bucket does not hold
// fails with repository.ErrNotFound.
func (s *Store[S, P]) Delete(_ context.Context, record *S) error {
	id := P(record).Key()
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b.Get(key(id)) == nil {
			return repository.ErrNotFound
		}
		return b.Delete(key(id))
	})
	if err != nil {
		return err
	}
	s.logger.Debug("record deleted", "id", id)
	return nil
}

func key(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}
