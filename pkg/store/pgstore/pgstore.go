// Package pgstore provides a handlers.Repository backed by PostgreSQL.
//
// Each entity type is stored in its own table of the form
//
//	id BIGSERIAL PRIMARY KEY, data JSONB, created_at TIMESTAMPTZ, updated_at TIMESTAMPTZ
//
// where data holds the JSON encoding of the record. Reads are built with the
// query package and scanned with sqlx; writes are built with goqu.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/JaimeStill/entity-handlers/pkg/entity"
	"github.com/JaimeStill/entity-handlers/pkg/pagination"
	"github.com/JaimeStill/entity-handlers/pkg/query"
	"github.com/JaimeStill/entity-handlers/pkg/repository"
	"github.com/JaimeStill/entity-handlers/pkg/store"
)

var (
	codec   = jsoniter.ConfigCompatibleWithStandardLibrary
	dialect = goqu.Dialect("postgres")
)

// Table describes the table backing one entity type.
type Table struct {
	Schema string
	Name   string
	Alias  string

	// Search lists the data keys matched case-insensitively by a page search.
	Search []string

	// Sort lists the data keys a page request may order by, in addition to
	// id, created_at and updated_at.
	Sort []string
}

func (t Table) projection() *query.ProjectionMap {
	alias := t.Alias
	if alias == "" {
		alias = "t"
	}
	pm := query.NewProjectionMap(t.Schema, t.Name, alias).
		Project("id", "id").
		Project("data", "data").
		Project("created_at", "created_at").
		Project("updated_at", "updated_at")

	for _, key := range t.Search {
		pm.Field(jsonText(key), key)
	}
	for _, key := range t.Sort {
		pm.Field(jsonText(key), key)
	}
	return pm
}

func (t Table) expression() exp.IdentifierExpression {
	return goqu.S(t.Schema).Table(t.Name)
}

func jsonText(key string) string {
	return "data->>'" + key + "'"
}

type row struct {
	ID        int64     `db:"id"`
	Data      []byte    `db:"data"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Store holds records of type S in one table.
type Store[S any, P entity.Storable[S]] struct {
	db         *sqlx.DB
	table      Table
	projection *query.ProjectionMap

	now        func() time.Time
	pagination pagination.Config
	logger     *slog.Logger
}

// New creates a store over table. The table is expected to exist.
func New[S any, P entity.Storable[S]](db *sqlx.DB, table Table, opts ...store.Option) *Store[S, P] {
	if table.Schema == "" {
		table.Schema = "public"
	}
	o := store.Apply(opts...)
	return &Store[S, P]{
		db:         db,
		table:      table,
		projection: table.projection(),
		now:        o.Now,
		pagination: o.Pagination,
		logger:     o.Logger.With("store", "postgres", "table", table.Schema+"."+table.Name),
	}
}

func (s *Store[S, P]) FindByID(ctx context.Context, id int64) (*S, bool, error) {
	q, args := query.NewBuilder(s.projection, query.SortField{Field: "id"}).BuildSingle("id", id)

	var r row
	if err := s.db.GetContext(ctx, &r, q, args...); err != nil {
		err = repository.MapError(err, repository.ErrNotFound, repository.ErrDuplicate)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select %s %d: %w", s.table.Name, id, err)
	}

	rec, err := decode[S, P](r)
	if err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

func (s *Store[S, P]) FindPage(ctx context.Context, req pagination.PageRequest) (pagination.Page[*S], error) {
	req.Normalize(s.pagination)

	b := query.NewBuilder(s.projection, query.SortField{Field: "id"}).
		WhereSearch(req.Search, s.table.Search...).
		OrderBy(req.Sort...)

	countSQL, countArgs := b.BuildCount()
	var total int
	if err := s.db.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return pagination.Page[*S]{}, fmt.Errorf("count %s: %w", s.table.Name, err)
	}

	var rows []row
	if start, end := pagination.Window(req, total); start < end {
		pageSQL, pageArgs := b.BuildPage(start, req.PageSize)
		if err := s.db.SelectContext(ctx, &rows, pageSQL, pageArgs...); err != nil {
			return pagination.Page[*S]{}, fmt.Errorf("select %s page: %w", s.table.Name, err)
		}
	}

	content := make([]*S, 0, len(rows))
	for _, r := range rows {
		rec, err := decode[S, P](r)
		if err != nil {
			return pagination.Page[*S]{}, err
		}
		content = append(content, rec)
	}

	s.logger.Debug("page read", "page", req.Page, "size", req.PageSize, "count", len(content), "total", total)
	return pagination.NewPage(content, req, total), nil
}

func (s *Store[S, P]) Save(ctx context.Context, rec *S) (*S, error) {
	p := P(rec)

	data, err := codec.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", s.table.Name, err)
	}

	now := s.now()
	var (
		q    string
		args []any
	)
	if p.Key() == 0 {
		q, args, err = dialect.Insert(s.table.expression()).
			Rows(goqu.Record{"data": string(data), "created_at": now, "updated_at": now}).
			Returning("id", "data", "created_at", "updated_at").
			Prepared(true).
			ToSQL()
	} else {
		q, args, err = dialect.Update(s.table.expression()).
			Set(goqu.Record{"data": string(data), "updated_at": now}).
			Where(goqu.C("id").Eq(p.Key())).
			Returning("id", "data", "created_at", "updated_at").
			Prepared(true).
			ToSQL()
	}
	if err != nil {
		return nil, fmt.Errorf("build save %s: %w", s.table.Name, err)
	}

	var r row
	if err := s.db.QueryRowxContext(ctx, q, args...).StructScan(&r); err != nil {
		return nil, fmt.Errorf("save %s %d: %w", s.table.Name, p.Key(),
			repository.MapError(err, repository.ErrNotFound, repository.ErrDuplicate))
	}

	s.logger.Debug("record saved", "id", r.ID)
	return decode[S, P](r)
}

func (s *Store[S, P]) Delete(ctx context.Context, rec *S) error {
	id := P(rec).Key()

	q, args, err := dialect.Delete(s.table.expression()).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", s.table.Name, err)
	}

	result, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", s.table.Name, id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", s.table.Name, id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete %s %d: %w", s.table.Name, id, repository.ErrNotFound)
	}

	s.logger.Debug("record deleted", "id", id)
	return nil
}

func decode[S any, P entity.Storable[S]](r row) (*S, error) {
	var rec S
	if err := codec.Unmarshal(r.Data, &rec); err != nil {
		return nil, fmt.Errorf("decode record %d: %w", r.ID, err)
	}
	p := P(&rec)
	p.SetKey(r.ID)
	p.Stamp(r.CreatedAt, r.UpdatedAt)
	return &rec, nil
}
