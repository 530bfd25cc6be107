package handlers_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/JaimeStill/entity-handlers/pkg/entity"
	"github.com/JaimeStill/entity-handlers/pkg/handlers"
	"github.com/JaimeStill/entity-handlers/pkg/mapping"
	"github.com/JaimeStill/entity-handlers/pkg/pagination"
	"github.com/JaimeStill/entity-handlers/pkg/store"
	"github.com/JaimeStill/entity-handlers/pkg/store/memstore"
)

type widget struct {
	Name  string
	Count int
	Note  string
	Label string
}

type widgetRecord struct {
	entity.Record
	Name  string
	Count int
	Note  string
	Label string
}

type widgetView struct {
	entity.Output
	Name  string
	Count int
	Note  string
	Label string
}

type createWidget struct {
	Name  string
	Count *int
	Note  string
}

type updateWidget struct {
	entity.Command
	Name  *string
	Count *int
	Note  *string
}

type deleteWidget struct {
	entity.Command
}

type getWidget struct {
	entity.Query
}

type listWidgets struct {
	entity.PagedQuery
}

var (
	_ handlers.CommandHandler[createWidget, widgetView]                 = (*handlers.Create[createWidget, widget, widgetRecord, widgetView])(nil)
	_ handlers.CommandHandler[updateWidget, widgetView]                 = (*handlers.Update[updateWidget, widget, widgetRecord, widgetView])(nil)
	_ handlers.CommandWithoutResponseHandler[deleteWidget]              = (*handlers.Delete[deleteWidget, widgetRecord])(nil)
	_ handlers.QueryHandler[getWidget, widgetView]                      = (*handlers.GetByID[getWidget, widgetRecord, widgetView])(nil)
	_ handlers.QueryHandler[listWidgets, entity.Collection[widgetView]] = (*handlers.GetAll[listWidgets, widgetRecord, widgetView])(nil)
)

var errBoom = errors.New("boom")

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// clock advances one minute per reading.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Minute)
	return c.t
}

// spyRepo counts capability calls and can inject failures.
type spyRepo struct {
	*memstore.Store[widgetRecord, *widgetRecord]

	finds, pages, saves, deletes int

	findErr, pageErr, saveErr, deleteErr error
}

func newSpyRepo() *spyRepo {
	c := &clock{t: epoch}
	return &spyRepo{Store: memstore.New[widgetRecord](store.WithClock(c.now))}
}

func (r *spyRepo) FindByID(ctx context.Context, id int64) (*widgetRecord, bool, error) {
	r.finds++
	if r.findErr != nil {
		return nil, false, r.findErr
	}
	return r.Store.FindByID(ctx, id)
}

func (r *spyRepo) FindPage(ctx context.Context, page pagination.PageRequest) (pagination.Page[*widgetRecord], error) {
	r.pages++
	if r.pageErr != nil {
		return pagination.Page[*widgetRecord]{}, r.pageErr
	}
	return r.Store.FindPage(ctx, page)
}

func (r *spyRepo) Save(ctx context.Context, record *widgetRecord) (*widgetRecord, error) {
	r.saves++
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	return r.Store.Save(ctx, record)
}

func (r *spyRepo) Delete(ctx context.Context, record *widgetRecord) error {
	r.deletes++
	if r.deleteErr != nil {
		return r.deleteErr
	}
	return r.Store.Delete(ctx, record)
}

// seed stores records directly, bypassing the spy counters.
func (r *spyRepo) seed(records ...widgetRecord) {
	for i := range records {
		if _, err := r.Store.Save(context.Background(), &records[i]); err != nil {
			panic(err)
		}
	}
}

func deps(repo handlers.Repository[widgetRecord]) handlers.Deps[widgetRecord] {
	return handlers.Deps[widgetRecord]{
		Repository: repo,
		Mapper:     mapping.New(),
		Entity:     "widget",
	}
}

// requireName rejects widgets without a name.
var requireName = handlers.ValidatorFunc[createWidget](func(_ context.Context, cmd createWidget) error {
	if cmd.Name == "" {
		return handlers.NewValidationError("name", "is required")
	}
	return nil
})

// trace records hook invocations in order.
type trace struct {
	calls []string
}

func traced[T any](t *trace, name string) handlers.Hook[T] {
	return func(context.Context, *T) error {
		t.calls = append(t.calls, name)
		return nil
	}
}

func ptr[T any](v T) *T {
	return &v
}
