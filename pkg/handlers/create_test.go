package handlers_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/entity-handlers/pkg/handlers"
)

type createHandler = handlers.Create[createWidget, widget, widgetRecord, widgetView]

func newCreate(repo *spyRepo, validator handlers.Validator[createWidget], hooks handlers.CreateHooks[createWidget, widget, widgetRecord]) *createHandler {
	return handlers.NewCreate[createWidget, widget, widgetRecord, widgetView](deps(repo), validator, hooks)
}

func TestCreate_Handle(t *testing.T) {
	repo := newSpyRepo()
	h := newCreate(repo, requireName, handlers.CreateHooks[createWidget, widget, widgetRecord]{})

	out, err := h.Handle(context.Background(), createWidget{Name: "gear", Count: ptr(3), Note: "steel"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, "gear", out.Name)
	assert.Equal(t, 3, out.Count)
	assert.Equal(t, "steel", out.Note)
	assert.Equal(t, epoch.Add(time.Minute), out.CreatedAt)
	assert.Equal(t, out.CreatedAt, out.UpdatedAt)
	assert.Equal(t, 1, repo.saves)

	stored, ok, err := repo.Store.FindByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "gear", stored.Name)
}

func TestCreate_Handle_AssignsDistinctIdentities(t *testing.T) {
	repo := newSpyRepo()
	h := newCreate(repo, nil, handlers.CreateHooks[createWidget, widget, widgetRecord]{})

	first, err := h.Handle(context.Background(), createWidget{Name: "a"})
	require.NoError(t, err)
	second, err := h.Handle(context.Background(), createWidget{Name: "a"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, repo.Len())
}

type keyedWidget struct {
	ID   int64
	Name string
}

type createKeyedWidget struct {
	ID   int64
	Name string
}

func TestCreate_Handle_IgnoresCommandIdentity(t *testing.T) {
	repo := newSpyRepo()
	repo.seed(widgetRecord{Name: "old"})

	var seen int64 = -1
	h := handlers.NewCreate[createKeyedWidget, keyedWidget, widgetRecord, widgetView](deps(repo), nil,
		handlers.CreateHooks[createKeyedWidget, keyedWidget, widgetRecord]{
			BeforeSave: func(_ context.Context, r *widgetRecord) error {
				seen = r.ID
				return nil
			},
		})

	out, err := h.Handle(context.Background(), createKeyedWidget{ID: 1, Name: "new"})
	require.NoError(t, err)

	assert.Zero(t, seen)
	assert.Equal(t, int64(2), out.ID)
	assert.Equal(t, "new", out.Name)
	assert.Equal(t, 2, repo.Len())

	existing, ok, err := repo.Store.FindByID(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "old", existing.Name)
}

func TestCreate_Handle_ValidationFailure(t *testing.T) {
	repo := newSpyRepo()
	tr := &trace{}
	h := newCreate(repo, requireName, handlers.CreateHooks[createWidget, widget, widgetRecord]{
		BeforeDomain:        traced[createWidget](tr, "BeforeDomain"),
		AfterDomainCreation: traced[widget](tr, "AfterDomainCreation"),
		BeforeSave:          traced[widgetRecord](tr, "BeforeSave"),
	})

	_, err := h.Handle(context.Background(), createWidget{})
	require.Error(t, err)

	var verr *handlers.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Attribute)
	assert.ErrorIs(t, err, handlers.ErrValidation)
	assert.Equal(t, "name: is required", err.Error())

	assert.Zero(t, repo.saves)
	assert.Zero(t, repo.Len())
	assert.Empty(t, tr.calls)
}

func TestCreate_Handle_HookOrder(t *testing.T) {
	tr := &trace{}
	validator := handlers.ValidatorFunc[createWidget](func(context.Context, createWidget) error {
		tr.calls = append(tr.calls, "Validate")
		return nil
	})
	h := newCreate(newSpyRepo(), validator, handlers.CreateHooks[createWidget, widget, widgetRecord]{
		BeforeValidation:    traced[createWidget](tr, "BeforeValidation"),
		BeforeDomain:        traced[createWidget](tr, "BeforeDomain"),
		AfterDomainCreation: traced[widget](tr, "AfterDomainCreation"),
		BeforeSave:          traced[widgetRecord](tr, "BeforeSave"),
		AfterSave:           traced[widgetRecord](tr, "AfterSave"),
	})

	_, err := h.Handle(context.Background(), createWidget{Name: "gear"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"BeforeValidation",
		"Validate",
		"BeforeDomain",
		"AfterDomainCreation",
		"BeforeSave",
		"AfterSave",
	}, tr.calls)
}

func TestCreate_Handle_ValidatorCalledOnce(t *testing.T) {
	calls := 0
	validator := handlers.ValidatorFunc[createWidget](func(context.Context, createWidget) error {
		calls++
		return nil
	})
	h := newCreate(newSpyRepo(), validator, handlers.CreateHooks[createWidget, widget, widgetRecord]{})

	_, err := h.Handle(context.Background(), createWidget{Name: "gear"})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestCreate_Handle_BeforeValidationNormalizes(t *testing.T) {
	var validated createWidget
	validator := handlers.ValidatorFunc[createWidget](func(_ context.Context, cmd createWidget) error {
		validated = cmd
		return nil
	})
	h := newCreate(newSpyRepo(), validator, handlers.CreateHooks[createWidget, widget, widgetRecord]{
		BeforeValidation: func(_ context.Context, cmd *createWidget) error {
			cmd.Name = strings.TrimSpace(cmd.Name)
			return nil
		},
	})

	cmd := createWidget{Name: "  gear  "}
	out, err := h.Handle(context.Background(), cmd)
	require.NoError(t, err)

	assert.Equal(t, "gear", validated.Name)
	assert.Equal(t, "gear", out.Name)
	assert.Equal(t, "  gear  ", cmd.Name, "caller command must not change")
}

func TestCreate_Handle_DomainHookShapesRecord(t *testing.T) {
	repo := newSpyRepo()
	h := newCreate(repo, nil, handlers.CreateHooks[createWidget, widget, widgetRecord]{
		AfterDomainCreation: func(_ context.Context, w *widget) error {
			w.Label = strings.ToUpper(w.Name)
			return nil
		},
		BeforeSave: func(_ context.Context, r *widgetRecord) error {
			r.Note = r.Note + "!"
			return nil
		},
	})

	out, err := h.Handle(context.Background(), createWidget{Name: "gear", Note: "new"})
	require.NoError(t, err)

	assert.Equal(t, "GEAR", out.Label)
	assert.Equal(t, "new!", out.Note)
}

func TestCreate_Handle_AfterSaveSeesIdentity(t *testing.T) {
	var saved int64
	h := newCreate(newSpyRepo(), nil, handlers.CreateHooks[createWidget, widget, widgetRecord]{
		AfterSave: func(_ context.Context, r *widgetRecord) error {
			saved = r.ID
			return nil
		},
	})

	out, err := h.Handle(context.Background(), createWidget{Name: "gear"})
	require.NoError(t, err)
	assert.Equal(t, out.ID, saved)
}

func TestCreate_Handle_HookErrorAborts(t *testing.T) {
	tests := []struct {
		name      string
		hooks     handlers.CreateHooks[createWidget, widget, widgetRecord]
		wantSaves int
	}{
		{
			name: "before validation",
			hooks: handlers.CreateHooks[createWidget, widget, widgetRecord]{
				BeforeValidation: func(context.Context, *createWidget) error { return errBoom },
			},
		},
		{
			name: "before domain",
			hooks: handlers.CreateHooks[createWidget, widget, widgetRecord]{
				BeforeDomain: func(context.Context, *createWidget) error { return errBoom },
			},
		},
		{
			name: "after domain creation",
			hooks: handlers.CreateHooks[createWidget, widget, widgetRecord]{
				AfterDomainCreation: func(context.Context, *widget) error { return errBoom },
			},
		},
		{
			name: "before save",
			hooks: handlers.CreateHooks[createWidget, widget, widgetRecord]{
				BeforeSave: func(context.Context, *widgetRecord) error { return errBoom },
			},
		},
		{
			name: "after save",
			hooks: handlers.CreateHooks[createWidget, widget, widgetRecord]{
				AfterSave: func(context.Context, *widgetRecord) error { return errBoom },
			},
			wantSaves: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newSpyRepo()
			h := newCreate(repo, nil, tt.hooks)

			_, err := h.Handle(context.Background(), createWidget{Name: "gear"})
			assert.ErrorIs(t, err, errBoom)
			assert.Equal(t, tt.wantSaves, repo.saves)
		})
	}
}

func TestCreate_Handle_SaveError(t *testing.T) {
	repo := newSpyRepo()
	repo.saveErr = errBoom
	h := newCreate(repo, nil, handlers.CreateHooks[createWidget, widget, widgetRecord]{})

	_, err := h.Handle(context.Background(), createWidget{Name: "gear"})
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "save widget")
}

func TestCreate_Handle_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	d := deps(newSpyRepo())
	d.Logger = logger
	h := handlers.NewCreate[createWidget, widget, widgetRecord, widgetView](d, requireName, handlers.CreateHooks[createWidget, widget, widgetRecord]{})

	_, err := h.Handle(context.Background(), createWidget{Name: "gear"})
	require.NoError(t, err)
	_, err = h.Handle(context.Background(), createWidget{})
	require.Error(t, err)

	logs := buf.String()
	assert.Contains(t, logs, `"msg":"command received"`)
	assert.Contains(t, logs, `"msg":"entity created"`)
	assert.Contains(t, logs, `"msg":"command rejected"`)
	assert.Contains(t, logs, `"handler":"create"`)
	assert.Contains(t, logs, `"entity":"widget"`)
	assert.Contains(t, logs, `"invocation":`)
}

func TestCreate_Handle_MapperError(t *testing.T) {
	d := deps(newSpyRepo())
	d.Mapper = failingMapper{}
	h := handlers.NewCreate[createWidget, widget, widgetRecord, widgetView](d, nil, handlers.CreateHooks[createWidget, widget, widgetRecord]{})

	_, err := h.Handle(context.Background(), createWidget{Name: "gear"})
	assert.True(t, errors.Is(err, errBoom))
}

type failingMapper struct{}

func (failingMapper) Map(any, any) error   { return errBoom }
func (failingMapper) Merge(any, any) error { return errBoom }
