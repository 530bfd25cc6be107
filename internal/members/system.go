package members

import (
	"log/slog"

	"github.com/JaimeStill/entity-handlers/pkg/handlers"
	"github.com/JaimeStill/entity-handlers/pkg/store/pgstore"
)

// EntityName identifies members in logs, errors, bolt buckets and tables.
const EntityName = "members"

// System bundles the member handlers over one repository.
type System struct {
	Create *handlers.Create[CreateCommand, Member, Record, View]
	Update *handlers.Update[UpdateCommand, Member, Record, View]
	Delete *handlers.Delete[DeleteCommand, Record]
	Get    *handlers.GetByID[GetQuery, Record, View]
	List   *handlers.GetAll[ListQuery, Record, View]
}

// New wires the member handlers. logger may be nil.
func New(repo handlers.Repository[Record], mapper handlers.Mapper, logger *slog.Logger) *System {
	deps := handlers.Deps[Record]{
		Repository: repo,
		Mapper:     mapper,
		Logger:     logger,
		Entity:     "member",
	}

	return &System{
		Create: handlers.NewCreate[CreateCommand, Member, Record, View](deps, createRules, handlers.CreateHooks[CreateCommand, Member, Record]{
			BeforeValidation:    normalizeCreate,
			AfterDomainCreation: deriveDomain,
		}),
		Update: handlers.NewUpdate[UpdateCommand, Member, Record, View](deps, updateRules, handlers.UpdateHooks[UpdateCommand, Member, Record]{
			BeforeValidation:  normalizeUpdate,
			AfterDomainUpdate: deriveDomain,
		}),
		Delete: handlers.NewDelete[DeleteCommand, Record](deps, nil, handlers.DeleteHooks[DeleteCommand, Record]{}),
		Get:    handlers.NewGetByID[GetQuery, Record, View](deps, handlers.GetByIDHooks[Record]{}),
		List: handlers.NewGetAll[ListQuery, Record, View](deps, handlers.GetAllHooks[ListQuery, Record]{
			Retrieve: retrieve,
		}),
	}
}

// Table describes the members table for the postgres store.
func Table(schema string) pgstore.Table {
	return pgstore.Table{
		Schema: schema,
		Name:   EntityName,
		Alias:  "m",
		Search: []string{"name", "email"},
		Sort:   []string{"name", "email", "email_domain"},
	}
}
