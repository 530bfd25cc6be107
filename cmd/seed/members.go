package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/JaimeStill/entity-handlers/internal/members"
	"github.com/JaimeStill/entity-handlers/pkg/entity"
	"github.com/JaimeStill/entity-handlers/pkg/handlers"
	"github.com/JaimeStill/entity-handlers/pkg/pagination"
	"github.com/JaimeStill/entity-handlers/pkg/repository"
)

//go:embed seeds/*.json
var seedFiles embed.FS

const lookupPageSize = 50

func init() {
	registerSeeder(&MemberSeeder{})
}

// MemberSeedData represents the JSON structure for member seed files.
type MemberSeedData struct {
	Members []members.CreateCommand `json:"members"`
}

// MemberSeeder implements Seeder for members.
// It loads seed data from an embedded file or an external file path.
type MemberSeeder struct {
	file string
}

// Name returns "members" as the seeder identifier.
func (s *MemberSeeder) Name() string {
	return "members"
}

// Description returns a human-readable description of this seeder.
func (s *MemberSeeder) Description() string {
	return "Seeds sample members through the create handler"
}

// SetFile configures an external seed file path, overriding the embedded default.
func (s *MemberSeeder) SetFile(path string) {
	s.file = path
}

// Seed creates every member in the seed data. Members rejected by validation
// or whose email is already stored are logged and skipped.
func (s *MemberSeeder) Seed(ctx context.Context, sys *Systems) (Result, error) {
	var result Result

	data, err := s.loadSeedData()
	if err != nil {
		return result, err
	}

	for _, cmd := range data.Members {
		found, err := registered(ctx, sys.Members, cmd.Email)
		if err != nil {
			return result, fmt.Errorf("look up member %s: %w", cmd.Email, err)
		}
		if found {
			result.Skipped++
			sys.Logger.Info("member already seeded", "email", cmd.Email)
			continue
		}

		view, err := sys.Members.Create.Handle(ctx, cmd)
		switch {
		case err == nil:
			result.Created++
			sys.Logger.Debug("member seeded", "id", view.ID, "email", view.Email)
		case errors.Is(err, handlers.ErrValidation), errors.Is(err, repository.ErrDuplicate):
			result.Skipped++
			sys.Logger.Warn("member skipped", "email", cmd.Email, "error", err)
		default:
			return result, fmt.Errorf("create member %s: %w", cmd.Email, err)
		}
	}

	return result, nil
}

// registered reports whether a member with email is already stored.
// The pages filtered by email are scanned for an exact match.
func registered(ctx context.Context, sys *members.System, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, nil
	}

	for page := 0; ; page++ {
		q := members.ListQuery{
			PagedQuery: entity.PagedQuery{Page: pagination.PageRequest{Page: page, PageSize: lookupPageSize}},
			Filter:     &email,
		}
		out, err := sys.List.Handle(ctx, q)
		if errors.Is(err, handlers.ErrPaginationOutOfBounds) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		for _, m := range out.Entities {
			if m.Email == email {
				return true, nil
			}
		}
		if out.Len() < lookupPageSize {
			return false, nil
		}
	}
}

func (s *MemberSeeder) loadSeedData() (*MemberSeedData, error) {
	var content []byte
	var err error

	if s.file != "" {
		content, err = os.ReadFile(s.file)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	} else {
		content, err = seedFiles.ReadFile("seeds/members.json")
		if err != nil {
			return nil, fmt.Errorf("read embedded seed file: %w", err)
		}
	}

	var data MemberSeedData
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	return &data, nil
}
