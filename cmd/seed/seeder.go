// Package main provides the seed command for populating a store with
// initial or test data through the entity handlers. The store backend is
// selected by configuration: memory, bolt or postgres.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/JaimeStill/entity-handlers/internal/members"
)

// Systems holds the handler systems seeders write through.
type Systems struct {
	Members *members.System
	Logger  *slog.Logger
}

// Seeder defines the interface for seeders.
// Each seeder is responsible for populating a specific domain's data.
type Seeder interface {
	// Name returns the unique identifier for this seeder.
	Name() string

	// Description returns a human-readable description of what this seeder does.
	Description() string

	// Seed creates the seeder's records through the handlers in sys.
	Seed(ctx context.Context, sys *Systems) (Result, error)
}

// Result counts the outcome of one seeder run.
type Result struct {
	Created int
	Skipped int
}

var seeders = map[string]Seeder{}

// registerSeeder adds a seeder to the global registry.
// Seeders self-register via init() functions.
func registerSeeder(s Seeder) {
	seeders[s.Name()] = s
}

// getSeeder retrieves a seeder by name from the registry.
func getSeeder(name string) (Seeder, bool) {
	s, ok := seeders[name]
	return s, ok
}

// listSeeders returns all registered seeders ordered by name.
func listSeeders() []Seeder {
	result := make([]Seeder, 0, len(seeders))
	for _, s := range seeders {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

// runSeeder executes a single seeder by name.
func runSeeder(ctx context.Context, sys *Systems, name string) error {
	seeder, ok := getSeeder(name)
	if !ok {
		return fmt.Errorf("seeder not found: %s", name)
	}

	result, err := seeder.Seed(ctx, sys)
	if err != nil {
		return fmt.Errorf("seed %s: %w", name, err)
	}

	sys.Logger.Info("seeder completed", "seeder", name, "created", result.Created, "skipped", result.Skipped)
	return nil
}

// runAllSeeders executes all registered seeders, stopping at the first failure.
func runAllSeeders(ctx context.Context, sys *Systems) error {
	for _, s := range listSeeders() {
		if err := runSeeder(ctx, sys, s.Name()); err != nil {
			return err
		}
	}
	return nil
}
