package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/JaimeStill/entity-handlers/internal/config"
	"github.com/JaimeStill/entity-handlers/internal/members"
	"github.com/JaimeStill/entity-handlers/pkg/logging"
	"github.com/JaimeStill/entity-handlers/pkg/mapping"
)

func main() {
	var (
		configPath = flag.String("config", config.BaseConfigFile, "Configuration file")
		migrate    = flag.Bool("migrate", false, "Apply database migrations before seeding (postgres only)")
		all        = flag.Bool("all", false, "Run all seeders")
		seedMember = flag.Bool("members", false, "Seed members")
		file       = flag.String("file", "", "External seed file (overrides embedded)")
		list       = flag.Bool("list", false, "List available seeders")
	)
	flag.Parse()

	if *list {
		fmt.Println("Available seeders:")
		for _, s := range listSeeders() {
			fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
		}
		return
	}

	if !*all && !*seedMember {
		fmt.Println("usage: seed [-config <path>] [-migrate] [-all|-members] [-file <path>] [-list]")
		flag.PrintDefaults()
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = &config.Config{}
	}
	if err := cfg.Finalize(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := logging.New(&cfg.Logging, os.Stderr)
	ctx := context.Background()

	repo, closeRepo, err := openMembers(ctx, cfg, *migrate, logger)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer closeRepo()

	sys := &Systems{
		Members: members.New(repo, mapping.New(), logger),
		Logger:  logger,
	}

	if *file != "" {
		if seeder, ok := getSeeder("members"); ok {
			seeder.(*MemberSeeder).SetFile(*file)
		}
	}

	switch {
	case *all:
		err = runAllSeeders(ctx, sys)
	default:
		err = runSeeder(ctx, sys, "members")
	}
	if err != nil {
		closeRepo()
		log.Fatalf("seeding failed: %v", err)
	}
	fmt.Printf("seeding completed (%s store)\n", cfg.Store.Backend)
}
