package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"barbearia/internal/config"
	"barbearia/internal/database"
	"barbearia/internal/logging"
)

func main() {
	status := flag.Bool("status", false, "print applied migration versions without applying new ones")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Logging, cfg.AppEnv)

	db, err := database.Connect(cfg.Database, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect failed")
	}
	defer func() { _ = database.Close(db) }()

	ctx := context.Background()
	if !*status {
		if err := database.Migrate(ctx, db, logger); err != nil {
			logger.Fatal().Err(err).Msg("migrate failed")
		}
	}

	var versions []int
	if db.Migrator().HasTable("schema_migrations") {
		versions, err = database.AppliedVersions(ctx, db)
		if err != nil {
			logger.Fatal().Err(err).Msg("read applied versions failed")
		}
	}
	logger.Info().
		Ints("applied", versions).
		Int("known", len(database.Migrations)).
		Msg("migration status")
}
