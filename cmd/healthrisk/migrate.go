package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/healthrisk/internal/db"
	"github.com/gyeh/healthrisk/internal/exitcode"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	log := setupLogging()
	ctx := context.Background()

	if cfg.DSN == "" {
		log.Error().Msg("--dsn or HEALTHRISK_DB_URL is required")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN, 2)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	n, err := db.ApplyMigrations(ctx, pool, log)
	if err != nil {
		log.Error().Err(err).Msg("migration failed")
		os.Exit(exitcode.StoreError)
	}

	log.Info().Int("applied", n).Msg("schema up to date")
	return nil
}
