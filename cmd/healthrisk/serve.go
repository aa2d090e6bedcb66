package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/gyeh/healthrisk/internal/exitcode"
	"github.com/gyeh/healthrisk/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assessment HTTP API",
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	f.BoolVar(&cfg.Store, "store", false, "Persist assessments to Postgres (requires --dsn)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := setupLogging()
	ctx, cancel := signalContext()
	defer cancel()

	if err := cfg.ValidateRuntime(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	if cfg.Store && cfg.DSN == "" {
		log.Error().Msg("--store needs --dsn or HEALTHRISK_DB_URL")
		os.Exit(exitcode.UsageError)
	}

	assessor, err := newAssessor(log)
	if err != nil {
		log.Error().Err(err).Msg("invalid scoring configuration")
		os.Exit(exitcode.UsageError)
	}

	gin.SetMode(gin.ReleaseMode)
	opts := server.Options{Assessor: assessor, Log: log}
	if cfg.Store {
		pool, store := openStore(ctx, log)
		defer pool.Close()
		opts.Store = store
		opts.DB = pool
	}

	if err := server.Serve(ctx, cfg.Addr, server.NewRouter(opts), log); err != nil {
		log.Error().Err(err).Msg("server error")
		os.Exit(exitcode.UsageError)
	}
	return nil
}
