package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/gyeh/healthrisk/internal/assess"
	"github.com/gyeh/healthrisk/internal/db"
	"github.com/gyeh/healthrisk/internal/exitcode"
	"github.com/gyeh/healthrisk/internal/export"
	"github.com/gyeh/healthrisk/internal/model"
)

var batchFormat string

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Assess every user record in a Parquet file",
	RunE:  runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to Parquet file of user records (required)")
	f.IntVar(&cfg.Workers, "workers", cfg.Workers, "Concurrent assessments")
	f.StringVar(&cfg.OutPath, "out", "", "Write report rows to this file")
	f.StringVar(&batchFormat, "format", "", "Output format: json, xlsx or parquet (default from --out extension)")
	f.BoolVar(&cfg.Store, "store", false, "COPY assessments into Postgres (requires --dsn)")
	_ = batchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(batchCmd)
}

func outputFormat(path, format string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch format {
	case "json", "xlsx", "parquet":
		return format, nil
	}
	return "", fmt.Errorf("unsupported output format %q (want json, xlsx or parquet)", format)
}

func writeRows(path, format string, rows []*model.ReportRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	switch format {
	case "xlsx":
		err = export.WriteXLSX(f, rows)
	case "parquet":
		err = export.WriteParquet(f, rows)
	default:
		err = export.WriteJSON(f, rows)
	}
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runBatch(cmd *cobra.Command, args []string) error {
	log := setupLogging()
	ctx, cancel := signalContext()
	defer cancel()

	validate := cfg.Validate
	if cfg.Store {
		validate = cfg.ValidateWithDSN
	}
	if err := validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	var format string
	if cfg.OutPath != "" {
		var err error
		if format, err = outputFormat(cfg.OutPath, batchFormat); err != nil {
			log.Error().Err(err).Msg("config validation failed")
			os.Exit(exitcode.UsageError)
		}
	}

	assessor, err := newAssessor(log)
	if err != nil {
		log.Error().Err(err).Msg("invalid scoring configuration")
		os.Exit(exitcode.UsageError)
	}

	opts := assess.BatchOptions{FilePath: cfg.FilePath, Workers: cfg.Workers}
	var store *db.Store
	if cfg.Store {
		var pool *pgxpool.Pool
		pool, store = openStore(ctx, log)
		defer pool.Close()
		opts.Sink = store
	}

	res, err := assess.RunBatch(ctx, assessor, log, opts)
	if err != nil {
		var pe *assess.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("batch failed")
			switch pe.Phase {
			case "preflight":
				os.Exit(exitcode.ValidationError)
			case "store":
				os.Exit(exitcode.StoreError)
			}
		}
		log.Error().Err(err).Msg("batch failed")
		os.Exit(exitcode.ValidationError)
	}

	if cfg.OutPath != "" {
		if err := writeRows(cfg.OutPath, format, res.Rows); err != nil {
			log.Error().Err(err).Str("out", cfg.OutPath).Msg("export failed")
			os.Exit(exitcode.ExportError)
		}
		log.Info().Str("out", cfg.OutPath).Str("format", format).Int("rows", len(res.Rows)).Msg("report rows written")
	}

	s := res.Summary
	fmt.Printf("Batch %s complete: %d read, %d assessed, %d failed, %d stored (%.1fs)\n",
		s.BatchID, s.RecordsRead, s.RecordsAssessed, s.RecordsFailed, s.RowsStored, s.DurationTotal.Seconds())
	for _, c := range model.Conditions() {
		if n := s.FailedConditions[c]; n > 0 {
			fmt.Printf("  %-13s %d records failed\n", c, n)
		}
	}

	if store != nil {
		if batchID, err := uuid.Parse(s.BatchID); err == nil {
			levels, err := store.BatchLevels(ctx, batchID)
			if err != nil {
				log.Warn().Err(err).Msg("could not read stored batch stats")
			}
			for _, l := range []model.RiskLevel{model.Low, model.Moderate, model.High, model.VeryHigh, model.Critical} {
				if n := levels[l]; n > 0 {
					fmt.Printf("  %-13s %d stored\n", l, n)
				}
			}
		}
	}

	if s.RecordsFailed > 0 {
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}
