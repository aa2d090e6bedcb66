package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gyeh/healthrisk/internal/config"
	"github.com/gyeh/healthrisk/internal/exitcode"
	"github.com/gyeh/healthrisk/internal/export"
	"github.com/gyeh/healthrisk/internal/model"
)

var (
	recordID     string
	assessFormat string
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess one user record (JSON or YAML) and print the health report",
	RunE:  runAssess,
}

func init() {
	f := assessCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to user record, JSON or YAML ('-' for stdin) (required)")
	f.StringVar(&assessFormat, "format", "text", "Output format: text or json")
	f.StringVar(&cfg.OutPath, "out", "", "Write the report here instead of stdout")
	f.BoolVar(&cfg.Store, "store", false, "Persist the assessment (requires --dsn)")
	f.StringVar(&recordID, "record-id", "", "Record id stored with the assessment")
	_ = assessCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(assessCmd)
}

// readRecord decodes a user record. YAML is a superset of JSON so one
// decoder covers both.
func readRecord(path string) (model.UserRecord, error) {
	var (
		data []byte
		err  error
	)
	if path == config.StdinPath {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	var rec model.UserRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	if rec == nil {
		rec = model.UserRecord{}
	}
	return rec, nil
}

func runAssess(cmd *cobra.Command, args []string) error {
	log := setupLogging()
	ctx, cancel := signalContext()
	defer cancel()

	if err := cfg.ValidateRecordInput(cfg.Store); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	if assessFormat != "text" && assessFormat != "json" {
		log.Error().Str("format", assessFormat).Msg("--format must be text or json")
		os.Exit(exitcode.UsageError)
	}

	rec, err := readRecord(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("invalid record")
		os.Exit(exitcode.ValidationError)
	}

	assessor, err := newAssessor(log)
	if err != nil {
		log.Error().Err(err).Msg("invalid scoring configuration")
		os.Exit(exitcode.UsageError)
	}

	a, err := assessor.Assess(ctx, rec)
	if err != nil {
		exitForAssessErr(log, err)
	}

	if cfg.Store {
		pool, store := openStore(ctx, log)
		defer pool.Close()
		reportJSON, err := json.Marshal(a.Report)
		if err == nil {
			err = store.Save(ctx, model.ToReportRow(a, nil, recordID, reportJSON))
		}
		if err != nil {
			log.Error().Err(err).Msg("store failed")
			os.Exit(exitcode.StoreError)
		}
		log.Info().Str("assessment_id", a.ID.String()).Msg("assessment stored")
	}

	w := io.Writer(os.Stdout)
	if cfg.OutPath != "" {
		f, err := os.Create(cfg.OutPath)
		if err != nil {
			log.Error().Err(err).Msg("create output file")
			os.Exit(exitcode.ExportError)
		}
		defer f.Close()
		w = f
	}

	if assessFormat == "json" {
		err = export.WriteJSON(w, a)
	} else {
		err = export.WriteText(w, a.Report)
	}
	if err != nil {
		log.Error().Err(err).Msg("write report")
		os.Exit(exitcode.ExportError)
	}
	return nil
}
