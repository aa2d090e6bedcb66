package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/healthrisk/internal/assess"
	"github.com/gyeh/healthrisk/internal/classifier"
	"github.com/gyeh/healthrisk/internal/config"
	"github.com/gyeh/healthrisk/internal/db"
	"github.com/gyeh/healthrisk/internal/exitcode"
	"github.com/gyeh/healthrisk/internal/logging"
	"github.com/gyeh/healthrisk/internal/risk"
	"github.com/gyeh/healthrisk/internal/scoring"
)

var envErr = config.LoadEnv()

var cfg = config.Defaults()

var rootCmd = &cobra.Command{
	Use:   "healthrisk",
	Short: "Multi-condition health risk assessment",
	Long: "Scores heart disease, diabetes, hypertension and obesity risk from a user's health inputs " +
		"and aggregates them into a composite health report.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfigFile,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", cfg.DSN, "Postgres connection string (or set "+config.EnvDSN+")")
	pf.StringVar(&cfg.ConfigFile, "config", "", "Path to YAML config (weights, blend, models)")
	pf.StringVar(&cfg.ModelDir, "model-dir", cfg.ModelDir, "Directory holding <condition>_model.yaml files (or set "+config.EnvModelDir+")")
	pf.StringVar(&cfg.ClassifierURL, "classifier-url", cfg.ClassifierURL, "Remote prediction service base URL (or set "+config.EnvClassifierURL+")")
	pf.DurationVar(&cfg.ClassifierTimeout, "classifier-timeout", cfg.ClassifierTimeout, "Timeout for one remote prediction")
	pf.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text or json")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
}

func loadConfigFile(cmd *cobra.Command, args []string) error {
	if envErr != nil {
		return envErr
	}
	if cfg.ConfigFile == "" {
		return nil
	}
	return cfg.LoadFromFile(cfg.ConfigFile)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newAssessor(log zerolog.Logger) (*assess.Assessor, error) {
	weights, err := cfg.ScoringWeights()
	if err != nil {
		return nil, err
	}
	scorer, err := scoring.NewScorer(weights)
	if err != nil {
		return nil, err
	}
	a := assess.New(risk.NewSet(cfg.Classifiers(), cfg.Blend), scorer, log)
	avail := a.Preload()
	log.Debug().Int("available", len(avail)).Msg("classifiers checked")
	return a, nil
}

func openStore(ctx context.Context, log zerolog.Logger) (*pgxpool.Pool, *db.Store) {
	pool, err := db.NewPool(ctx, cfg.DSN, int32(cfg.Workers)+2)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	return pool, db.NewStore(pool, log)
}

// exitForAssessErr maps a single-assessment failure to an exit code.
func exitForAssessErr(log zerolog.Logger, err error) {
	if cond, ok := assess.IsUnavailable(err); ok {
		log.Error().Err(err).Str("condition", string(cond)).Msg("model unavailable")
		os.Exit(exitcode.ModelUnavailable)
	}
	if errors.Is(err, scoring.ErrIncompleteAssessment) {
		log.Error().Err(err).Msg("incomplete assessment")
		os.Exit(exitcode.IncompleteAssessment)
	}
	if errors.Is(err, classifier.ErrModelUnavailable) {
		log.Error().Err(err).Msg("model unavailable")
		os.Exit(exitcode.ModelUnavailable)
	}
	log.Error().Err(err).Msg("assessment failed")
	os.Exit(exitcode.ValidationError)
}

func setupLogging() zerolog.Logger {
	return logging.Setup(cfg.LogFormat, cfg.LogLevel)
}
