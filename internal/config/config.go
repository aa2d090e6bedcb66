package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/gyeh/healthrisk/internal/classifier"
	"github.com/gyeh/healthrisk/internal/model"
	"github.com/gyeh/healthrisk/internal/risk"
	"github.com/gyeh/healthrisk/internal/scoring"
)

// Environment variables consulted for defaults.
const (
	EnvDSN           = "HEALTHRISK_DB_URL"
	EnvModelDir      = "HEALTHRISK_MODEL_DIR"
	EnvClassifierURL = "HEALTHRISK_CLASSIFIER_URL"
)

const (
	DefaultModelDir          = "models"
	DefaultClassifierTimeout = 5 * time.Second
	DefaultAddr              = ":8080"
)

// Config holds all runtime configuration for a healthrisk run.
type Config struct {
	DSN               string
	ModelDir          string
	ClassifierURL     string
	ClassifierTimeout time.Duration
	LogFormat         string // "text" or "json"
	LogLevel          string
	ConfigFile        string

	FilePath string // user record (assess) or parquet batch (batch)
	OutPath  string
	Workers  int
	Addr     string
	Store    bool

	Weights map[string]string          // condition -> decimal string
	Models  map[model.Condition]string // condition -> coefficient file
	Blend   risk.Blend
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	Weights           map[string]string `yaml:"weights"`
	Blend             *yamlBlend        `yaml:"blend"`
	Models            map[string]string `yaml:"models"`
	ModelDir          string            `yaml:"model_dir"`
	ClassifierURL     string            `yaml:"classifier_url"`
	ClassifierTimeout string            `yaml:"classifier_timeout"`
	Workers           int               `yaml:"workers"`
}

type yamlBlend struct {
	HeartML    *float64 `yaml:"heart_ml"`
	ObesityBMI *float64 `yaml:"obesity_bmi"`
}

// LoadEnv loads .env style files into the process environment without
// overriding variables already set. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load env file %s: %w", f, err)
		}
	}
	return nil
}

// Defaults returns a Config seeded from the environment.
func Defaults() Config {
	c := Config{
		DSN:               os.Getenv(EnvDSN),
		ModelDir:          os.Getenv(EnvModelDir),
		ClassifierURL:     os.Getenv(EnvClassifierURL),
		ClassifierTimeout: DefaultClassifierTimeout,
		LogFormat:         "text",
		LogLevel:          "info",
		Workers:           runtime.NumCPU(),
		Addr:              DefaultAddr,
		Blend:             risk.DefaultBlend(),
	}
	if c.ModelDir == "" {
		c.ModelDir = DefaultModelDir
	}
	return c
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Values present in the file override the current ones.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if len(yc.Weights) > 0 {
		c.Weights = yc.Weights
		if _, err := scoring.ParseWeights(c.Weights); err != nil {
			return fmt.Errorf("config weights: %w", err)
		}
	}
	if yc.Blend != nil {
		if err := c.applyBlend(yc.Blend); err != nil {
			return err
		}
	}
	if len(yc.Models) > 0 {
		c.Models = make(map[model.Condition]string, len(yc.Models))
		for name, p := range yc.Models {
			ci, ok := model.ConditionByName(name)
			if !ok {
				return fmt.Errorf("unknown condition %q in models", name)
			}
			c.Models[ci.Condition] = p
		}
	}
	if yc.ModelDir != "" {
		c.ModelDir = yc.ModelDir
	}
	if yc.ClassifierURL != "" {
		c.ClassifierURL = yc.ClassifierURL
	}
	if yc.ClassifierTimeout != "" {
		d, err := time.ParseDuration(yc.ClassifierTimeout)
		if err != nil {
			return fmt.Errorf("classifier_timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("classifier_timeout must be positive, got %s", d)
		}
		c.ClassifierTimeout = d
	}
	if yc.Workers != 0 {
		if yc.Workers < 0 {
			return fmt.Errorf("workers must be positive, got %d", yc.Workers)
		}
		c.Workers = yc.Workers
	}
	return nil
}

func (c *Config) applyBlend(b *yamlBlend) error {
	if b.HeartML != nil {
		if *b.HeartML < 0 || *b.HeartML > 1 {
			return fmt.Errorf("blend.heart_ml must be within [0,1], got %v", *b.HeartML)
		}
		c.Blend.HeartML = *b.HeartML
		c.Blend.HeartRule = 1 - *b.HeartML
	}
	if b.ObesityBMI != nil {
		if *b.ObesityBMI < 0 || *b.ObesityBMI > 1 {
			return fmt.Errorf("blend.obesity_bmi must be within [0,1], got %v", *b.ObesityBMI)
		}
		c.Blend.ObesityBMI = *b.ObesityBMI
		c.Blend.ObesityRule = 1 - *b.ObesityBMI
	}
	return nil
}

// ScoringWeights returns the configured weights, or equal weights when none
// are configured.
func (c *Config) ScoringWeights() (scoring.Weights, error) {
	if len(c.Weights) == 0 {
		return scoring.DefaultWeights(), nil
	}
	return scoring.ParseWeights(c.Weights)
}

// ClassifierSource says where condition's model lives. An explicit model
// path wins over the classifier URL; otherwise the model directory holds
// <condition>_model.yaml.
func (c *Config) ClassifierSource(cond model.Condition) classifier.Source {
	src := classifier.Source{Timeout: c.ClassifierTimeout}
	if p, ok := c.Models[cond]; ok && p != "" {
		src.Path = p
		return src
	}
	if c.ClassifierURL != "" {
		src.URL = strings.TrimRight(c.ClassifierURL, "/")
		return src
	}
	src.Path = filepath.Join(c.ModelDir, cond.Info().ModelFile)
	return src
}

// Classifiers opens one classifier per condition.
func (c *Config) Classifiers() map[model.Condition]classifier.Classifier {
	out := make(map[model.Condition]classifier.Classifier, len(model.AllConditions))
	for _, cond := range model.Conditions() {
		out[cond] = classifier.Open(cond, c.ClassifierSource(cond))
	}
	return out
}

// StdinPath is the --file value that reads from standard input.
const StdinPath = "-"

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	return c.ValidateRuntime()
}

// ValidateRuntime checks settings shared by every command.
func (c *Config) ValidateRuntime() error {
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("--log-format must be text or json, got %q", c.LogFormat)
	}
	if c.Workers < 1 {
		return fmt.Errorf("--workers must be at least 1, got %d", c.Workers)
	}
	if c.ClassifierTimeout <= 0 {
		return fmt.Errorf("--classifier-timeout must be positive")
	}
	if _, err := c.ScoringWeights(); err != nil {
		return err
	}
	return nil
}

// ValidateWithDSN checks both file and DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	return c.requireDSN()
}

// ValidateRecordInput checks a single-record command. FilePath may be
// StdinPath; store additionally requires a DSN.
func (c *Config) ValidateRecordInput(store bool) error {
	var err error
	if c.FilePath == StdinPath {
		err = c.ValidateRuntime()
	} else {
		err = c.Validate()
	}
	if err != nil {
		return err
	}
	if store {
		return c.requireDSN()
	}
	return nil
}

func (c *Config) requireDSN() error {
	if c.DSN == "" {
		return fmt.Errorf("--dsn or %s is required", EnvDSN)
	}
	return nil
}
