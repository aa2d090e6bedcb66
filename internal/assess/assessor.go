// Package assess runs the end-to-end assessment of a user record: feature
// mapping, per-condition scoring and report aggregation. Batch runs over
// Parquet files live here too.
package assess

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gyeh/healthrisk/internal/classifier"
	"github.com/gyeh/healthrisk/internal/features"
	"github.com/gyeh/healthrisk/internal/model"
	"github.com/gyeh/healthrisk/internal/normalize"
	"github.com/gyeh/healthrisk/internal/risk"
	"github.com/gyeh/healthrisk/internal/scoring"
)

// ConditionError ties a scoring failure to the condition that produced it.
type ConditionError struct {
	Condition model.Condition
	Err       error
}

func (e *ConditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Condition, e.Err)
}

func (e *ConditionError) Unwrap() error {
	return e.Err
}

// Assessor is safe for concurrent use once built.
type Assessor struct {
	mapper *features.Mapper
	models *risk.Set
	scorer *scoring.Scorer
	log    zerolog.Logger
}

// New returns an Assessor scoring with models and aggregating with scorer.
func New(models *risk.Set, scorer *scoring.Scorer, log zerolog.Logger) *Assessor {
	return &Assessor{
		mapper: features.NewMapper(),
		models: models,
		scorer: scorer,
		log:    log,
	}
}

type loader interface {
	Load() (bool, error)
}

// Preload loads every file-backed classifier up front and reports which
// conditions can be scored. Remote classifiers are assumed available.
func (a *Assessor) Preload() map[model.Condition]bool {
	avail := make(map[model.Condition]bool, len(model.AllConditions))
	for _, c := range model.Conditions() {
		m, ok := a.models.Model(c)
		if !ok || m.Classifier == nil {
			a.log.Warn().Str("condition", string(c)).Msg("no classifier configured")
			continue
		}
		l, ok := m.Classifier.(loader)
		if !ok {
			avail[c] = true
			a.log.Info().Str("condition", string(c)).Msg("using remote classifier")
			continue
		}
		found, err := l.Load()
		switch {
		case err != nil:
			a.log.Warn().Err(err).Str("condition", string(c)).Msg("model failed to load")
		case !found:
			a.log.Warn().Str("condition", string(c)).Msg("model file not found")
		default:
			avail[c] = true
			if lm, ok := m.Classifier.(*classifier.LinearModel); ok {
				a.log.Info().
					Str("condition", string(c)).
					Float64("accuracy", lm.Accuracy()).
					Msg("model loaded")
			}
		}
	}
	return avail
}

// Scores maps rec and scores all four conditions concurrently. When any
// condition fails, the first failure in canonical order is returned as a
// *ConditionError.
func (a *Assessor) Scores(ctx context.Context, rec model.UserRecord) (map[model.Condition]float64, map[model.Condition]model.FeatureSet, error) {
	conds := model.Conditions()
	sets := a.mapper.MapAll(rec)
	scores := make([]float64, len(conds))
	errs := make([]error, len(conds))

	var g errgroup.Group
	for i, c := range conds {
		g.Go(func() error {
			m, ok := a.models.Model(c)
			if !ok {
				errs[i] = fmt.Errorf("%w: no model for %s", classifier.ErrModelUnavailable, c)
				return nil
			}
			scores[i], errs[i] = m.RiskScore(ctx, sets[c])
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[model.Condition]float64, len(conds))
	for i, c := range conds {
		if errs[i] != nil {
			return nil, sets, &ConditionError{Condition: c, Err: errs[i]}
		}
		out[c] = scores[i]
	}
	return out, sets, nil
}

// Assess produces the full Assessment for rec. rec is not modified.
func (a *Assessor) Assess(ctx context.Context, rec model.UserRecord) (*model.Assessment, error) {
	start := time.Now()

	scores, sets, err := a.Scores(ctx, rec)
	if err != nil {
		return nil, err
	}
	report, err := a.scorer.Report(scores)
	if err != nil {
		return nil, err
	}

	out := &model.Assessment{
		ID:          uuid.New(),
		CreatedAt:   time.Now().UTC(),
		RecordHash:  normalize.RecordHash(rec),
		FeatureSets: sets,
		Report:      report,
	}

	a.log.Debug().
		Str("assessment_id", out.ID.String()).
		Float64("composite_risk", report.CompositeRisk).
		Str("risk_level", string(report.RiskLevel)).
		Dur("duration", time.Since(start)).
		Msg("assessment complete")
	return out, nil
}

// IsUnavailable reports whether err stems from a missing or broken model,
// and if so for which condition.
func IsUnavailable(err error) (model.Condition, bool) {
	if !errors.Is(err, classifier.ErrModelUnavailable) {
		return "", false
	}
	var ce *ConditionError
	if errors.As(err, &ce) {
		return ce.Condition, true
	}
	return "", true
}
