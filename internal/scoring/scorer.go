// Package scoring blends per-condition risk scores into a composite health
// report: weighted composite risk, health score, risk level, letter grade,
// and tiered recommendations.
package scoring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gyeh/healthrisk/internal/model"
	"github.com/gyeh/healthrisk/internal/normalize"
)

// ErrIncompleteAssessment is returned when fewer than all four condition
// scores are supplied. A missing score is never read as zero risk.
var ErrIncompleteAssessment = errors.New("incomplete assessment")

var hundred = decimal.NewFromInt(100)

// Scorer aggregates risk scores. It is immutable after construction and
// safe for concurrent use.
type Scorer struct {
	weights Weights
}

// NewScorer validates w and returns a Scorer using it.
func NewScorer(w Weights) (*Scorer, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weights: %w", err)
	}
	return &Scorer{weights: w}, nil
}

// Weights returns the weights in use.
func (s *Scorer) Weights() Weights {
	return s.weights
}

func checkComplete(scores map[model.Condition]float64) error {
	var missing []string
	for _, c := range model.Conditions() {
		if _, ok := scores[c]; !ok {
			missing = append(missing, string(c))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteAssessment, strings.Join(missing, ", "))
	}
	return nil
}

func (s *Scorer) composite(scores map[model.Condition]float64) (decimal.Decimal, error) {
	if err := checkComplete(scores); err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, c := range model.Conditions() {
		sum = sum.Add(decimal.NewFromFloat(scores[c]).Mul(s.weights.Of(c)))
	}
	return sum.Round(2), nil
}

// CompositeRisk is the weighted sum of the four scores, rounded to 2 places.
func (s *Scorer) CompositeRisk(scores map[model.Condition]float64) (float64, error) {
	d, err := s.composite(scores)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// HealthScore is 100 minus the composite risk, rounded to 2 places.
func (s *Scorer) HealthScore(scores map[model.Condition]float64) (float64, error) {
	d, err := s.composite(scores)
	if err != nil {
		return 0, err
	}
	return hundred.Sub(d).Round(2).InexactFloat64(), nil
}

// Recommendations emits one advice block per condition in the order heart,
// diabetes, hypertension, obesity, followed by a summary block only when
// every condition is low risk.
func (s *Scorer) Recommendations(scores map[model.Condition]float64) ([]model.Recommendation, error) {
	if err := checkComplete(scores); err != nil {
		return nil, err
	}
	out := make([]model.Recommendation, 0, len(scores)+1)
	allLow := true
	for _, c := range model.Conditions() {
		r := recommendation(c, scores[c])
		if r.Level != model.Low {
			allLow = false
		}
		out = append(out, r)
	}
	if allLow {
		out = append(out, model.Recommendation{
			Headline: SummaryHeadline,
			Bullets:  append([]string(nil), summaryBullets...),
		})
	}
	return out, nil
}

// Report composes the full health report. It is deterministic: equal inputs
// give equal reports.
func (s *Scorer) Report(scores map[model.Condition]float64) (*model.HealthReport, error) {
	composite, err := s.composite(scores)
	if err != nil {
		return nil, err
	}
	recs, err := s.Recommendations(scores)
	if err != nil {
		return nil, err
	}

	compositeRisk := composite.InexactFloat64()
	healthScore := hundred.Sub(composite).Round(2).InexactFloat64()

	risks := make(map[model.Condition]model.RiskScore, len(scores))
	for _, c := range model.Conditions() {
		risks[c] = model.RiskScore{
			Condition: c,
			Score:     normalize.Round2(scores[c]),
			Level:     RiskLevel(scores[c]),
		}
	}

	var lines []string
	for _, r := range recs {
		lines = append(lines, r.Lines()...)
	}

	return &model.HealthReport{
		IndividualRisks: risks,
		CompositeRisk:   compositeRisk,
		HealthScore:     healthScore,
		RiskLevel:       RiskLevel(compositeRisk),
		HealthGrade:     HealthGrade(healthScore),
		Recommendations: lines,
		WeightsUsed:     s.weights.Floats(),
	}, nil
}
