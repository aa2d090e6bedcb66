package risk

import (
	"context"
	"fmt"

	"github.com/gyeh/healthrisk/internal/classifier"
	"github.com/gyeh/healthrisk/internal/model"
)

// Model scores one condition.
type Model struct {
	Condition  model.Condition
	Classifier classifier.Classifier
	Strategy   Strategy
}

// Predict delegates to the classifier. A nil classifier is unavailable.
func (m *Model) Predict(ctx context.Context, fs model.FeatureSet) (classifier.Prediction, error) {
	if m.Classifier == nil {
		return classifier.Prediction{}, fmt.Errorf("%w: no classifier configured for %s", classifier.ErrModelUnavailable, m.Condition)
	}
	return m.Classifier.Predict(ctx, fs)
}

// RiskScore returns the 0-100 risk for fs. Classifier failures are returned
// as-is; no placeholder score is ever produced.
func (m *Model) RiskScore(ctx context.Context, fs model.FeatureSet) (float64, error) {
	p, err := m.Predict(ctx, fs)
	if err != nil {
		return 0, err
	}
	return m.Strategy.Score(p, fs), nil
}

// Set holds one Model per condition. It is built once and read concurrently.
type Set struct {
	models map[model.Condition]*Model
}

// NewSet pairs each condition's classifier with its strategy. Conditions
// without a classifier get a Model that reports ErrModelUnavailable.
func NewSet(classifiers map[model.Condition]classifier.Classifier, b Blend) *Set {
	strategies := Strategies(b)
	s := &Set{models: make(map[model.Condition]*Model, len(strategies))}
	for _, c := range model.Conditions() {
		s.models[c] = &Model{
			Condition:  c,
			Classifier: classifiers[c],
			Strategy:   strategies[c],
		}
	}
	return s
}

// Model returns the model for c.
func (s *Set) Model(c model.Condition) (*Model, bool) {
	m, ok := s.models[c]
	return m, ok
}
