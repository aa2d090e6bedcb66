// Package risk turns classifier outputs into 0-100 risk scores. Each
// condition pairs a classifier with a scoring Strategy; some strategies
// blend the classifier with deterministic clinical rules.
package risk

import (
	"github.com/gyeh/healthrisk/internal/classifier"
	"github.com/gyeh/healthrisk/internal/model"
	"github.com/gyeh/healthrisk/internal/normalize"
)

// Strategy converts a prediction and the features it was made from into a
// risk percentage.
type Strategy interface {
	Score(p classifier.Prediction, fs model.FeatureSet) float64
}

// Probability scores risk as the classifier's probability x 100.
type Probability struct{}

// Score implements Strategy.
func (Probability) Score(p classifier.Prediction, _ model.FeatureSet) float64 {
	return p.Probability * 100
}

// Default blend shares.
const (
	DefaultHeartML     = 0.30
	DefaultHeartRule   = 0.70
	DefaultObesityBMI  = 0.80
	DefaultObesityRule = 0.20
)

// HeartBlend mixes the classifier probability with the clinical rule score.
type HeartBlend struct {
	ML       float64
	Clinical float64
}

// Score implements Strategy.
func (h HeartBlend) Score(p classifier.Prediction, fs model.FeatureSet) float64 {
	ml := p.Probability * 100
	clinical := ClinicalHeartScore(fs).Percent()
	return normalize.Round2(ml*h.ML + clinical*h.Clinical)
}

// ObesityBlend mixes the BMI bucket risk with the risk implied by the
// classifier's predicted weight class.
type ObesityBlend struct {
	BMI   float64
	Class float64
}

// Score implements Strategy.
func (o ObesityBlend) Score(p classifier.Prediction, fs model.FeatureSet) float64 {
	bmiRisk := BMIRisk(FeatureBMI(fs))
	classRisk := ObesityClassRisk(p.Class)
	return normalize.Round2(bmiRisk*o.BMI + classRisk*o.Class)
}

// Blend holds the configurable blend shares for the hybrid strategies.
type Blend struct {
	HeartML     float64
	HeartRule   float64
	ObesityBMI  float64
	ObesityRule float64
}

// DefaultBlend returns the production blend shares.
func DefaultBlend() Blend {
	return Blend{
		HeartML:     DefaultHeartML,
		HeartRule:   DefaultHeartRule,
		ObesityBMI:  DefaultObesityBMI,
		ObesityRule: DefaultObesityRule,
	}
}

// Strategies returns the scoring strategy for every condition.
func Strategies(b Blend) map[model.Condition]Strategy {
	return map[model.Condition]Strategy{
		model.Heart:        HeartBlend{ML: b.HeartML, Clinical: b.HeartRule},
		model.Diabetes:     Probability{},
		model.Hypertension: Probability{},
		model.Obesity:      ObesityBlend{BMI: b.ObesityBMI, Class: b.ObesityRule},
	}
}
