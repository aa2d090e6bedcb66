package model

import (
	"time"

	"github.com/google/uuid"
)

// RiskLevel is the categorical bucket of a risk percentage.
type RiskLevel string

const (
	Low      RiskLevel = "low"
	Moderate RiskLevel = "moderate"
	High     RiskLevel = "high"
	VeryHigh RiskLevel = "very_high"
	Critical RiskLevel = "critical"
)

// RiskScore is one condition's 0-100 risk and the level it maps to.
type RiskScore struct {
	Condition Condition `json:"-"`
	Score     float64   `json:"score"`
	Level     RiskLevel `json:"level"`
}

// Recommendation is the advice block emitted for one condition, or the
// overall summary when Condition is empty.
type Recommendation struct {
	Condition Condition `json:"condition,omitempty"`
	Level     RiskLevel `json:"level,omitempty"`
	Headline  string    `json:"headline"`
	Bullets   []string  `json:"bullets"`
}

// Lines flattens the block into report lines: headline first, then bullets
// indented under it.
func (r Recommendation) Lines() []string {
	out := make([]string, 0, 1+len(r.Bullets))
	out = append(out, r.Headline)
	for _, b := range r.Bullets {
		out = append(out, "   - "+b)
	}
	return out
}

// HealthReport is the aggregate result of one assessment. It is built once
// and never modified.
type HealthReport struct {
	IndividualRisks map[Condition]RiskScore `json:"individual_risks"`
	CompositeRisk   float64                 `json:"composite_risk"`
	HealthScore     float64                 `json:"health_score"`
	RiskLevel       RiskLevel               `json:"risk_level"`
	HealthGrade     string                  `json:"health_grade"`
	Recommendations []string                `json:"recommendations"`
	WeightsUsed     map[Condition]float64   `json:"weights_used"`
}

// Risk returns the individual risk for c.
func (r *HealthReport) Risk(c Condition) RiskScore {
	rs := r.IndividualRisks[c]
	rs.Condition = c
	return rs
}

// Assessment wraps a report with the inputs that produced it.
type Assessment struct {
	ID          uuid.UUID                `json:"id"`
	CreatedAt   time.Time                `json:"created_at"`
	RecordHash  string                   `json:"record_hash"`
	FeatureSets map[Condition]FeatureSet `json:"feature_sets"`
	Report      *HealthReport            `json:"report"`
}
