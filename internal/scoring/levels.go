package scoring

import "github.com/gyeh/healthrisk/internal/model"

// Risk level upper bounds (exclusive).
const (
	LowBelow      = 30
	ModerateBelow = 50
	HighBelow     = 70
	VeryHighBelow = 85
)

// RiskLevel buckets a risk percentage. Values outside [0,100] are not
// rejected: negatives are low, anything from 85 up is critical.
func RiskLevel(score float64) model.RiskLevel {
	switch {
	case score < LowBelow:
		return model.Low
	case score < ModerateBelow:
		return model.Moderate
	case score < HighBelow:
		return model.High
	case score < VeryHighBelow:
		return model.VeryHigh
	}
	return model.Critical
}

var gradeLadder = []struct {
	min   float64
	grade string
}{
	{90, "A+"},
	{80, "A"},
	{70, "B"},
	{60, "C"},
	{50, "D"},
}

// HealthGrade converts a health score to a letter grade, A+ through F.
func HealthGrade(score float64) string {
	for _, g := range gradeLadder {
		if score >= g.min {
			return g.grade
		}
	}
	return "F"
}
