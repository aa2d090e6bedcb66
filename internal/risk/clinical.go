package risk

import "github.com/gyeh/healthrisk/internal/model"

type step struct {
	min    float64
	points float64
}

// ladder awards the points of the first step whose min the value reaches.
type ladder []step

func (l ladder) points(v float64) float64 {
	for _, s := range l {
		if v >= s.min {
			return s.points
		}
	}
	return 0
}

// Per-factor caps of the clinical heart rule.
const (
	agePoints       = 20
	pressurePoints  = 20
	cholPoints      = 20
	heartRatePoints = 15
	fbsPoints       = 10
	chestPainPoints = 15
)

var (
	ageLadder      = ladder{{65, 20}, {55, 15}, {45, 10}, {35, 5}}
	pressureLadder = ladder{{180, 20}, {160, 15}, {140, 10}, {130, 5}, {120, 2}}
	cholLadder     = ladder{{280, 20}, {240, 15}, {220, 10}, {200, 5}, {180, 2}}

	// chest pain type: 0 typical angina, 1 atypical, 2 non-anginal, 3 asymptomatic
	chestPain = map[float64]float64{0: 15, 1: 10, 2: 5}
)

// ClinicalScore is the outcome of the clinical heart rule.
type ClinicalScore struct {
	Points float64
	Max    float64
}

// Percent normalizes the points to the applicable maximum.
func (c ClinicalScore) Percent() float64 {
	if c.Max == 0 {
		return 50
	}
	return c.Points / c.Max * 100
}

// ClinicalHeartScore scores cardiac risk factors from general health data:
// age, resting blood pressure, cholesterol, achieved vs expected maximum
// heart rate, fasting blood sugar, and chest pain type. Chest pain type only
// counts toward both points and maximum when the caller supplied it.
func ClinicalHeartScore(fs model.FeatureSet) ClinicalScore {
	var s ClinicalScore
	age := fs.Num("age", 30)

	s.Max += agePoints
	s.Points += ageLadder.points(age)

	s.Max += pressurePoints
	s.Points += pressureLadder.points(fs.Num("trestbps", 120))

	s.Max += cholPoints
	s.Points += cholLadder.points(fs.Num("chol", 200))

	s.Max += heartRatePoints
	s.Points += heartRateDeficit(fs.Num("thalach", 150), 220-age)

	s.Max += fbsPoints
	if fs.Num("fbs", 0) == 1 {
		s.Points += fbsPoints
	}

	if cp := fs.Num("cp", -1); fs.Supplied("cp") && cp >= 0 {
		s.Max += chestPainPoints
		s.Points += chestPain[cp]
	}
	return s
}

// heartRateDeficit scores a low achieved maximum heart rate relative to the
// age-expected maximum.
func heartRateDeficit(achieved, expected float64) float64 {
	switch {
	case achieved < expected*0.65:
		return 15
	case achieved < expected*0.75:
		return 10
	case achieved < expected*0.85:
		return 5
	case achieved < expected*0.90:
		return 2
	}
	return 0
}
