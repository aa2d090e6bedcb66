package normalize

import "math"

// BMI computes body-mass index from height in centimetres and weight in
// kilograms, rounded to 2 decimal places. Non-positive heights yield 0.
func BMI(heightCM, weightKG float64) float64 {
	if heightCM <= 0 {
		return 0
	}
	m := heightCM / 100
	return Round2(weightKG / (m * m))
}

// Round2 rounds half away from zero to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
