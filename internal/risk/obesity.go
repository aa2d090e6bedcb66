package risk

import "github.com/gyeh/healthrisk/internal/model"

// BMIRisk maps body-mass index to risk using WHO-style buckets.
func BMIRisk(bmi float64) float64 {
	switch {
	case bmi < 18.5: // underweight
		return 25
	case bmi < 25:
		return 5
	case bmi < 27: // overweight I
		return 35
	case bmi < 30: // overweight II
		return 50
	case bmi < 35: // obesity I
		return 70
	case bmi < 40: // obesity II
		return 85
	}
	return 95
}

var classRisk = map[int]float64{
	0: 25, // insufficient weight
	1: 5,  // normal weight
	2: 35, // overweight I
	3: 50, // overweight II
	4: 70, // obesity I
	5: 85, // obesity II
	6: 95, // obesity III
}

// ObesityClassRisk maps the obesity classifier's class label to risk.
// Unknown labels score 50.
func ObesityClassRisk(class int) float64 {
	if r, ok := classRisk[class]; ok {
		return r
	}
	return 50
}

// FeatureBMI returns the mapper's bmi auxiliary value when present, otherwise
// computes BMI from the obesity schema's Height (m) and Weight (kg).
func FeatureBMI(fs model.FeatureSet) float64 {
	if v, ok := fs.AuxNum("bmi"); ok {
		return v
	}
	h := fs.Num("Height", 1.7)
	if h <= 0 {
		h = 1.7
	}
	return fs.Num("Weight", 70) / (h * h)
}
