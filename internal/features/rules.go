// Package features maps loosely typed user records onto the per-condition
// classifier schemas. Mapping never fails: every field has a default.
package features

import (
	"github.com/gyeh/healthrisk/internal/model"
	"github.com/gyeh/healthrisk/internal/normalize"
)

// Rule declares how one schema field is populated from a UserRecord.
//
// For plain fields the first present source that coerces to Kind wins,
// otherwise Num or Str is used. Derive, when set, replaces that lookup
// entirely.
type Rule struct {
	Name    string
	Sources []string
	Kind    model.FeatureKind
	Num     float64
	Str     string
	Derive  func(rec model.UserRecord) (num float64, supplied bool)
}

func num(name string, def float64, sources ...string) Rule {
	return Rule{Name: name, Sources: sources, Kind: model.Numeric, Num: def}
}

func cat(name, def string, sources ...string) Rule {
	return Rule{Name: name, Sources: sources, Kind: model.Categorical, Str: def}
}

func derived(name string, fn func(model.UserRecord) (float64, bool)) Rule {
	return Rule{Name: name, Kind: model.Numeric, Derive: fn}
}

// Defaults shared by several schemas.
const (
	defaultAge         = 30
	defaultHeightCM    = 170
	defaultWeightKG    = 70
	defaultGlucose     = 100
	defaultCholesterol = 200
	defaultSystolic    = 120
	defaultGender      = "Male"

	// fasting glucose above this sets the heart model's fbs flag (mg/dL)
	fastingGlucoseCutoff = 120

	pedigreeWithHistory    = 0.5
	pedigreeWithoutHistory = 0.2
)

func lookupFloat(rec model.UserRecord, def float64, keys ...string) (float64, bool) {
	for _, k := range keys {
		v, ok := rec.Lookup(k)
		if !ok {
			continue
		}
		if f, ok := normalize.Float(v); ok {
			return f, true
		}
	}
	return def, false
}

// bmi prefers a supplied bmi, otherwise derives it from height and weight.
func bmi(rec model.UserRecord) (float64, bool) {
	if v, ok := lookupFloat(rec, 0, "bmi"); ok {
		return v, true
	}
	h, hok := lookupFloat(rec, defaultHeightCM, "height")
	w, wok := lookupFloat(rec, defaultWeightKG, "weight")
	return normalize.BMI(h, w), hok && wok
}

// pedigree substitutes a baseline diabetes pedigree value from the family
// history answer when no measured value is supplied.
func pedigree(rec model.UserRecord) (float64, bool) {
	if v, ok := lookupFloat(rec, 0, "diabetes_pedigree"); ok {
		return v, true
	}
	fh, ok := rec.Lookup("family_history_diabetes")
	if ok && normalize.IsYes(fh) {
		return pedigreeWithHistory, true
	}
	return pedigreeWithoutHistory, ok
}

func sex(rec model.UserRecord) (float64, bool) {
	g, ok := rec.Lookup("gender")
	if !ok {
		g = defaultGender
	}
	if normalize.IsMale(g) {
		return 1, ok
	}
	return 0, ok
}

func fastingBloodSugar(rec model.UserRecord) (float64, bool) {
	g, ok := lookupFloat(rec, defaultGlucose, "fasting_glucose")
	if g > fastingGlucoseCutoff {
		return 1, ok
	}
	return 0, ok
}

func exerciseAngina(rec model.UserRecord) (float64, bool) {
	v, ok := rec.Lookup("exercise_induced_angina")
	if ok && normalize.IsYes(v) {
		return 1, true
	}
	return 0, ok
}

func heightMeters(rec model.UserRecord) (float64, bool) {
	h, ok := lookupFloat(rec, defaultHeightCM, "height")
	return h / 100, ok
}

// DerivedInputs lists the record keys read only by Derive functions.
var DerivedInputs = []string{
	"bmi", "height", "weight", "gender", "fasting_glucose",
	"exercise_induced_angina", "family_history_diabetes", "diabetes_pedigree",
}

// DiabetesRules is the diabetes classifier schema.
var DiabetesRules = []Rule{
	num("Pregnancies", 0, "pregnancies"),
	num("Glucose", defaultGlucose, "glucose", "fasting_glucose"),
	num("BloodPressure", 80, "blood_pressure", "systolic_bp"),
	num("SkinThickness", 20, "skin_thickness"),
	num("Insulin", 80, "insulin"),
	derived("BMI", bmi),
	derived("DiabetesPedigreeFunction", pedigree),
	num("Age", defaultAge, "age"),
}

// HeartRules is the heart disease classifier schema.
var HeartRules = []Rule{
	num("age", defaultAge, "age"),
	derived("sex", sex),
	num("cp", 0, "chest_pain_type"),
	num("trestbps", defaultSystolic, "systolic_bp", "resting_bp"),
	num("chol", defaultCholesterol, "cholesterol"),
	derived("fbs", fastingBloodSugar),
	num("restecg", 0, "resting_ecg"),
	num("thalach", 150, "max_heart_rate"),
	derived("exang", exerciseAngina),
	num("oldpeak", 0, "st_depression"),
	num("slope", 1, "slope_st_segment"),
	num("ca", 0, "num_major_vessels"),
	num("thal", 2, "thalassemia"),
}

// HypertensionRules is the hypertension classifier schema.
var HypertensionRules = []Rule{
	num("Age", defaultAge, "age"),
	derived("BMI", bmi),
	num("Cholesterol", defaultCholesterol, "cholesterol"),
	num("Systolic_BP", defaultSystolic, "systolic_bp"),
	num("Diastolic_BP", 80, "diastolic_bp"),
	cat("Smoking_Status", "Never", "smoking_status"),
	cat("Alcohol_Intake", "None", "alcohol_intake"),
	cat("Physical_Activity_Level", "Moderate", "physical_activity"),
	cat("Family_History", "No", "family_history_hypertension"),
	cat("Diabetes", "No", "has_diabetes"),
	cat("Stress_Level", "Moderate", "stress_level"),
	cat("Salt_Intake", "Moderate", "salt_intake"),
	num("Sleep_Duration", 7, "sleep_hours"),
	num("Heart_Rate", 70, "resting_heart_rate"),
	num("LDL", 100, "ldl"),
	num("HDL", 50, "hdl"),
	num("Triglycerides", 150, "triglycerides"),
	num("Glucose", defaultGlucose, "glucose", "fasting_glucose"),
	cat("Gender", defaultGender, "gender"),
}

// ObesityRules is the obesity classifier schema. Height is in metres.
var ObesityRules = []Rule{
	cat("Gender", defaultGender, "gender"),
	num("Age", defaultAge, "age"),
	derived("Height", heightMeters),
	num("Weight", defaultWeightKG, "weight"),
	cat("family_history_with_overweight", "no", "family_history_overweight"),
	cat("FAVC", "no", "frequent_high_caloric_food"),
	num("FCVC", 2, "vegetable_consumption_frequency"),
	num("NCP", 3, "num_main_meals"),
	cat("CAEC", "Sometimes", "food_between_meals"),
	cat("SMOKE", "no", "smokes"),
	num("CH2O", 2, "daily_water_consumption"),
	cat("SCC", "no", "calorie_monitoring"),
	num("FAF", 1, "physical_activity_frequency"),
	num("TUE", 1, "tech_usage_time"),
	cat("CALC", "no", "alcohol_consumption"),
	cat("MTRANS", "Public_Transportation", "transportation_mode"),
}

// ObesityAuxRules feed the obesity BMI bucket. A supplied bmi wins over
// height and weight, as it does for the diabetes and hypertension schemas.
var ObesityAuxRules = []Rule{
	derived("bmi", bmi),
}
