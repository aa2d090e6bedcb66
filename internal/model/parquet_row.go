package model

import "sort"

// UserRecordRow mirrors the Parquet schema for one batch user record.
// Every column is optional; absent values are left out of the UserRecord so
// the feature mapper applies its defaults.
type UserRecordRow struct {
	RecordID string `parquet:"record_id"`

	// Basic info
	Age    *float64 `parquet:"age,optional"`
	Gender *string  `parquet:"gender,optional"`
	Height *float64 `parquet:"height,optional"` // cm
	Weight *float64 `parquet:"weight,optional"` // kg
	BMI    *float64 `parquet:"bmi,optional"`

	// Vital signs
	SystolicBP       *float64 `parquet:"systolic_bp,optional"`
	DiastolicBP      *float64 `parquet:"diastolic_bp,optional"`
	BloodPressure    *float64 `parquet:"blood_pressure,optional"` // diastolic, diabetes schema
	RestingBP        *float64 `parquet:"resting_bp,optional"`
	RestingHeartRate *float64 `parquet:"resting_heart_rate,optional"`
	MaxHeartRate     *float64 `parquet:"max_heart_rate,optional"`

	// Blood tests
	Glucose        *float64 `parquet:"glucose,optional"`
	FastingGlucose *float64 `parquet:"fasting_glucose,optional"`
	Cholesterol    *float64 `parquet:"cholesterol,optional"`
	LDL            *float64 `parquet:"ldl,optional"`
	HDL            *float64 `parquet:"hdl,optional"`
	Triglycerides  *float64 `parquet:"triglycerides,optional"`
	Insulin        *float64 `parquet:"insulin,optional"`
	SkinThickness  *float64 `parquet:"skin_thickness,optional"`

	// Cardiac
	ChestPainType         *float64 `parquet:"chest_pain_type,optional"`
	ExerciseInducedAngina *string  `parquet:"exercise_induced_angina,optional"`
	RestingECG            *float64 `parquet:"resting_ecg,optional"`
	STDepression          *float64 `parquet:"st_depression,optional"`
	SlopeSTSegment        *float64 `parquet:"slope_st_segment,optional"`
	NumMajorVessels       *float64 `parquet:"num_major_vessels,optional"`
	Thalassemia           *float64 `parquet:"thalassemia,optional"`

	// Lifestyle
	SmokingStatus             *string  `parquet:"smoking_status,optional"`
	AlcoholIntake             *string  `parquet:"alcohol_intake,optional"`
	PhysicalActivity          *string  `parquet:"physical_activity,optional"`
	SleepHours                *float64 `parquet:"sleep_hours,optional"`
	StressLevel               *string  `parquet:"stress_level,optional"`
	SaltIntake                *string  `parquet:"salt_intake,optional"`
	Smokes                    *string  `parquet:"smokes,optional"`
	AlcoholConsumption        *string  `parquet:"alcohol_consumption,optional"`
	PhysicalActivityFrequency *float64 `parquet:"physical_activity_frequency,optional"`
	TechUsageTime             *float64 `parquet:"tech_usage_time,optional"`
	TransportationMode        *string  `parquet:"transportation_mode,optional"`

	// Medical history
	FamilyHistoryDiabetes     *string  `parquet:"family_history_diabetes,optional"`
	FamilyHistoryHypertension *string  `parquet:"family_history_hypertension,optional"`
	FamilyHistoryOverweight   *string  `parquet:"family_history_overweight,optional"`
	Pregnancies               *float64 `parquet:"pregnancies,optional"`
	DiabetesPedigree          *float64 `parquet:"diabetes_pedigree,optional"`
	HasDiabetes               *string  `parquet:"has_diabetes,optional"`

	// Diet habits
	VegetableConsumptionFrequency *float64 `parquet:"vegetable_consumption_frequency,optional"`
	NumMainMeals                  *float64 `parquet:"num_main_meals,optional"`
	DailyWaterConsumption         *float64 `parquet:"daily_water_consumption,optional"`
	FrequentHighCaloricFood       *string  `parquet:"frequent_high_caloric_food,optional"`
	FoodBetweenMeals              *string  `parquet:"food_between_meals,optional"`
	CalorieMonitoring             *string  `parquet:"calorie_monitoring,optional"`
}

// Record converts the row into a UserRecord holding only the present columns.
func (r *UserRecordRow) Record() UserRecord {
	rec := UserRecord{}
	for k, v := range r.numeric() {
		if v != nil {
			rec[k] = *v
		}
	}
	for k, v := range r.categorical() {
		if v != nil {
			rec[k] = *v
		}
	}
	return rec
}

// UserRecordColumns lists the input column names a batch file may carry,
// sorted.
func UserRecordColumns() []string {
	var r UserRecordRow
	cols := make([]string, 0, 48)
	for k := range r.numeric() {
		cols = append(cols, k)
	}
	for k := range r.categorical() {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

func (r *UserRecordRow) numeric() map[string]*float64 {
	return map[string]*float64{
		"age":                             r.Age,
		"height":                          r.Height,
		"weight":                          r.Weight,
		"bmi":                             r.BMI,
		"systolic_bp":                     r.SystolicBP,
		"diastolic_bp":                    r.DiastolicBP,
		"resting_heart_rate":              r.RestingHeartRate,
		"max_heart_rate":                  r.MaxHeartRate,
		"glucose":                         r.Glucose,
		"fasting_glucose":                 r.FastingGlucose,
		"cholesterol":                     r.Cholesterol,
		"ldl":                             r.LDL,
		"hdl":                             r.HDL,
		"triglycerides":                   r.Triglycerides,
		"insulin":                         r.Insulin,
		"chest_pain_type":                 r.ChestPainType,
		"sleep_hours":                     r.SleepHours,
		"pregnancies":                     r.Pregnancies,
		"vegetable_consumption_frequency": r.VegetableConsumptionFrequency,
		"num_main_meals":                  r.NumMainMeals,
		"daily_water_consumption":         r.DailyWaterConsumption,
		"blood_pressure":                  r.BloodPressure,
		"resting_bp":                      r.RestingBP,
		"skin_thickness":                  r.SkinThickness,
		"resting_ecg":                     r.RestingECG,
		"st_depression":                   r.STDepression,
		"slope_st_segment":                r.SlopeSTSegment,
		"num_major_vessels":               r.NumMajorVessels,
		"thalassemia":                     r.Thalassemia,
		"diabetes_pedigree":               r.DiabetesPedigree,
		"physical_activity_frequency":     r.PhysicalActivityFrequency,
		"tech_usage_time":                 r.TechUsageTime,
	}
}

func (r *UserRecordRow) categorical() map[string]*string {
	return map[string]*string{
		"gender":                      r.Gender,
		"exercise_induced_angina":     r.ExerciseInducedAngina,
		"smoking_status":              r.SmokingStatus,
		"alcohol_intake":              r.AlcoholIntake,
		"physical_activity":           r.PhysicalActivity,
		"stress_level":                r.StressLevel,
		"salt_intake":                 r.SaltIntake,
		"family_history_diabetes":     r.FamilyHistoryDiabetes,
		"family_history_hypertension": r.FamilyHistoryHypertension,
		"family_history_overweight":   r.FamilyHistoryOverweight,
		"frequent_high_caloric_food":  r.FrequentHighCaloricFood,
		"has_diabetes":                r.HasDiabetes,
		"smokes":                      r.Smokes,
		"alcohol_consumption":         r.AlcoholConsumption,
		"transportation_mode":         r.TransportationMode,
		"food_between_meals":          r.FoodBetweenMeals,
		"calorie_monitoring":          r.CalorieMonitoring,
	}
}
