package features

// InputField describes one user-facing input.
type InputField struct {
	Key         string `json:"key" yaml:"key"`
	Description string `json:"description" yaml:"description"`
}

// InputCategory groups related inputs for collection forms and prompts.
type InputCategory struct {
	Name   string       `json:"name" yaml:"name"`
	Fields []InputField `json:"fields" yaml:"fields"`
}

// RequiredInputs lists the user inputs the mapper understands, grouped by
// category in collection order. Every input is optional.
func RequiredInputs() []InputCategory {
	return []InputCategory{
		{Name: "basic_info", Fields: []InputField{
			{"age", "Age in years"},
			{"gender", "Gender (Male/Female)"},
			{"height", "Height in cm"},
			{"weight", "Weight in kg"},
		}},
		{Name: "vital_signs", Fields: []InputField{
			{"systolic_bp", "Systolic Blood Pressure (mm Hg)"},
			{"diastolic_bp", "Diastolic Blood Pressure (mm Hg)"},
			{"resting_heart_rate", "Resting Heart Rate (bpm)"},
			{"max_heart_rate", "Maximum Heart Rate during exercise (bpm)"},
		}},
		{Name: "blood_tests", Fields: []InputField{
			{"glucose", "Fasting Blood Glucose (mg/dL)"},
			{"cholesterol", "Total Cholesterol (mg/dL)"},
			{"ldl", "LDL Cholesterol (mg/dL)"},
			{"hdl", "HDL Cholesterol (mg/dL)"},
			{"triglycerides", "Triglycerides (mg/dL)"},
			{"insulin", "Insulin level (mu U/ml)"},
		}},
		{Name: "cardiac", Fields: []InputField{
			{"chest_pain_type", "Chest pain type (0 typical angina, 1 atypical, 2 non-anginal, 3 none)"},
			{"exercise_induced_angina", "Chest pain during exercise (yes/no)"},
		}},
		{Name: "lifestyle", Fields: []InputField{
			{"smoking_status", "Smoking Status (Never/Former/Current)"},
			{"alcohol_intake", "Alcohol Intake (None/Moderate/Heavy)"},
			{"physical_activity", "Physical Activity Level (Low/Moderate/High)"},
			{"sleep_hours", "Average sleep duration (hours)"},
			{"stress_level", "Stress Level (Low/Moderate/High)"},
			{"salt_intake", "Salt Intake (Low/Moderate/High)"},
		}},
		{Name: "medical_history", Fields: []InputField{
			{"family_history_diabetes", "Family history of diabetes (yes/no)"},
			{"family_history_hypertension", "Family history of hypertension (yes/no)"},
			{"family_history_overweight", "Family history of overweight (yes/no)"},
			{"pregnancies", "Number of pregnancies (if female)"},
		}},
		{Name: "diet_habits", Fields: []InputField{
			{"vegetable_consumption_frequency", "Vegetable consumption frequency (1-3)"},
			{"num_main_meals", "Number of main meals per day (1-4)"},
			{"daily_water_consumption", "Daily water consumption (liters)"},
			{"frequent_high_caloric_food", "Frequent consumption of high caloric food (yes/no)"},
		}},
	}
}
