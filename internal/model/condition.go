package model

// Condition identifies one of the tracked health risks.
type Condition string

const (
	Heart        Condition = "heart"
	Diabetes     Condition = "diabetes"
	Hypertension Condition = "hypertension"
	Obesity      Condition = "obesity"
)

// ConditionInfo describes a condition's display label and storage names.
type ConditionInfo struct {
	Condition Condition
	Label     string // e.g. "Heart Disease"
	Headline  string // recommendation headline prefix
	Column    string // assessments table / parquet column for the score
	ModelFile string // default coefficient file under the model directory
}

// AllConditions lists the conditions in canonical severity order:
// heart, diabetes, hypertension, obesity.
var AllConditions = []ConditionInfo{
	{Condition: Heart, Label: "Heart Disease", Headline: "HEART HEALTH", Column: "heart_score", ModelFile: "heart_model.yaml"},
	{Condition: Diabetes, Label: "Diabetes", Headline: "DIABETES", Column: "diabetes_score", ModelFile: "diabetes_model.yaml"},
	{Condition: Hypertension, Label: "Hypertension", Headline: "BLOOD PRESSURE", Column: "hypertension_score", ModelFile: "hypertension_model.yaml"},
	{Condition: Obesity, Label: "Obesity", Headline: "WEIGHT MANAGEMENT", Column: "obesity_score", ModelFile: "obesity_model.yaml"},
}

// Conditions returns just the condition identifiers in canonical order.
func Conditions() []Condition {
	out := make([]Condition, len(AllConditions))
	for i, ci := range AllConditions {
		out[i] = ci.Condition
	}
	return out
}

// ConditionByName returns the ConditionInfo for the given name, or ok=false.
func ConditionByName(name string) (ConditionInfo, bool) {
	for _, ci := range AllConditions {
		if string(ci.Condition) == name {
			return ci, true
		}
	}
	return ConditionInfo{}, false
}

// Info returns the descriptor for c. Unknown conditions get a zero-value
// descriptor carrying only the identifier.
func (c Condition) Info() ConditionInfo {
	if ci, ok := ConditionByName(string(c)); ok {
		return ci
	}
	return ConditionInfo{Condition: c, Label: string(c), Headline: string(c)}
}
