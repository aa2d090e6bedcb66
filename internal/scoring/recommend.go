package scoring

import (
	"fmt"

	"github.com/gyeh/healthrisk/internal/model"
)

type advice struct {
	status  string
	bullets []string
}

// tier collapses very_high into critical; both get urgent advice.
func tier(l model.RiskLevel) model.RiskLevel {
	if l == model.VeryHigh {
		return model.Critical
	}
	return l
}

var adviceTable = map[model.Condition]map[model.RiskLevel]advice{
	model.Heart: {
		model.Critical: {"CRITICAL. Seek immediate medical attention.", []string{
			"Schedule urgent cardiology appointment",
			"Monitor blood pressure and cholesterol daily",
			"Avoid strenuous activities until cleared by doctor",
		}},
		model.High: {"High. Consult a cardiologist soon.", []string{
			"Monitor blood pressure and cholesterol regularly",
			"Engage in 30+ minutes of cardio exercise daily",
			"Reduce saturated fat and sodium intake",
		}},
		model.Moderate: {"Moderate. Take preventive measures.", []string{
			"Regular cardiovascular exercise (walking, cycling)",
			"Maintain healthy weight and cholesterol levels",
		}},
		model.Low: {"Low. Keep up the good work!", []string{
			"Continue healthy lifestyle habits",
		}},
	},
	model.Diabetes: {
		model.Critical: {"CRITICAL. Get tested immediately.", []string{
			"Schedule urgent blood glucose test (HbA1c)",
			"Strictly limit sugar and refined carbs",
			"Consider consulting an endocrinologist",
		}},
		model.High: {"High. Get blood sugar tested.", []string{
			"Monitor glucose levels regularly",
			"Reduce sugar and refined carbohydrate intake",
			"Increase fiber-rich foods and whole grains",
		}},
		model.Moderate: {"Moderate. Focus on prevention.", []string{
			"Maintain healthy weight through diet and exercise",
			"Limit sugary beverages and processed foods",
		}},
		model.Low: {"Low. Excellent!", []string{
			"Maintain balanced diet with controlled portions",
		}},
	},
	model.Hypertension: {
		model.Critical: {"CRITICAL. Check BP now!", []string{
			"Measure blood pressure immediately",
			"Strictly limit sodium (<1500mg/day)",
			"Avoid stress and seek medical help",
		}},
		model.High: {"High. Monitor BP regularly.", []string{
			"Reduce sodium intake (< 2000mg/day)",
			"Practice stress management techniques",
			"Avoid excessive alcohol and caffeine",
		}},
		model.Moderate: {"Moderate. Take preventive steps.", []string{
			"Maintain regular sleep schedule (7-8 hours)",
			"Engage in regular physical activity",
		}},
		model.Low: {"Low. Great!", []string{
			"Continue healthy habits and regular exercise",
		}},
	},
	model.Obesity: {
		model.Critical: {"CRITICAL. Urgent action needed.", []string{
			"Consult healthcare provider for weight management plan",
			"Consider supervised weight loss program",
			"Address underlying health conditions",
		}},
		model.High: {"High. Action needed.", []string{
			"Consult a nutritionist for personalized diet plan",
			"Aim for gradual weight loss (1-2 lbs/week)",
			"Combine cardio and strength training exercises",
		}},
		model.Moderate: {"Moderate. Room for improvement.", []string{
			"Maintain calorie balance and portion control",
			"Increase daily physical activity",
		}},
		model.Low: {"Low. Healthy weight!", []string{
			"Maintain current healthy eating patterns",
		}},
	},
}

// SummaryHeadline heads the block emitted when every condition is low risk.
const SummaryHeadline = "EXCELLENT OVERALL HEALTH STATUS!"

var summaryBullets = []string{
	"Continue maintaining healthy lifestyle habits",
	"Regular health checkups for prevention",
}

func recommendation(c model.Condition, score float64) model.Recommendation {
	level := RiskLevel(score)
	a := adviceTable[c][tier(level)]
	return model.Recommendation{
		Condition: c,
		Level:     level,
		Headline:  fmt.Sprintf("%s: %.1f%% risk - %s", c.Info().Headline, score, a.status),
		Bullets:   append([]string(nil), a.bullets...),
	}
}
