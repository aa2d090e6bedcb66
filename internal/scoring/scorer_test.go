package scoring

import (
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyeh/healthrisk/internal/model"
)

func scores(heart, diabetes, hypertension, obesity float64) map[model.Condition]float64 {
	return map[model.Condition]float64{
		model.Heart:        heart,
		model.Diabetes:     diabetes,
		model.Hypertension: hypertension,
		model.Obesity:      obesity,
	}
}

func newScorer(t *testing.T) *Scorer {
	t.Helper()
	s, err := NewScorer(DefaultWeights())
	require.NoError(t, err)
	return s
}

func TestReport_MixedRisks(t *testing.T) {
	r, err := newScorer(t).Report(scores(65.5, 42.0, 58.3, 35.0))
	require.NoError(t, err)

	assert.Equal(t, 50.2, r.CompositeRisk)
	assert.Equal(t, 49.8, r.HealthScore)
	// 50.2 sits in [50,70) and 49.8 below the D breakpoint of 50
	assert.Equal(t, model.High, r.RiskLevel)
	assert.Equal(t, "F", r.HealthGrade)

	assert.Equal(t, model.High, r.IndividualRisks[model.Heart].Level)
	assert.Equal(t, model.Moderate, r.IndividualRisks[model.Diabetes].Level)
	assert.Equal(t, model.High, r.IndividualRisks[model.Hypertension].Level)
	assert.Equal(t, model.Moderate, r.IndividualRisks[model.Obesity].Level)
	assert.Equal(t, 0.25, r.WeightsUsed[model.Heart])
}

func TestReport_AllLow(t *testing.T) {
	s := newScorer(t)
	r, err := s.Report(scores(10, 10, 10, 10))
	require.NoError(t, err)

	assert.Equal(t, 10.0, r.CompositeRisk)
	assert.Equal(t, 90.0, r.HealthScore)
	assert.Equal(t, "A+", r.HealthGrade)
	assert.Equal(t, model.Low, r.RiskLevel)
	assert.Contains(t, r.Recommendations, SummaryHeadline)

	recs, err := s.Recommendations(scores(10, 10, 10, 10))
	require.NoError(t, err)
	require.Len(t, recs, 5)
	assert.Empty(t, recs[4].Condition)
	assert.Equal(t, SummaryHeadline, recs[4].Headline)
}

func TestRecommendations_CriticalHeart(t *testing.T) {
	recs, err := newScorer(t).Recommendations(scores(90, 10, 10, 10))
	require.NoError(t, err)

	heart := recs[0]
	assert.Equal(t, model.Heart, heart.Condition)
	assert.Equal(t, model.Critical, heart.Level)
	assert.True(t, strings.HasPrefix(heart.Headline, "HEART HEALTH: 90.0% risk - CRITICAL"), heart.Headline)
	assert.Len(t, heart.Bullets, 3)

	// one non-low condition suppresses the summary
	assert.Len(t, recs, 4)
}

func TestRecommendations_VeryHighUsesCriticalAdvice(t *testing.T) {
	recs, err := newScorer(t).Recommendations(scores(10, 75, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, model.VeryHigh, recs[1].Level)
	assert.Contains(t, recs[1].Headline, "CRITICAL")
	assert.Len(t, recs[1].Bullets, 3)
}

func TestRecommendations_BulletCountsByLevel(t *testing.T) {
	want := map[float64]int{10: 1, 40: 2, 60: 3, 75: 3, 90: 3}
	s := newScorer(t)
	for score, n := range want {
		recs, err := s.Recommendations(scores(score, score, score, score))
		require.NoError(t, err)
		for _, r := range recs[:4] {
			assert.Len(t, r.Bullets, n, "%s at %v", r.Condition, score)
		}
	}
}

func TestRecommendations_Order(t *testing.T) {
	s := newScorer(t)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		recs, err := s.Recommendations(scores(rng.Float64()*100, rng.Float64()*100, rng.Float64()*100, rng.Float64()*100))
		require.NoError(t, err)
		want := []model.Condition{model.Heart, model.Diabetes, model.Hypertension, model.Obesity}
		for j, c := range want {
			assert.Equal(t, c, recs[j].Condition)
		}
		if len(recs) == 5 {
			assert.Equal(t, SummaryHeadline, recs[4].Headline)
		}
	}

	r, err := s.Report(scores(80, 60, 40, 10))
	require.NoError(t, err)
	var heads []string
	for _, l := range r.Recommendations {
		if !strings.HasPrefix(l, "   - ") {
			heads = append(heads, strings.SplitN(l, ":", 2)[0])
		}
	}
	assert.Equal(t, []string{"HEART HEALTH", "DIABETES", "BLOOD PRESSURE", "WEIGHT MANAGEMENT"}, heads)
}

func TestReport_HealthPlusCompositeIsHundred(t *testing.T) {
	s := newScorer(t)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		in := scores(rng.Float64()*100, rng.Float64()*100, rng.Float64()*100, rng.Float64()*100)
		composite, err := s.CompositeRisk(in)
		require.NoError(t, err)
		health, err := s.HealthScore(in)
		require.NoError(t, err)

		assert.InDelta(t, 100-composite, health, 1e-9)
		assert.GreaterOrEqual(t, composite, 0.0)
		assert.LessOrEqual(t, composite, 100.0)
		assert.GreaterOrEqual(t, health, 0.0)
		assert.LessOrEqual(t, health, 100.0)
	}
}

func TestReport_Idempotent(t *testing.T) {
	s := newScorer(t)
	in := scores(65.5, 42.0, 58.3, 35.0)
	a, err := s.Report(in)
	require.NoError(t, err)
	b, err := s.Report(in)
	require.NoError(t, err)

	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	assert.Equal(t, string(ja), string(jb))
}

func TestReport_JSONShape(t *testing.T) {
	r, err := newScorer(t).Report(scores(65.5, 42.0, 58.3, 35.0))
	require.NoError(t, err)
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	for _, k := range []string{"individual_risks", "composite_risk", "health_score", "risk_level", "health_grade", "recommendations", "weights_used"} {
		assert.Contains(t, m, k)
	}
	heart := m["individual_risks"].(map[string]any)["heart"].(map[string]any)
	assert.Equal(t, 65.5, heart["score"])
	assert.Equal(t, "high", heart["level"])
}

func TestIncompleteAssessment(t *testing.T) {
	s := newScorer(t)
	in := scores(10, 10, 10, 10)
	delete(in, model.Hypertension)

	_, err := s.CompositeRisk(in)
	assert.True(t, errors.Is(err, ErrIncompleteAssessment))
	assert.Contains(t, err.Error(), "hypertension")

	_, err = s.HealthScore(in)
	assert.ErrorIs(t, err, ErrIncompleteAssessment)
	_, err = s.Recommendations(in)
	assert.ErrorIs(t, err, ErrIncompleteAssessment)
	_, err = s.Report(in)
	assert.ErrorIs(t, err, ErrIncompleteAssessment)

	// a zero score is present, not missing
	in[model.Hypertension] = 0
	_, err = s.Report(in)
	assert.NoError(t, err)
}

func TestRiskLevel_Buckets(t *testing.T) {
	tests := []struct {
		score float64
		want  model.RiskLevel
	}{
		{-5, model.Low}, {0, model.Low}, {29.99, model.Low},
		{30, model.Moderate}, {49.99, model.Moderate},
		{50, model.High}, {69.99, model.High},
		{70, model.VeryHigh}, {84.99, model.VeryHigh},
		{85, model.Critical}, {100, model.Critical}, {250, model.Critical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RiskLevel(tt.score), "score %v", tt.score)
	}
}

func TestRiskLevel_Monotonic(t *testing.T) {
	rank := map[model.RiskLevel]int{model.Low: 0, model.Moderate: 1, model.High: 2, model.VeryHigh: 3, model.Critical: 4}
	prev := rank[RiskLevel(0)]
	changes := 0
	for x := 0.0; x <= 100; x += 0.01 {
		cur := rank[RiskLevel(x)]
		require.GreaterOrEqual(t, cur, prev, "level decreased at %v", x)
		if cur != prev {
			changes++
		}
		prev = cur
	}
	assert.Equal(t, 4, changes, "expected exactly 5 contiguous buckets")
}

func TestHealthGrade_Buckets(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "A+"}, {90, "A+"}, {89.99, "A"}, {80, "A"}, {79.99, "B"}, {70, "B"},
		{69.99, "C"}, {60, "C"}, {59.99, "D"}, {50, "D"}, {49.99, "F"}, {0, "F"}, {-1, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HealthGrade(tt.score), "score %v", tt.score)
	}

	seen := map[string]bool{}
	for x := 0.0; x <= 100; x += 0.5 {
		seen[HealthGrade(x)] = true
	}
	assert.Len(t, seen, 6)
}

func TestWeights(t *testing.T) {
	assert.True(t, DefaultWeights().Sum().Equal(decimal.NewFromInt(1)))
	require.NoError(t, DefaultWeights().Validate())

	w, err := ParseWeights(map[string]string{"heart": "0.4", "diabetes": "0.3", "hypertension": "0.2", "obesity": "0.1"})
	require.NoError(t, err)
	assert.Equal(t, "0.4", w.Of(model.Heart).String())

	s, err := NewScorer(w)
	require.NoError(t, err)
	composite, err := s.CompositeRisk(scores(100, 0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 40.0, composite)
}

func TestParseWeights_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"sum below one":     {"heart": "0.25", "diabetes": "0.25", "hypertension": "0.25", "obesity": "0.2"},
		"sum above one":     {"heart": "0.3", "diabetes": "0.25", "hypertension": "0.25", "obesity": "0.25"},
		"missing condition": {"heart": "0.5", "diabetes": "0.5"},
		"negative":          {"heart": "-0.25", "diabetes": "0.75", "hypertension": "0.25", "obesity": "0.25"},
		"unknown condition": {"heart": "0.25", "diabetes": "0.25", "hypertension": "0.25", "kidney": "0.25"},
		"not a number":      {"heart": "quarter", "diabetes": "0.25", "hypertension": "0.25", "obesity": "0.25"},
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseWeights(raw)
			assert.Error(t, err)
		})
	}

	_, err := NewScorer(Weights{})
	assert.Error(t, err)
}

func TestParseWeights_ThirdsNeedExactDecimals(t *testing.T) {
	_, err := ParseWeights(map[string]string{"heart": "0.1", "diabetes": "0.2", "hypertension": "0.3", "obesity": "0.4"})
	assert.NoError(t, err)
	_, err = ParseWeights(map[string]string{"heart": "0.333", "diabetes": "0.333", "hypertension": "0.333", "obesity": "0.001"})
	assert.NoError(t, err)
	_, err = ParseWeights(map[string]string{"heart": "0.333", "diabetes": "0.333", "hypertension": "0.333", "obesity": "0"})
	assert.Error(t, err)
}
