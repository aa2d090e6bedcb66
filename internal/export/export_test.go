package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gyeh/healthrisk/internal/model"
	"github.com/gyeh/healthrisk/internal/scoring"
)

func sampleReport(t *testing.T) *model.HealthReport {
	t.Helper()
	s, err := scoring.NewScorer(scoring.DefaultWeights())
	require.NoError(t, err)
	r, err := s.Report(map[model.Condition]float64{
		model.Heart:        65.5,
		model.Diabetes:     42.0,
		model.Hypertension: 58.3,
		model.Obesity:      35.0,
	})
	require.NoError(t, err)
	return r
}

func sampleRows(t *testing.T) []*model.ReportRow {
	t.Helper()
	batch := uuid.New()
	created := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	var rows []*model.ReportRow
	for i, id := range []string{"alice", "bob"} {
		a := &model.Assessment{
			ID:         uuid.New(),
			CreatedAt:  created.Add(time.Duration(i) * time.Minute),
			RecordHash: strings.Repeat("ab", 32),
			Report:     sampleReport(t),
		}
		rows = append(rows, model.ToReportRow(a, &batch, id, []byte(`{}`)))
	}
	return rows
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleReport(t)))
	out := buf.String()

	assert.Contains(t, out, "COMPREHENSIVE HEALTH ASSESSMENT REPORT")
	assert.Contains(t, out, "OVERALL HEALTH SCORE: 49.8/100 (Grade: F)")
	assert.Contains(t, out, "COMPOSITE RISK LEVEL: 50.2% (HIGH)")
	assert.Contains(t, out, "Heart Disease Risk:")
	assert.Contains(t, out, "  65.5%  [HIGH]")
	assert.Contains(t, out, "Diabetes:       25%")
	assert.Contains(t, out, "  HEART HEALTH: 65.5% risk - High")
	assert.Contains(t, out, "     - Reduce saturated fat and sodium intake")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), strings.Repeat("=", 80)))
	assert.Contains(t, out, "DISCLAIMER")

	heart := strings.Index(out, "HEART HEALTH:")
	obesity := strings.Index(out, "WEIGHT MANAGEMENT:")
	assert.Less(t, heart, obesity)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleReport(t)))

	var got model.HealthReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 50.2, got.CompositeRisk)
	assert.Equal(t, model.High, got.RiskLevel)
	assert.Equal(t, 42.0, got.IndividualRisks[model.Diabetes].Score)
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))
}

func TestWriteJSON_Rows(t *testing.T) {
	rows := sampleRows(t)
	rows[0].ReportJSON = []byte(`{"composite_risk":50.2}`)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, rows))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "alice", got[0]["record_id"])
	assert.Equal(t, "high", got[0]["risk_level"])
	assert.Equal(t, rows[0].AssessmentID.String(), got[0]["assessment_id"])
	assert.Equal(t, map[string]any{"composite_risk": 50.2}, got[0]["report"])
	assert.NotContains(t, got[0], "ReportJSON")
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleRows(t)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, XLSXHeader, rows[0])
	assert.Equal(t, "alice", rows[1][0])
	assert.Equal(t, "65.5", rows[1][1])
	assert.Equal(t, "high", rows[1][7])
	assert.Equal(t, "F", rows[1][8])
	assert.Equal(t, "2026-03-01 12:31:00", rows[2][10])
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteParquet(t *testing.T) {
	in := sampleRows(t)
	var buf bytes.Buffer
	require.NoError(t, WriteParquet(&buf, in))

	got, err := parquet.Read[model.ReportRow](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "bob", got[1].RecordID)
	assert.Equal(t, 58.3, got[1].HypertensionScore)
	assert.Equal(t, 49.8, got[0].HealthScore)
	assert.Equal(t, "high", got[0].RiskLevel)
	assert.True(t, in[0].CreatedAt.Equal(got[0].CreatedAt), "created_at %v != %v", got[0].CreatedAt, in[0].CreatedAt)
}
