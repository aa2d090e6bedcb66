package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ReportRow is the flat, storage-ready projection of an Assessment. The same
// struct is COPY-loaded into health.assessments, written to Parquet and
// exported as JSON.
type ReportRow struct {
	AssessmentID uuid.UUID  `parquet:"-" json:"assessment_id"`
	BatchID      *uuid.UUID `parquet:"-" json:"batch_id,omitempty"`
	RecordID     string     `parquet:"record_id" json:"record_id"`
	RecordHash   string     `parquet:"record_hash" json:"record_hash"`

	HeartScore        float64 `parquet:"heart_score" json:"heart_score"`
	DiabetesScore     float64 `parquet:"diabetes_score" json:"diabetes_score"`
	HypertensionScore float64 `parquet:"hypertension_score" json:"hypertension_score"`
	ObesityScore      float64 `parquet:"obesity_score" json:"obesity_score"`

	CompositeRisk float64 `parquet:"composite_risk" json:"composite_risk"`
	HealthScore   float64 `parquet:"health_score" json:"health_score"`
	RiskLevel     string  `parquet:"risk_level" json:"risk_level"`
	HealthGrade   string  `parquet:"health_grade" json:"health_grade"`

	ReportJSON json.RawMessage `parquet:"-" json:"report"`
	CreatedAt  time.Time       `parquet:"created_at,timestamp" json:"created_at"`
}

// ToReportRow flattens an assessment. reportJSON is the serialized report.
func ToReportRow(a *Assessment, batchID *uuid.UUID, recordID string, reportJSON []byte) *ReportRow {
	r := a.Report
	return &ReportRow{
		AssessmentID:      a.ID,
		BatchID:           batchID,
		RecordID:          recordID,
		RecordHash:        a.RecordHash,
		HeartScore:        r.Risk(Heart).Score,
		DiabetesScore:     r.Risk(Diabetes).Score,
		HypertensionScore: r.Risk(Hypertension).Score,
		ObesityScore:      r.Risk(Obesity).Score,
		CompositeRisk:     r.CompositeRisk,
		HealthScore:       r.HealthScore,
		RiskLevel:         string(r.RiskLevel),
		HealthGrade:       r.HealthGrade,
		ReportJSON:        reportJSON,
		CreatedAt:         a.CreatedAt,
	}
}

// ReportColumns returns the ordered column names for COPY into health.assessments.
func ReportColumns() []string {
	return []string{
		"assessment_id",
		"batch_id",
		"record_id",
		"record_hash",
		"heart_score",
		"diabetes_score",
		"hypertension_score",
		"obesity_score",
		"composite_risk",
		"health_score",
		"risk_level",
		"health_grade",
		"report",
		"created_at",
	}
}

// CopyValues returns the row values in the same order as ReportColumns(),
// suitable for pgx CopyFromSource.
func (r *ReportRow) CopyValues() []any {
	return []any{
		r.AssessmentID,
		r.BatchID,
		r.RecordID,
		r.RecordHash,
		r.HeartScore,
		r.DiabetesScore,
		r.HypertensionScore,
		r.ObesityScore,
		r.CompositeRisk,
		r.HealthScore,
		r.RiskLevel,
		r.HealthGrade,
		string(r.ReportJSON),
		r.CreatedAt,
	}
}
