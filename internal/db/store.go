package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/healthrisk/internal/model"
	embedsql "github.com/gyeh/healthrisk/internal/sql"
)

// ErrNotFound is returned when an assessment id has no stored row.
var ErrNotFound = errors.New("assessment not found")

// Store persists assessments in health.assessments.
type Store struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewStore wraps an open pool.
func NewStore(pool *pgxpool.Pool, log zerolog.Logger) *Store {
	return &Store{pool: pool, log: log}
}

// Save inserts a single assessment row.
func (s *Store) Save(ctx context.Context, row *model.ReportRow) error {
	if _, err := s.pool.Exec(ctx, embedsql.InsertAssessment, row.CopyValues()...); err != nil {
		return fmt.Errorf("insert assessment %s: %w", row.AssessmentID, err)
	}
	return nil
}

// CopyAssessments COPY-loads rows until the channel closes and returns the
// number written.
func (s *Store) CopyAssessments(ctx context.Context, rows <-chan *model.ReportRow) (int64, error) {
	start := time.Now()
	src := NewChannelSource(rows)
	n, err := s.pool.CopyFrom(ctx,
		pgx.Identifier{"health", "assessments"},
		model.ReportColumns(),
		src,
	)
	if err != nil {
		return 0, fmt.Errorf("copy assessments after %d rows: %w", src.Count(), err)
	}

	dur := time.Since(start)
	s.log.Info().
		Int64("rows", n).
		Str("duration", dur.String()).
		Float64("rows_per_sec", float64(n)/dur.Seconds()).
		Msg("assessments copied")
	return n, nil
}

// Get loads one stored assessment.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*model.ReportRow, error) {
	var (
		r       model.ReportRow
		batchID *uuid.UUID
		report  []byte
	)
	err := s.pool.QueryRow(ctx, embedsql.GetAssessment, id).Scan(
		&r.AssessmentID,
		&batchID,
		&r.RecordID,
		&r.RecordHash,
		&r.HeartScore,
		&r.DiabetesScore,
		&r.HypertensionScore,
		&r.ObesityScore,
		&r.CompositeRisk,
		&r.HealthScore,
		&r.RiskLevel,
		&r.HealthGrade,
		&report,
		&r.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get assessment %s: %w", id, err)
	}
	r.BatchID = batchID
	r.ReportJSON = report
	return &r, nil
}

// BatchLevels counts a batch's stored assessments per composite risk level.
func (s *Store) BatchLevels(ctx context.Context, batchID uuid.UUID) (map[model.RiskLevel]int64, error) {
	rows, err := s.pool.Query(ctx, embedsql.BatchStats, batchID)
	if err != nil {
		return nil, fmt.Errorf("batch stats: %w", err)
	}
	defer rows.Close()

	out := make(map[model.RiskLevel]int64)
	for rows.Next() {
		var (
			level string
			n     int64
		)
		if err := rows.Scan(&level, &n); err != nil {
			return nil, fmt.Errorf("scan batch stats: %w", err)
		}
		out[model.RiskLevel(level)] = n
	}
	return out, rows.Err()
}
