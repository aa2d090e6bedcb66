package db_test

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyeh/healthrisk/internal/db"
	"github.com/gyeh/healthrisk/internal/model"
)

const (
	testPort     = 15433
	testDB       = "healthtest"
	testUser     = "postgres"
	testPassword = "postgres"
)

var testDSN string

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		fmt.Fprintln(os.Stderr, "SKIP: database tests need embedded postgres")
		os.Exit(0)
	}

	testDSN = fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)

	pg := embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			StartTimeout(30 * time.Second),
	)
	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}
	os.Exit(code)
}

func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := db.NewPool(ctx, testDSN, 4)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, "DROP SCHEMA IF EXISTS health CASCADE; DROP TABLE IF EXISTS public.healthrisk_migrations")
	require.NoError(t, err)

	n, err := db.ApplyMigrations(ctx, pool, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, 1, n)
	return pool
}

func row(recordID string, batch *uuid.UUID, level model.RiskLevel) *model.ReportRow {
	return &model.ReportRow{
		AssessmentID:      uuid.New(),
		BatchID:           batch,
		RecordID:          recordID,
		RecordHash:        "deadbeef",
		HeartScore:        65.5,
		DiabetesScore:     42,
		HypertensionScore: 58.3,
		ObesityScore:      35,
		CompositeRisk:     50.2,
		HealthScore:       49.8,
		RiskLevel:         string(level),
		HealthGrade:       "F",
		ReportJSON:        []byte(`{"composite_risk": 50.2}`),
		CreatedAt:         time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	pool := setupDB(t)
	n, err := db.ApplyMigrations(context.Background(), pool, zerolog.Nop())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_SaveAndGet(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	s := db.NewStore(pool, zerolog.Nop())

	want := row("alice", nil, model.High)
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Get(ctx, want.AssessmentID)
	require.NoError(t, err)
	assert.Equal(t, want.AssessmentID, got.AssessmentID)
	assert.Nil(t, got.BatchID)
	assert.Equal(t, "alice", got.RecordID)
	assert.Equal(t, 58.3, got.HypertensionScore)
	assert.Equal(t, "high", got.RiskLevel)
	assert.JSONEq(t, `{"composite_risk": 50.2}`, string(got.ReportJSON))
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))

	_, err = s.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestStore_SaveRejectsUnknownLevel(t *testing.T) {
	pool := setupDB(t)
	s := db.NewStore(pool, zerolog.Nop())
	assert.Error(t, s.Save(context.Background(), row("x", nil, model.RiskLevel("extreme"))))
}

func TestStore_CopyAssessments(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	s := db.NewStore(pool, zerolog.Nop())
	batch := uuid.New()

	ch := make(chan *model.ReportRow, 8)
	go func() {
		defer close(ch)
		for i := 0; i < 50; i++ {
			level := model.Low
			if i%5 == 0 {
				level = model.Critical
			}
			ch <- row(fmt.Sprintf("user-%d", i), &batch, level)
		}
	}()

	n, err := s.CopyAssessments(ctx, ch)
	require.NoError(t, err)
	assert.Equal(t, int64(50), n)

	levels, err := s.BatchLevels(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, map[model.RiskLevel]int64{model.Low: 40, model.Critical: 10}, levels)
}
