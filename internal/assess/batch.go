package assess

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gyeh/healthrisk/internal/model"
	"github.com/gyeh/healthrisk/internal/normalize"
	"github.com/gyeh/healthrisk/internal/parquetread"
)

const readBatchSize = 256

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// RowSink persists report rows streamed over a channel and returns the
// number stored.
type RowSink interface {
	CopyAssessments(ctx context.Context, rows <-chan *model.ReportRow) (int64, error)
}

// BatchOptions configures RunBatch.
type BatchOptions struct {
	FilePath string
	// Workers bounds concurrent assessments. Values below 1 mean 1.
	Workers int
	// Sink is optional; when nil rows are only returned.
	Sink RowSink
}

// BatchResult is the outcome of a batch run. Rows follow input order and
// omit records that could not be assessed.
type BatchResult struct {
	Summary *model.BatchSummary
	Rows    []*model.ReportRow
}

// RunBatch assesses every record in a Parquet file: preflight → assess →
// store. A record that fails to score is counted and skipped; read, store
// and cancellation errors abort the run.
func RunBatch(ctx context.Context, a *Assessor, log zerolog.Logger, opts BatchOptions) (*BatchResult, error) {
	totalStart := time.Now()
	workers := max(opts.Workers, 1)
	batchID := uuid.New()

	// Phase 1: Preflight
	log.Info().Str("file", opts.FilePath).Msg("starting preflight")
	sha, err := normalize.FileHash(opts.FilePath)
	if err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}
	reader, err := parquetread.Open(opts.FilePath)
	if err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}
	defer reader.Close()
	if err := parquetread.ValidateSchema(reader.Schema()); err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}

	summary := &model.BatchSummary{
		FilePath:         opts.FilePath,
		FileSHA256:       sha,
		BatchID:          batchID.String(),
		FailedConditions: make(map[model.Condition]int64),
	}

	// Phase 2: Assess
	log.Info().
		Int64("rows", reader.NumRows()).
		Int("workers", workers).
		Msg("starting assessment")
	assessStart := time.Now()
	rows, err := assessAll(ctx, a, log, reader, workers, batchID, summary)
	if err != nil {
		return nil, &PipelineError{Phase: "assess", Err: err}
	}
	summary.DurationAssess = time.Since(assessStart)

	// Phase 3: Store
	if opts.Sink != nil {
		log.Info().Int("rows", len(rows)).Msg("storing assessments")
		storeStart := time.Now()
		stored, err := store(ctx, opts.Sink, rows)
		if err != nil {
			return nil, &PipelineError{Phase: "store", Err: err}
		}
		summary.RowsStored = stored
		summary.DurationStore = time.Since(storeStart)
	}

	summary.DurationTotal = time.Since(totalStart)
	log.Info().
		Int64("records_read", summary.RecordsRead).
		Int64("records_assessed", summary.RecordsAssessed).
		Int64("records_failed", summary.RecordsFailed).
		Int64("rows_stored", summary.RowsStored).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("batch assessment complete")

	return &BatchResult{Summary: summary, Rows: rows}, nil
}

func assessAll(ctx context.Context, a *Assessor, log zerolog.Logger, reader *parquetread.Reader, workers int, batchID uuid.UUID, summary *model.BatchSummary) ([]*model.ReportRow, error) {
	var out []*model.ReportRow
	var failed atomic.Int64
	failedBy := make(map[model.Condition]*atomic.Int64, len(model.AllConditions))
	for _, c := range model.Conditions() {
		failedBy[c] = new(atomic.Int64)
	}

	buf := make([]parquetread.Entry, readBatchSize)
	for {
		n, readErr := reader.Next(buf)
		if n > 0 {
			results := make([]*model.ReportRow, n)
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(workers)
			for i, e := range buf[:n] {
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						return err
					}
					as, err := a.Assess(gctx, e.Record)
					if err != nil {
						if gctx.Err() != nil {
							return gctx.Err()
						}
						failed.Add(1)
						var ce *ConditionError
						if errors.As(err, &ce) {
							failedBy[ce.Condition].Add(1)
						}
						log.Warn().Err(err).Int64("row", e.Row).Str("record_id", e.ID).Msg("record not assessed")
						return nil
					}
					reportJSON, err := json.Marshal(as.Report)
					if err != nil {
						return fmt.Errorf("encode report for row %d: %w", e.Row, err)
					}
					results[i] = model.ToReportRow(as, &batchID, e.ID, reportJSON)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return nil, err
			}
			for _, r := range results {
				if r != nil {
					out = append(out, r)
				}
			}
		}
		if readErr == io.EOF || (readErr == nil && n == 0) {
			break
		}
		if readErr != nil {
			return nil, readErr
		}
	}

	summary.RecordsRead = reader.Decoded()
	summary.RecordsAssessed = int64(len(out))
	summary.RecordsFailed = failed.Load()
	for c, v := range failedBy {
		if n := v.Load(); n > 0 {
			summary.FailedConditions[c] = n
		}
	}
	return out, nil
}

// store streams rows to the sink through a channel.
func store(ctx context.Context, sink RowSink, rows []*model.ReportRow) (int64, error) {
	ch := make(chan *model.ReportRow, readBatchSize)
	errCh := make(chan error, 1)

	go func() {
		defer close(ch)
		for _, r := range rows {
			select {
			case ch <- r:
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
		errCh <- nil
	}()

	stored, err := sink.CopyAssessments(ctx, ch)
	// drain so the producer never blocks if the sink stopped early
	for range ch {
	}
	if prodErr := <-errCh; prodErr != nil {
		return 0, prodErr
	}
	if err != nil {
		return 0, err
	}
	return stored, nil
}
