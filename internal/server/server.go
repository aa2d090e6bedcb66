// Package server exposes assessments over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/healthrisk/internal/assess"
	"github.com/gyeh/healthrisk/internal/db"
	"github.com/gyeh/healthrisk/internal/export"
	"github.com/gyeh/healthrisk/internal/features"
	"github.com/gyeh/healthrisk/internal/model"
)

const defaultMaxBody = 1 << 20

// Pinger reports database health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// AssessmentStore persists and loads assessments.
type AssessmentStore interface {
	Save(ctx context.Context, row *model.ReportRow) error
	Get(ctx context.Context, id uuid.UUID) (*model.ReportRow, error)
}

// Options wires the router. Assessor is required; DB and Store are optional.
type Options struct {
	Assessor     *assess.Assessor
	Store        AssessmentStore
	DB           Pinger
	Log          zerolog.Logger
	MaxBodyBytes int64
}

type handler struct {
	opts Options
}

// NewRouter builds the HTTP API.
func NewRouter(opts Options) *gin.Engine {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBody
	}
	h := &handler{opts: opts}

	router := gin.New()
	router.Use(
		requestLogger(opts.Log),
		gin.Recovery(),
		limitBodySize(opts.MaxBodyBytes),
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", h.ready)

	v1 := router.Group("/v1")
	v1.GET("/inputs", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"categories": features.RequiredInputs()})
	})
	v1.POST("/assessments", h.createAssessment)
	v1.GET("/assessments/:id", h.getAssessment)

	return router
}

func (h *handler) ready(c *gin.Context) {
	if h.opts.DB == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "disabled"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.opts.DB.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"db":     fmt.Sprintf("unhealthy: %v", err),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "ok"})
}

func (h *handler) createAssessment(c *gin.Context) {
	var rec model.UserRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: expected a JSON object of health inputs"})
		return
	}
	if rec == nil {
		rec = model.UserRecord{}
	}

	a, err := h.opts.Assessor.Assess(c.Request.Context(), rec)
	if err != nil {
		if cond, ok := assess.IsUnavailable(err); ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":     "model unavailable",
				"condition": cond,
			})
			return
		}
		h.opts.Log.Error().Err(err).Msg("assessment failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "assessment failed"})
		return
	}

	if h.opts.Store != nil {
		reportJSON, err := json.Marshal(a.Report)
		if err == nil {
			err = h.opts.Store.Save(c.Request.Context(), model.ToReportRow(a, nil, c.Query("record_id"), reportJSON))
		}
		if err != nil {
			h.opts.Log.Error().Err(err).Str("assessment_id", a.ID.String()).Msg("persist assessment")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store assessment"})
			return
		}
	}

	if c.Query("format") == "text" {
		c.Status(http.StatusOK)
		c.Header("Content-Type", "text/plain; charset=utf-8")
		if err := export.WriteText(c.Writer, a.Report); err != nil {
			h.opts.Log.Warn().Err(err).Msg("write text report")
		}
		return
	}
	c.JSON(http.StatusOK, a)
}

type storedAssessment struct {
	ID         uuid.UUID       `json:"id"`
	BatchID    *uuid.UUID      `json:"batch_id,omitempty"`
	RecordID   string          `json:"record_id,omitempty"`
	RecordHash string          `json:"record_hash"`
	CreatedAt  time.Time       `json:"created_at"`
	Report     json.RawMessage `json:"report"`
}

func (h *handler) getAssessment(c *gin.Context) {
	if h.opts.Store == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "storage disabled"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assessment id"})
		return
	}

	row, err := h.opts.Store.Get(c.Request.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
		return
	}
	if err != nil {
		h.opts.Log.Error().Err(err).Str("assessment_id", id.String()).Msg("load assessment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load assessment"})
		return
	}

	c.JSON(http.StatusOK, storedAssessment{
		ID:         row.AssessmentID,
		BatchID:    row.BatchID,
		RecordID:   row.RecordID,
		RecordHash: row.RecordHash,
		CreatedAt:  row.CreatedAt,
		Report:     row.ReportJSON,
	})
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// Serve runs handler on addr until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, log zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info().Str("addr", addr).Msg("server listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
