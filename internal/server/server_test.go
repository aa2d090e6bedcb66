package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyeh/healthrisk/internal/assess"
	"github.com/gyeh/healthrisk/internal/classifier"
	"github.com/gyeh/healthrisk/internal/db"
	"github.com/gyeh/healthrisk/internal/model"
	"github.com/gyeh/healthrisk/internal/risk"
	"github.com/gyeh/healthrisk/internal/scoring"
)

type fakeDB struct{ err error }

func (f fakeDB) Ping(context.Context) error { return f.err }

type memStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*model.ReportRow
	err  error
}

func (s *memStore) Save(_ context.Context, r *model.ReportRow) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rows == nil {
		s.rows = map[uuid.UUID]*model.ReportRow{}
	}
	s.rows[r.AssessmentID] = r
	return nil
}

func (s *memStore) Get(_ context.Context, id uuid.UUID) (*model.ReportRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return r, nil
}

func testAssessor(t *testing.T, drop ...model.Condition) *assess.Assessor {
	t.Helper()
	cls := map[model.Condition]classifier.Classifier{
		model.Heart:        classifier.Fixed{Probability: 0.2},
		model.Diabetes:     classifier.Fixed{Class: 1, Probability: 0.42},
		model.Hypertension: classifier.Fixed{Class: 1, Probability: 0.5},
		model.Obesity:      classifier.Fixed{Class: 1, Probability: 0.9},
	}
	for _, c := range drop {
		delete(cls, c)
	}
	scorer, err := scoring.NewScorer(scoring.DefaultWeights())
	require.NoError(t, err)
	return assess.New(risk.NewSet(cls, risk.DefaultBlend()), scorer, zerolog.Nop())
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHealthz(t *testing.T) {
	router := NewRouter(Options{Assessor: testAssessor(t)})
	w := do(router, "GET", "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestReadyz(t *testing.T) {
	w := do(NewRouter(Options{Assessor: testAssessor(t)}), "GET", "/readyz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"db":"disabled"`)

	w = do(NewRouter(Options{Assessor: testAssessor(t), DB: fakeDB{errors.New("down")}}), "GET", "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unhealthy: down")
}

func TestInputs(t *testing.T) {
	w := do(NewRouter(Options{Assessor: testAssessor(t)}), "GET", "/v1/inputs", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Categories []struct {
			Name string `json:"name"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Categories)
	assert.Equal(t, "basic_info", body.Categories[0].Name)
}

func TestCreateAssessment(t *testing.T) {
	store := &memStore{}
	router := NewRouter(Options{Assessor: testAssessor(t), Store: store})

	w := do(router, "POST", "/v1/assessments?record_id=alice", `{"age": 52, "gender": "Female", "height": 160, "weight": 80}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got model.Assessment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.NotNil(t, got.Report)
	assert.Equal(t, 42.0, got.Report.IndividualRisks[model.Diabetes].Score)
	assert.Len(t, got.Report.IndividualRisks, 4)
	assert.NotEmpty(t, got.Report.Recommendations)

	require.Len(t, store.rows, 1)
	saved := store.rows[got.ID]
	require.NotNil(t, saved)
	assert.Equal(t, "alice", saved.RecordID)

	w = do(router, "GET", "/v1/assessments/"+got.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	var stored struct {
		RecordID string             `json:"record_id"`
		Report   model.HealthReport `json:"report"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stored))
	assert.Equal(t, "alice", stored.RecordID)
	assert.Equal(t, got.Report.CompositeRisk, stored.Report.CompositeRisk)
}

func TestCreateAssessment_Text(t *testing.T) {
	router := NewRouter(Options{Assessor: testAssessor(t)})
	w := do(router, "POST", "/v1/assessments?format=text", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "COMPREHENSIVE HEALTH ASSESSMENT REPORT")
}

func TestCreateAssessment_BadPayload(t *testing.T) {
	router := NewRouter(Options{Assessor: testAssessor(t)})
	for _, body := range []string{`[1,2]`, `{"age":`, `"text"`} {
		w := do(router, "POST", "/v1/assessments", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestCreateAssessment_TooLarge(t *testing.T) {
	router := NewRouter(Options{Assessor: testAssessor(t), MaxBodyBytes: 16})
	w := do(router, "POST", "/v1/assessments", `{"age": 52, "gender": "Female", "height": 160}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestCreateAssessment_ModelUnavailable(t *testing.T) {
	router := NewRouter(Options{Assessor: testAssessor(t, model.Obesity)})
	w := do(router, "POST", "/v1/assessments", `{"age": 40}`)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "obesity", body["condition"])
}

func TestCreateAssessment_StoreFailure(t *testing.T) {
	router := NewRouter(Options{Assessor: testAssessor(t), Store: &memStore{err: errors.New("disk full")}})
	w := do(router, "POST", "/v1/assessments", `{}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetAssessment(t *testing.T) {
	w := do(NewRouter(Options{Assessor: testAssessor(t)}), "GET", "/v1/assessments/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotImplemented, w.Code)

	router := NewRouter(Options{Assessor: testAssessor(t), Store: &memStore{}})
	w = do(router, "GET", "/v1/assessments/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(router, "GET", "/v1/assessments/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
