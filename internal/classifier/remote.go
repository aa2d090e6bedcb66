package classifier

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/gyeh/healthrisk/internal/model"
)

// Remote calls an HTTP prediction service:
//
//	POST {base}/v1/models/{condition}/predict  {"features": {...}}
//	200 {"class": 1, "probability": 0.73}
//
// Any transport failure, non-2xx status, undecodable body or missing field is
// reported as ErrModelUnavailable. Calls are not retried.
type Remote struct {
	client    *resty.Client
	condition model.Condition
}

type predictRequest struct {
	Features map[string]any `json:"features"`
}

type predictResponse struct {
	Class       *int     `json:"class"`
	Probability *float64 `json:"probability"`
}

// NewRemote returns a client for condition's model at baseURL.
func NewRemote(baseURL string, condition model.Condition, timeout time.Duration) *Remote {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	return &Remote{client: c, condition: condition}
}

// Predict implements Classifier.
func (r *Remote) Predict(ctx context.Context, fs model.FeatureSet) (Prediction, error) {
	var out predictResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetPathParam("condition", string(r.condition)).
		SetBody(predictRequest{Features: fs.Map()}).
		SetResult(&out).
		ForceContentType("application/json").
		Post("/v1/models/{condition}/predict")
	if err != nil {
		if ctx.Err() != nil {
			return Prediction{}, ctx.Err()
		}
		return Prediction{}, fmt.Errorf("%w: remote %s: %v", ErrModelUnavailable, r.condition, err)
	}
	if resp.IsError() {
		return Prediction{}, fmt.Errorf("%w: remote %s: status %d: %s",
			ErrModelUnavailable, r.condition, resp.StatusCode(), resp.String())
	}
	if out.Class == nil || out.Probability == nil {
		return Prediction{}, fmt.Errorf("%w: remote %s: response missing class or probability: %s",
			ErrModelUnavailable, r.condition, resp.String())
	}
	if p := *out.Probability; p < 0 || p > 1 {
		return Prediction{}, fmt.Errorf("%w: remote %s: probability %v out of range",
			ErrModelUnavailable, r.condition, p)
	}
	return Prediction{Class: *out.Class, Probability: *out.Probability}, nil
}
