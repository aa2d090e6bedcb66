// Package classifier provides the per-condition classification capability:
// given a feature set, return a class label and probability.
package classifier

import (
	"context"
	"errors"

	"github.com/gyeh/healthrisk/internal/model"
)

// ErrModelUnavailable is returned when no fitted model is loaded and none
// can be loaded or reached.
var ErrModelUnavailable = errors.New("model unavailable")

// Prediction is a classifier output. For binary models Probability is the
// positive-class probability; for multi-class models it is the probability
// of the predicted class.
type Prediction struct {
	Class       int     `json:"class"`
	Probability float64 `json:"probability"`
}

// Classifier is an already-fitted model. Implementations must be safe for
// concurrent use.
type Classifier interface {
	Predict(ctx context.Context, fs model.FeatureSet) (Prediction, error)
}

// Fixed always returns the same prediction. Useful when wiring pipelines
// without trained models.
type Fixed Prediction

// Predict implements Classifier.
func (f Fixed) Predict(context.Context, model.FeatureSet) (Prediction, error) {
	return Prediction(f), nil
}
