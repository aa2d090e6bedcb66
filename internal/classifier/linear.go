package classifier

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/healthrisk/internal/model"
)

// coefficientFile is the on-disk YAML structure of a fitted linear model.
//
// Binary models carry one intercept and one weight per feature and score
// with the logistic function. Multi-class models carry one intercept and one
// weight per class for every feature and score with softmax. Categorical
// features are one-hot encoded as "Name=value" keys; unseen values contribute
// nothing.
type coefficientFile struct {
	Condition string               `yaml:"condition"`
	Classes   int                  `yaml:"classes"`
	Intercept []float64            `yaml:"intercept"`
	Weights   map[string][]float64 `yaml:"weights"`
	Accuracy  float64              `yaml:"accuracy"`
}

func (c *coefficientFile) validate() error {
	if c.Classes < 2 {
		return fmt.Errorf("classes must be >= 2, got %d", c.Classes)
	}
	width := c.Classes
	if c.Classes == 2 {
		width = 1
	}
	if len(c.Intercept) != width {
		return fmt.Errorf("intercept has %d values, want %d", len(c.Intercept), width)
	}
	for name, w := range c.Weights {
		if len(w) != width {
			return fmt.Errorf("weights[%s] has %d values, want %d", name, len(w), width)
		}
	}
	return nil
}

// LinearModel is a file-backed logistic/softmax classifier. The coefficient
// file is read at most once successfully; after that the model is read-only.
type LinearModel struct {
	path string

	mu     sync.Mutex
	params *coefficientFile
}

// NewLinearModel returns an unloaded model backed by the file at path.
func NewLinearModel(path string) *LinearModel {
	return &LinearModel{path: path}
}

// Load reads the coefficient file. It returns false with a nil error when no
// file exists, and an error when the file exists but is unusable.
func (m *LinearModel) Load() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadLocked()
}

func (m *LinearModel) loadLocked() (bool, error) {
	if m.params != nil {
		return true, nil
	}
	data, err := os.ReadFile(m.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read model file: %w", err)
	}
	var cf coefficientFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return false, fmt.Errorf("parse model file %s: %w", m.path, err)
	}
	if err := cf.validate(); err != nil {
		return false, fmt.Errorf("model file %s: %w", m.path, err)
	}
	m.params = &cf
	return true, nil
}

// Accuracy returns the held-out accuracy recorded when the model was fitted,
// or 0 if the model is not loaded.
func (m *LinearModel) Accuracy() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.params == nil {
		return 0
	}
	return m.params.Accuracy
}

func (m *LinearModel) loaded() (*coefficientFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ok, err := m.loadLocked()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: no saved model at %s", ErrModelUnavailable, m.path)
	}
	return m.params, nil
}

// Predict implements Classifier, loading the model on first use.
func (m *LinearModel) Predict(ctx context.Context, fs model.FeatureSet) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}
	p, err := m.loaded()
	if err != nil {
		return Prediction{}, err
	}

	z := append([]float64(nil), p.Intercept...)
	for _, f := range fs.Fields {
		key, x := f.Name, f.Num
		if f.Kind == model.Categorical {
			key, x = f.Name+"="+strings.TrimSpace(f.Str), 1
		}
		w, ok := p.Weights[key]
		if !ok {
			continue
		}
		for i := range z {
			z[i] += w[i] * x
		}
	}

	if p.Classes == 2 {
		prob := sigmoid(z[0])
		class := 0
		if prob >= 0.5 {
			class = 1
		}
		return Prediction{Class: class, Probability: prob}, nil
	}

	probs := softmax(z)
	best := 0
	for i := range probs {
		if probs[i] > probs[best] {
			best = i
		}
	}
	return Prediction{Class: best, Probability: probs[best]}, nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func softmax(z []float64) []float64 {
	hi := z[0]
	for _, v := range z[1:] {
		if v > hi {
			hi = v
		}
	}
	out := make([]float64, len(z))
	var sum float64
	for i, v := range z {
		out[i] = math.Exp(v - hi)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
