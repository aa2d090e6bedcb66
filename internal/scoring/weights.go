package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gyeh/healthrisk/internal/model"
)

var one = decimal.NewFromInt(1)

// Weights is the per-condition share of the composite risk. Values are
// exact decimals that sum to exactly 1.
type Weights struct {
	w map[model.Condition]decimal.Decimal
}

// DefaultWeights gives each condition an equal 0.25 share.
func DefaultWeights() Weights {
	quarter := decimal.RequireFromString("0.25")
	w := Weights{w: make(map[model.Condition]decimal.Decimal, 4)}
	for _, c := range model.Conditions() {
		w.w[c] = quarter
	}
	return w
}

// ParseWeights builds weights from condition name -> decimal string, e.g.
// {"heart": "0.4", "diabetes": "0.2", ...}. Every condition must be present.
func ParseWeights(raw map[string]string) (Weights, error) {
	w := Weights{w: make(map[model.Condition]decimal.Decimal, len(raw))}
	for name, s := range raw {
		ci, ok := model.ConditionByName(name)
		if !ok {
			return Weights{}, fmt.Errorf("unknown condition %q in weights", name)
		}
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return Weights{}, fmt.Errorf("weight for %s: %w", name, err)
		}
		w.w[ci.Condition] = d
	}
	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// Validate checks every condition has a non-negative weight and that the
// weights sum to exactly 1.
func (w Weights) Validate() error {
	sum := decimal.Zero
	var missing []string
	for _, c := range model.Conditions() {
		d, ok := w.w[c]
		if !ok {
			missing = append(missing, string(c))
			continue
		}
		if d.IsNegative() {
			return fmt.Errorf("negative weight for %s: %s", c, d)
		}
		sum = sum.Add(d)
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing weights for: %s", strings.Join(missing, ", "))
	}
	if !sum.Equal(one) {
		return fmt.Errorf("weights sum to %s, must sum to 1", sum)
	}
	return nil
}

// Of returns the weight for c.
func (w Weights) Of(c model.Condition) decimal.Decimal {
	return w.w[c]
}

// Sum returns the exact total of all weights.
func (w Weights) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, d := range w.w {
		sum = sum.Add(d)
	}
	return sum
}

// Floats returns the weights as float64 for reporting.
func (w Weights) Floats() map[model.Condition]float64 {
	out := make(map[model.Condition]float64, len(w.w))
	for c, d := range w.w {
		out[c] = d.InexactFloat64()
	}
	return out
}
