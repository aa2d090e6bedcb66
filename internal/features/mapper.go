package features

import (
	"github.com/gyeh/healthrisk/internal/model"
	"github.com/gyeh/healthrisk/internal/normalize"
)

// Mapper evaluates the per-condition rule tables. It holds no mutable state
// and is safe for concurrent use.
type Mapper struct {
	schemas map[model.Condition][]Rule
	aux     map[model.Condition][]Rule
}

// NewMapper returns a Mapper over the built-in schemas.
func NewMapper() *Mapper {
	return &Mapper{schemas: map[model.Condition][]Rule{
		model.Diabetes:     DiabetesRules,
		model.Heart:        HeartRules,
		model.Hypertension: HypertensionRules,
		model.Obesity:      ObesityRules,
	}, aux: map[model.Condition][]Rule{
		model.Obesity: ObesityAuxRules,
	}}
}

// Map builds the feature set for one condition. Unknown conditions yield an
// empty set.
func (m *Mapper) Map(c model.Condition, rec model.UserRecord) model.FeatureSet {
	rules := m.schemas[c]
	fs := model.FeatureSet{Condition: c, Fields: make([]model.Feature, 0, len(rules))}
	for _, r := range rules {
		fs.Fields = append(fs.Fields, r.apply(rec))
	}
	for _, r := range m.aux[c] {
		fs.Aux = append(fs.Aux, r.apply(rec))
	}
	return fs
}

// MapAll builds the feature sets for every condition.
func (m *Mapper) MapAll(rec model.UserRecord) map[model.Condition]model.FeatureSet {
	out := make(map[model.Condition]model.FeatureSet, len(model.AllConditions))
	for _, c := range model.Conditions() {
		out[c] = m.Map(c, rec)
	}
	return out
}

func (r Rule) apply(rec model.UserRecord) model.Feature {
	f := model.Feature{Name: r.Name, Kind: r.Kind}
	if r.Derive != nil {
		f.Num, f.Supplied = r.Derive(rec)
		return f
	}

	switch r.Kind {
	case model.Categorical:
		f.Str = r.Str
		for _, k := range r.Sources {
			v, ok := rec.Lookup(k)
			if !ok {
				continue
			}
			if s, ok := normalize.String(v); ok {
				f.Str, f.Supplied = s, true
				break
			}
		}
	default:
		f.Num, f.Supplied = lookupFloat(rec, r.Num, r.Sources...)
	}
	return f
}
