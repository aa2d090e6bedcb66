package model

// FeatureKind distinguishes numeric classifier inputs from categorical ones.
type FeatureKind int

const (
	Numeric FeatureKind = iota
	Categorical
)

// Feature is one fully populated classifier input.
type Feature struct {
	Name     string      `json:"name"`
	Kind     FeatureKind `json:"kind"`
	Num      float64     `json:"num,omitempty"`
	Str      string      `json:"str,omitempty"`
	Supplied bool        `json:"supplied"` // false when the value is a default
}

// FeatureSet is the model-schema-specific representation of a user record
// for one condition. Fields are kept in schema order. Aux holds derived
// values used by scoring heuristics; classifiers never see them.
type FeatureSet struct {
	Condition Condition `json:"condition"`
	Fields    []Feature `json:"fields"`
	Aux       []Feature `json:"aux,omitempty"`
}

// Get returns the named feature, or ok=false.
func (fs FeatureSet) Get(name string) (Feature, bool) {
	for _, f := range fs.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// Num returns the numeric value of name, or fallback when absent or categorical.
func (fs FeatureSet) Num(name string, fallback float64) float64 {
	f, ok := fs.Get(name)
	if !ok || f.Kind != Numeric {
		return fallback
	}
	return f.Num
}

// Str returns the categorical value of name, or fallback.
func (fs FeatureSet) Str(name, fallback string) string {
	f, ok := fs.Get(name)
	if !ok || f.Kind != Categorical {
		return fallback
	}
	return f.Str
}

// AuxNum returns the auxiliary value name, or ok=false when absent.
func (fs FeatureSet) AuxNum(name string) (float64, bool) {
	for _, f := range fs.Aux {
		if f.Name == name && f.Kind == Numeric {
			return f.Num, true
		}
	}
	return 0, false
}

// Supplied reports whether the caller explicitly provided name.
func (fs FeatureSet) Supplied(name string) bool {
	f, ok := fs.Get(name)
	return ok && f.Supplied
}

// Map projects the set into a plain name -> value mapping, the shape remote
// classifiers expect.
func (fs FeatureSet) Map() map[string]any {
	m := make(map[string]any, len(fs.Fields))
	for _, f := range fs.Fields {
		if f.Kind == Numeric {
			m[f.Name] = f.Num
		} else {
			m[f.Name] = f.Str
		}
	}
	return m
}
