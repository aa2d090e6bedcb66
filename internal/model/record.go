package model

// UserRecord is the loosely typed input to an assessment: field name to a
// number, a categorical string, or a boolean-like string. Any field may be
// absent. The pipeline never mutates it.
type UserRecord map[string]any

// Lookup returns the first present value among keys, in order.
func (r UserRecord) Lookup(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}
