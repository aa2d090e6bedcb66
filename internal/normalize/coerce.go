package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Float coerces a loosely typed value to float64. Strings are trimmed and
// parsed; NaN and infinities are rejected. ok=false means the caller should
// fall back to its default.
func Float(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// String coerces a value to a non-empty trimmed string. Numbers are
// formatted without trailing zeros; booleans become "yes"/"no".
func String(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case bool:
		if t {
			return "yes", true
		}
		return "no", true
	case nil:
		return "", false
	}
	if f, ok := Float(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}
