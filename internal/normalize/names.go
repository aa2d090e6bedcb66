package normalize

import (
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(`\s+`)

// NormalizeToken lowercases, collapses whitespace, and trims a categorical
// answer such as "  Yes " or "FEMALE".
func NormalizeToken(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return multiSpace.ReplaceAllString(s, " ")
}

var (
	yesTokens  = map[string]bool{"yes": true, "y": true, "true": true, "1": true}
	maleTokens = map[string]bool{"male": true, "m": true, "1": true}
)

// IsYes reports whether v is an affirmative answer. Booleans are taken as-is;
// strings match yes/y/true/1 case-insensitively; numbers are affirmative when
// non-zero.
func IsYes(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return yesTokens[NormalizeToken(t)]
	}
	if f, ok := Float(v); ok {
		return f != 0
	}
	return false
}

// IsMale reports whether v is a male-like gender token (male, m, 1).
func IsMale(v any) bool {
	s, ok := String(v)
	if !ok {
		return false
	}
	return maleTokens[NormalizeToken(s)]
}
