package classify

import (
	"strconv"
	"strings"
)

// The backend stores most quantities as decimal strings and is not
// consistent about trailing zeros, so "12.3400" and "12.34" arrive as
// different raw values for the same quantity. Renderers flag their numeric
// fields and a precision; these helpers implement the normalized
// comparison used for display-level de-noising and zero suppression. The
// underlying classification of the record is never affected.

// NormalizeDecimal renders v as a fixed-precision decimal string. The
// second return is false when v is neither a number nor a numeric string.
func NormalizeDecimal(v any, places int) (string, bool) {
	f, ok := toFloat(v)
	if !ok {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', places, 64), true
}

// SameDecimal reports whether two values render to the same decimal string
// at the given precision. Non-numeric values are never decimal-equal.
func SameDecimal(a, b any, places int) bool {
	na, aok := NormalizeDecimal(a, places)
	nb, bok := NormalizeDecimal(b, places)
	return aok && bok && na == nb
}

// IsZero reports whether v is numerically zero at the given precision.
func IsZero(v any, places int) bool {
	n, ok := NormalizeDecimal(v, places)
	if !ok {
		return false
	}
	zero, _ := NormalizeDecimal(0.0, places)
	return n == zero
}

func toFloat(v any) (float64, bool) {
	if f, ok := asFloat(v); ok {
		return f, true
	}
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
