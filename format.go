package tally

import (
	"math"
	"strconv"
	"strings"
)

// Formatting thresholds: beyond these magnitudes a value is rendered in
// exponential notation.
const (
	formatExpUpper = 1e15
	formatExpLower = 1e-6
)

// nonNumericDisplays are marker strings Format passes through unchanged.
var nonNumericDisplays = map[string]bool{
	DisplayError: true,
	"NaN":        true,
	"Inf":        true,
	"+Inf":       true,
	"-Inf":       true,
	"Infinity":   true,
	"-Infinity":  true,
}

// Format renders a display value for presentation. The error marker and
// non-finite renderings pass through unchanged, as does anything that is not
// a number (a half-typed expression like "sin(3"). Very large and very small
// magnitudes use exponential notation with six fractional digits; values
// entered with a decimal point keep up to ten fractional digits. No
// thousands grouping. Format is pure and never mutates engine state.
func Format(s string) string {
	if nonNumericDisplays[s] {
		return s
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}

	abs := math.Abs(v)
	if abs >= formatExpUpper || (abs > 0 && abs < formatExpLower) {
		return strconv.FormatFloat(v, 'e', 6, 64)
	}

	if strings.Contains(s, ".") {
		out := strconv.FormatFloat(v, 'f', 10, 64)
		out = strings.TrimRight(out, "0")
		out = strings.TrimRight(out, ".")
		return out
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}
