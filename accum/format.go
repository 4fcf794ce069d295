package accum

import (
	"math"
	"strconv"
	"strings"
)

// mantissaDigits is the number of fractional digits in the exponential form.
const mantissaDigits = 6

// FormatNumber renders v for the display: the shorter of the plain decimal form
// and the exponential form, preferring plain on a tie.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	plain := strconv.FormatFloat(v, 'f', -1, 64)
	exp := formatExponent(v)
	if len(exp) < len(plain) {
		return exp
	}
	return plain
}

// formatExponent renders v as d.dddddde<exp>, where the exponent carries no
// '+' sign and no zero padding.
func formatExponent(v float64) string {
	s := strconv.FormatFloat(v, 'e', mantissaDigits, 64)
	i := strings.LastIndexByte(s, 'e')
	if i < 0 {
		return s
	}
	mant, exp := s[:i], s[i+1:]

	neg := false
	switch {
	case strings.HasPrefix(exp, "+"):
		exp = exp[1:]
	case strings.HasPrefix(exp, "-"):
		neg = true
		exp = exp[1:]
	}
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
		neg = false
	}
	if neg {
		exp = "-" + exp
	}
	return mant + "e" + exp
}
