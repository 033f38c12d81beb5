package money

import (
	"strings"
)

// Money is an amount of currency expressed in minor units (cents).
// All arithmetic on amounts happens on this integer type; decimal strings
// exist only at the formatting and parsing boundaries.
type Money int64

// ParseDecimal converts a user-typed decimal string into Money. Both comma and
// dot are accepted as the decimal separator, thousands separators are ignored,
// and anything beyond the second fraction digit is rounded half-up.
//
// Malformed input yields 0 instead of an error. Form fields feed this parser
// directly, so it must absorb whatever the user left in the input.
func ParseDecimal(s string) Money {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	intPart, fracPart, ok := splitDecimal(s)
	if !ok {
		return 0
	}

	var units int64
	for _, r := range intPart {
		if r < '0' || r > '9' {
			return 0
		}
		units = units*10 + int64(r-'0')
	}

	cents := units * 100
	if fracPart != "" {
		frac, ok := parseFraction(fracPart)
		if !ok {
			return 0
		}
		cents += frac
	}

	if negative {
		cents = -cents
	}
	return Money(cents)
}

// splitDecimal separates the integer and fraction parts, treating the last
// comma or dot as the decimal separator and dropping grouping separators
// before it (e.g. "1.234,56" and "1,234.56" both parse).
func splitDecimal(s string) (intPart, fracPart string, ok bool) {
	lastSep := strings.LastIndexAny(s, ",.")
	if lastSep == -1 {
		return s, "", s != ""
	}

	intPart = s[:lastSep]
	fracPart = s[lastSep+1:]

	// A three-digit tail after the only separator is ambiguous ("1.234"):
	// the original treats it as a decimal, so we do too.
	intPart = strings.ReplaceAll(intPart, ",", "")
	intPart = strings.ReplaceAll(intPart, ".", "")
	if intPart == "" && fracPart == "" {
		return "", "", false
	}
	if intPart == "" {
		intPart = "0"
	}
	return intPart, fracPart, true
}

// parseFraction turns the fraction digits into cents, rounding half-up on the
// third digit.
func parseFraction(frac string) (int64, bool) {
	for _, r := range frac {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	switch {
	case len(frac) == 1:
		return int64(frac[0]-'0') * 10, true
	case len(frac) >= 2:
		cents := int64(frac[0]-'0')*10 + int64(frac[1]-'0')
		if len(frac) > 2 && frac[2] >= '5' {
			cents++
		}
		return cents, true
	}
	return 0, true
}

// Format renders the amount with two fraction digits, comma as the decimal
// separator and dot as the thousands separator ("1.234,56").
func (m Money) Format() string {
	negative := m < 0
	if negative {
		m = -m
	}

	units := int64(m) / 100
	cents := int64(m) % 100

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(groupThousands(units))
	b.WriteByte(',')
	b.WriteByte(byte('0' + cents/10))
	b.WriteByte(byte('0' + cents%10))
	return b.String()
}

func groupThousands(n int64) string {
	digits := []byte{}
	if n == 0 {
		return "0"
	}
	for n > 0 {
		digits = append(digits, byte('0'+n%10))
		n /= 10
	}

	var b strings.Builder
	for i := len(digits) - 1; i >= 0; i-- {
		b.WriteByte(digits[i])
		if i > 0 && i%3 == 0 {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// PercentBP applies a percentage expressed in basis points (1% = 100 bp),
// multiplying first and rounding half-up afterwards so repeated percentage
// computations do not accumulate drift.
func (m Money) PercentBP(bp int64) Money {
	return RoundDiv(int64(m)*bp, 10_000)
}

// RoundDiv divides two integers rounding half away from zero.
func RoundDiv(numerator, denominator int64) Money {
	if denominator == 0 {
		return 0
	}
	if (numerator < 0) != (denominator < 0) {
		return Money((numerator - denominator/2) / denominator)
	}
	return Money((numerator + denominator/2) / denominator)
}

// CeilDiv divides two positive integers rounding up.
func CeilDiv(numerator, denominator int64) int64 {
	if denominator <= 0 {
		return 0
	}
	return (numerator + denominator - 1) / denominator
}
