// Package money wraps shopspring/decimal to give the extractor a
// signed, exactly-two-fractional-digit amount type that round-trips
// through the parsing formats without the precision loss float64 would
// introduce — the teacher's parsers used bare float64 (see
// parser/util.go's parseAmount), which is adequate for a single
// hardcoded bank but not for a format engine that must guarantee
// round-trip equality across formats and CSV re-parsing (spec.md §8).
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a signed decimal with exactly two fractional digits.
type Money struct {
	d decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{d: decimal.Zero}

// FromString parses a plain signed decimal string (e.g. "-1234.56")
// into Money, rounding to two fractional digits.
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("money: invalid decimal %q: %w", s, err)
	}
	return Money{d: d.Round(2)}, nil
}

// MustFromString parses s like FromString but panics on error — for
// package-level constants built from literal strings.
func MustFromString(s string) Money {
	m, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromFloat constructs Money from a float64, rounding to two
// fractional digits. Used by the amount recognizers, which parse the
// digit string as a float64 before converting it here.
func FromFloat(f float64) Money {
	return Money{d: decimal.NewFromFloat(f).Round(2)}
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{d: m.d.Add(other.d).Round(2)}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{d: m.d.Sub(other.d).Round(2)}
}

// Neg returns the additive inverse of m.
func (m Money) Neg() Money {
	return Money{d: m.d.Neg()}
}

// Cmp compares m to other: -1, 0, or 1.
func (m Money) Cmp(other Money) int {
	return m.d.Cmp(other.d)
}

// WithinTolerance reports whether |m - other| <= tol.
func (m Money) WithinTolerance(other Money, tol Money) bool {
	diff := m.d.Sub(other.d).Abs()
	return diff.Cmp(tol.d) <= 0
}

// IsZero reports whether m is exactly zero.
func (m Money) IsZero() bool { return m.d.IsZero() }

// String renders m with exactly two fractional digits, no thousand
// separators, matching the CSV output format in spec.md §6.
func (m Money) String() string {
	return m.d.StringFixed(2)
}

// Float64 returns the best-effort float64 representation, for
// consumers (e.g. JSON API responses) that need a numeric type.
func (m Money) Float64() float64 {
	f, _ := m.d.Float64()
	return f
}
