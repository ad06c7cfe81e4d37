// Package format implements the C3 format engine: registries of
// amount and date recognizers, keyed by label, consulted by Config in
// the order each field's format list declares.
//
// Grounded on the teacher's parser/util.go parseAmount/date-pattern
// family and generalized from one fixed currency convention per bank
// into labelled, composable recognizers a Config can reference by
// name (spec.md §4.3).
package format

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/statementcore/corebank/internal/money"
)

// AmountRecognizer attempts to parse s as a signed amount under one
// labelled lexical convention.
type AmountRecognizer func(s string) (money.Money, bool)

var currencySymbols = []string{"$", "£", "£", "€", "€"}

func stripCurrency(s string) string {
	for _, sym := range currencySymbols {
		s = strings.ReplaceAll(s, sym, "")
	}
	return s
}

var numberBody = `[\d,]+\.\d{2}`

var (
	amountFormat1 = regexp.MustCompile(`^(-)?(` + numberBody + `)(-)?$`)
	amountFormat2 = regexp.MustCompile(`^(-)?[$£\x{00A3}€\x{20AC}](-)?(` + numberBody + `)(-)?$`)
	amountFormat3 = regexp.MustCompile(`(?i)^(-)?[$£\x{00A3}€\x{20AC}]?(-)?(` + numberBody + `) (CR|DR)$`)
	amountFormat4 = regexp.MustCompile(`(?i)^(-)?(` + numberBody + `) (CR|DR)$`)
	amountFormat5 = regexp.MustCompile(`(?i)^(nil|zero)$`)
)

func cleanDigits(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", "")
	return strconv.ParseFloat(s, 64)
}

// AmountFormat1 parses "1,234.56", "-1,234.56", "1,234.56-".
func AmountFormat1(s string) (money.Money, bool) {
	s = strings.TrimSpace(s)
	m := amountFormat1.FindStringSubmatch(s)
	if m == nil {
		return money.Money{}, false
	}
	f, err := cleanDigits(m[2])
	if err != nil {
		return money.Money{}, false
	}
	neg := m[1] == "-" || m[3] == "-"
	if neg {
		f = -f
	}
	return money.FromFloat(f), true
}

// AmountFormat2 parses "$1,234.56", "-$1,234.56", "$1,234.56-".
func AmountFormat2(s string) (money.Money, bool) {
	s = strings.TrimSpace(s)
	m := amountFormat2.FindStringSubmatch(s)
	if m == nil {
		return money.Money{}, false
	}
	f, err := cleanDigits(m[3])
	if err != nil {
		return money.Money{}, false
	}
	neg := m[1] == "-" || m[2] == "-" || m[4] == "-"
	if neg {
		f = -f
	}
	return money.FromFloat(f), true
}

// AmountFormat3 parses "$1,234.56 CR", "-$1,234.56 CR", "$1,234.56 DR".
// DR negates; CR keeps; an explicit leading sign composes with the marker.
func AmountFormat3(s string) (money.Money, bool) {
	s = strings.TrimSpace(s)
	m := amountFormat3.FindStringSubmatch(s)
	if m == nil {
		return money.Money{}, false
	}
	f, err := cleanDigits(m[3])
	if err != nil {
		return money.Money{}, false
	}
	neg := m[1] == "-" || m[2] == "-"
	if strings.EqualFold(m[4], "DR") {
		neg = !neg
	}
	if neg {
		f = -f
	}
	return money.FromFloat(f), true
}

// AmountFormat4 parses "1,234.56 CR", "1,234.56 DR" and signed variants,
// without a currency symbol requirement.
func AmountFormat4(s string) (money.Money, bool) {
	s = strings.TrimSpace(s)
	m := amountFormat4.FindStringSubmatch(s)
	if m == nil {
		return money.Money{}, false
	}
	f, err := cleanDigits(m[2])
	if err != nil {
		return money.Money{}, false
	}
	neg := m[1] == "-"
	if strings.EqualFold(m[3], "DR") {
		neg = !neg
	}
	if neg {
		f = -f
	}
	return money.FromFloat(f), true
}

// AmountFormat5 parses "nil"/"zero" (case-insensitive) as 0.00.
func AmountFormat5(s string) (money.Money, bool) {
	s = strings.TrimSpace(s)
	if !amountFormat5.MatchString(s) {
		return money.Money{}, false
	}
	return money.Zero, true
}

// DefaultAmountFormats returns the five required amount labels mapped
// to their recognizers, ready to register into a Registry.
func DefaultAmountFormats() map[string]AmountRecognizer {
	return map[string]AmountRecognizer{
		"format1": AmountFormat1,
		"format2": AmountFormat2,
		"format3": AmountFormat3,
		"format4": AmountFormat4,
		"format5": AmountFormat5,
	}
}

// StripForMatch removes currency symbols and the thousand separator so
// callers needing a loose "is this an amount cell" check can reuse the
// same numeric body regexp bank-specific column scanners relied on.
func StripForMatch(s string) string {
	return strings.ReplaceAll(stripCurrency(s), ",", "")
}
