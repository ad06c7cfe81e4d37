// Package preamble implements C6: locating account number, start
// date, and opening/closing balances by anchored term scan plus
// alignment-gated candidate parsing (spec.md §4.5).
package preamble

import (
	"regexp"

	"github.com/statementcore/corebank/internal/config"
	"github.com/statementcore/corebank/internal/format"
	"github.com/statementcore/corebank/internal/fragment"
	"github.com/statementcore/corebank/internal/money"
	"github.com/statementcore/corebank/internal/statement"
)

// Extract scans doc for each of the four preamble fields and sets
// them on data, recording MissingAnchor/UnparseableValue errors for
// fields it could not locate or parse. Fields are independent: one
// field's scan never consumes fragments another field needs.
func Extract(doc fragment.Stream, cfg config.Config, formats *format.Registry, data *statement.Data) {
	if acct, ok := extractAccountNumber(doc, cfg.AccountNumber); ok {
		data.AccountNumber = acct
		data.HasAccountNumber = true
	} else {
		recordFieldFailure(data, "account_number", cfg.AccountNumber, doc)
	}

	if start, ok := extractDate(doc, cfg.StartDate, formats); ok {
		data.StartDate = toStatementDate(start)
		data.HasStartDate = true
	} else {
		recordFieldFailure(data, "start_date", cfg.StartDate, doc)
	}

	if open, ok := extractAmount(doc, cfg.OpeningBalance, formats); ok {
		if cfg.OpeningBalance.Invert {
			open = open.Neg()
		}
		data.OpeningBalance = open
		data.HasOpeningBalance = true
	} else {
		recordFieldFailure(data, "opening_balance", cfg.OpeningBalance, doc)
	}

	if closeBal, ok := extractAmount(doc, cfg.ClosingBalance, formats); ok {
		if cfg.ClosingBalance.Invert {
			closeBal = closeBal.Neg()
		}
		data.ClosingBalance = closeBal
		data.HasClosingBalance = true
	} else {
		recordFieldFailure(data, "closing_balance", cfg.ClosingBalance, doc)
	}
}

func toStatementDate(d format.Date) statement.Date {
	sd := statement.Date{Month: d.Month, Day: d.Day}
	if d.Year != nil {
		sd.Year = *d.Year
	} else {
		sd.YearInferred = true
	}
	return sd
}

func findAnchor(doc fragment.Stream, terms []string) (int, bool) {
	if len(terms) == 0 {
		return -1, false
	}
	for i, f := range doc {
		for _, term := range terms {
			if f.Contains(term) {
				return i, true
			}
		}
	}
	return -1, false
}

func recordFieldFailure(data *statement.Data, field string, f config.PreambleField, doc fragment.Stream) {
	if _, found := findAnchor(doc, f.Terms); !found {
		data.AddError(statement.Error{
			Kind:    statement.ErrMissingAnchor,
			Field:   field,
			Message: "no fragment matched any configured term for " + field,
		})
		return
	}
	data.AddError(statement.Error{
		Kind:    statement.ErrUnparseableValue,
		Field:   field,
		Message: "anchor found but no candidate fragment parsed under the configured formats for " + field,
	})
}

func extractAccountNumber(doc fragment.Stream, f config.PreambleField) (string, bool) {
	anchorIdx, found := findAnchor(doc, f.Terms)
	if !found {
		return "", false
	}
	anchor := doc[anchorIdx]

	patterns := make([]*regexp.Regexp, 0, len(f.Patterns))
	for _, p := range f.Patterns {
		if re, err := regexp.Compile(p); err == nil {
			patterns = append(patterns, re)
		}
	}

	for i := anchorIdx; i < len(doc); i++ {
		cand := doc[i]
		if f.Align != fragment.AlignNone && !fragment.Aligned(anchor, cand, f.Align, f.Tolerance) {
			continue
		}
		window := sameLineWindow(doc, i)
		for _, re := range patterns {
			if m := re.FindString(window); m != "" {
				return m, true
			}
		}
	}
	return "", false
}

func extractAmount(doc fragment.Stream, f config.PreambleField, formats *format.Registry) (money.Money, bool) {
	anchorIdx, found := findAnchor(doc, f.Terms)
	if !found {
		return money.Money{}, false
	}
	anchor := doc[anchorIdx]

	for i := anchorIdx; i < len(doc); i++ {
		cand := doc[i]
		if f.Align != fragment.AlignNone && !fragment.Aligned(anchor, cand, f.Align, f.Tolerance) {
			continue
		}
		if result, ok := formats.ParseAmount(cand.Text, f.Formats); ok {
			return result.Value, true
		}
	}
	return money.Money{}, false
}

func extractDate(doc fragment.Stream, f config.PreambleField, formats *format.Registry) (format.Date, bool) {
	anchorIdx, found := findAnchor(doc, f.Terms)
	if !found {
		return format.Date{}, false
	}
	anchor := doc[anchorIdx]

	for i := anchorIdx; i < len(doc); i++ {
		cand := doc[i]
		if f.Align != fragment.AlignNone && !fragment.Aligned(anchor, cand, f.Align, f.Tolerance) {
			continue
		}
		if result, ok := formats.ParseDate(cand.Text, f.Formats); ok {
			return result.Value, true
		}
	}
	return format.Date{}, false
}

// sameLineWindow concatenates fragment i with its same-line neighbors,
// so an account number split across fragments still matches the
// configured patterns.
func sameLineWindow(doc fragment.Stream, i int) string {
	window := doc[i].Text
	for j := i + 1; j < len(doc) && fragment.SameLine(doc[i], doc[j], 2.0); j++ {
		window += " " + doc[j].Text
	}
	return window
}
