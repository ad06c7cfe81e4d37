// Package statement holds the StatementData data model and the
// Driver that orchestrates C6 (preamble) → C7 (transaction table) →
// C8 (post-process/validate) per candidate config, returning the
// first error-free result or the full diagnostic list (spec.md §4.8).
package statement

import (
	"fmt"

	"github.com/statementcore/corebank/internal/fragment"
	"github.com/statementcore/corebank/internal/money"
)

// Date is an ISO-calendar date; Year may be marked inferred when
// derived from the statement window rather than parsed directly
// (spec.md §3, StatementDate).
type Date struct {
	Year         int
	Month        int
	Day          int
	YearInferred bool
}

// ISO renders the date as YYYY-MM-DD.
func (d Date) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Before reports whether d sorts strictly before other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// Span is the contiguous range of fragment indices a record was
// assembled from, into the FragmentStream it was extracted from.
type Span struct {
	Start int
	End   int
}

// Transaction is one statement line item.
type Transaction struct {
	Date        Date
	Description string
	Amount      money.Money
	Balance     *money.Money
	SourceSpan  Span
}

// ErrorKind enumerates the externally-visible failure kinds (spec.md
// §7). All are non-fatal within a single extraction attempt except
// InvalidConfig (fatal to that config) and NoApplicableConfig (fatal
// to the document).
type ErrorKind string

const (
	ErrInvalidConfig      ErrorKind = "InvalidConfig"
	ErrNoApplicableConfig ErrorKind = "NoApplicableConfig"
	ErrMissingAnchor      ErrorKind = "MissingAnchor"
	ErrUnparseableValue   ErrorKind = "UnparseableValue"
	ErrMissingHeader      ErrorKind = "MissingHeader"
	ErrRecordParseFailure ErrorKind = "RecordParseFailure"
	ErrArithmeticMismatch ErrorKind = "ArithmeticMismatch"
	ErrAmbiguousAlignment ErrorKind = "AmbiguousAlignment"
)

// Error is a structured, non-fatal extraction failure.
type Error struct {
	Kind     ErrorKind
	Message  string
	Field    string
	Fragment *fragment.Fragment
}

func (e Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Data is the result of attempting extraction under one candidate
// config — built left-to-right, append-only.
type Data struct {
	ConfigKey string

	AccountNumber string
	HasAccountNumber bool

	StartDate    Date
	HasStartDate bool

	OpeningBalance    money.Money
	HasOpeningBalance bool

	ClosingBalance    money.Money
	HasClosingBalance bool

	Transactions []Transaction
	Errors       []Error
}

// AddError appends a non-retracting error record.
func (d *Data) AddError(e Error) {
	d.Errors = append(d.Errors, e)
}

// ErrorFree reports whether d has no recorded errors — including
// arithmetic-invariant violations, which C8 records as Errors rather
// than discarding the attempt (spec.md §3 "Error-free").
func (d *Data) ErrorFree() bool {
	return len(d.Errors) == 0
}
