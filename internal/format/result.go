package format

import "github.com/statementcore/corebank/internal/money"

// AmountResult is a successfully parsed amount plus the label of the
// format that parsed it — preamble/table fields record this so the
// invariant "every set field was parsed by a declared format label"
// (spec.md §8) is checkable.
type AmountResult struct {
	Value money.Money
	Label string
}

// DateResult is a successfully parsed date plus the label of the
// format that parsed it.
type DateResult struct {
	Value Date
	Label string
}
