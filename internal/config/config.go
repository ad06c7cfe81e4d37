// Package config implements C4 (the declarative per-statement ruleset)
// and C5 (the registry that stores configs and selects the ones
// applicable to a document).
//
// This is the module's central departure from the teacher: the
// teacher hardcoded three bank-specific Go parsers (metro.go, hsbc.go,
// barclays.go), each a bespoke tangle of regexes and state. Here that
// knowledge — header terms, stop terms, date/amount format preference,
// sign conventions — becomes data a single generic engine consumes.
package config

import (
	"fmt"
	"regexp"

	"github.com/statementcore/corebank/internal/fragment"
)

// AccountType enumerates the statement types a Config may describe.
type AccountType string

const (
	Checking      AccountType = "Checking"
	Savings       AccountType = "Savings"
	CreditCard    AccountType = "Credit Card"
	Loan          AccountType = "Loan"
	Mortgage      AccountType = "Mortgage"
	Investment    AccountType = "Investment"
	MixedAccount  AccountType = "Mixed"
	OtherAccount  AccountType = "Other"
)

var validAccountTypes = map[AccountType]bool{
	Checking: true, Savings: true, CreditCard: true, Loan: true,
	Mortgage: true, Investment: true, MixedAccount: true, OtherAccount: true,
}

// Slot names one of the four transaction-record fields, in the order
// transaction_formats may arrange them.
type Slot string

const (
	SlotDate        Slot = "date"
	SlotDescription Slot = "description"
	SlotAmount      Slot = "amount"
	SlotBalance     Slot = "balance"
)

// PreambleField is the per-field extraction rule for one of the four
// preamble targets (account_number, opening_balance, closing_balance,
// start_date) described in spec.md §4.5.
type PreambleField struct {
	Terms     []string
	Align     fragment.Align
	Tolerance float64
	Formats   []string // amount/date format labels; unused for account_number
	Invert    bool      // balances only
	Patterns  []string  // account_number only: regexes the candidate must match
}

// Config is an immutable, value-only declarative record describing how
// to locate and parse one statement type.
type Config struct {
	Key          string
	AccountType  AccountType
	AccountTerms []string

	AccountNumber   PreambleField
	OpeningBalance  PreambleField
	ClosingBalance  PreambleField
	StartDate       PreambleField

	TransactionTerms     []string
	TransactionTermsStop []string

	DateHeaders         []string
	DescriptionHeaders  []string
	AmountHeaders       []string
	AmountInvertHeaders []string
	BalanceHeaders      []string

	TransactionAlignment    fragment.Align // x1 or x2
	TransactionAlignmentTol float64

	TransactionFormats            [][]Slot
	TransactionDateFormats        []string
	TransactionAmountFormats      []string
	TransactionBalanceFormats     []string
	TransactionAmountInvert       bool
	TransactionDescriptionExclude []string
	TransactionNewLineTol         float64
	TransactionStartDateRequired  bool

	// LayoutYBin/LayoutXGap hold per-statement-type C2 parameters
	// (SPEC_FULL addition); Validate rejects negative values. The CLI,
	// batch and API paths normalize with fixed parameters, so these
	// values are not applied to normalization.
	LayoutYBin float64
	LayoutXGap float64

	// sourceText optionally retains the JSON this Config was parsed
	// from, for diagnostics (registry.Register's retainSource option).
	sourceText string
}

var keyPattern = regexp.MustCompile(`^[a-z]{2}__[a-z0-9]+__[a-z0-9_]+__[0-9]+$`)

func validAlign(a fragment.Align) bool {
	switch a {
	case fragment.AlignX1, fragment.AlignX2, fragment.AlignY1, fragment.AlignY2, fragment.AlignNone:
		return true
	default:
		return false
	}
}

// Validate checks the structural invariants in spec.md §4.4. formats is
// the format.Registry the config's labels must be registered in.
func (c Config) Validate(formats FormatChecker) error {
	if !keyPattern.MatchString(c.Key) {
		return fmt.Errorf("config %q: key does not match ^[a-z]{2}__[a-z0-9]+__[a-z0-9_]+__[0-9]+$", c.Key)
	}
	if !validAccountTypes[c.AccountType] {
		return fmt.Errorf("config %q: invalid account_type %q", c.Key, c.AccountType)
	}
	if len(c.AccountTerms) == 0 {
		return fmt.Errorf("config %q: account_terms must be non-empty", c.Key)
	}

	for name, f := range map[string]PreambleField{
		"account_number":   c.AccountNumber,
		"opening_balance":  c.OpeningBalance,
		"closing_balance":  c.ClosingBalance,
		"start_date":       c.StartDate,
	} {
		if !validAlign(f.Align) {
			return fmt.Errorf("config %q: field %s has invalid alignment %q", c.Key, name, f.Align)
		}
		if f.Tolerance < 0 {
			return fmt.Errorf("config %q: field %s has negative tolerance", c.Key, name)
		}
		for _, label := range f.Formats {
			if name == "account_number" {
				continue
			}
			if name == "start_date" {
				if !formats.HasDateFormat(label) {
					return fmt.Errorf("config %q: field %s references unregistered date format %q", c.Key, name, label)
				}
			} else if !formats.HasAmountFormat(label) {
				return fmt.Errorf("config %q: field %s references unregistered amount format %q", c.Key, name, label)
			}
		}
	}

	if !validAlign(c.TransactionAlignment) {
		return fmt.Errorf("config %q: transaction_alignment invalid %q", c.Key, c.TransactionAlignment)
	}
	if c.TransactionAlignmentTol < 0 {
		return fmt.Errorf("config %q: transaction_alignment_tol negative", c.Key)
	}
	if c.TransactionNewLineTol < 0 {
		return fmt.Errorf("config %q: transaction_new_line_tol negative", c.Key)
	}
	if c.LayoutYBin < 0 || c.LayoutXGap < 0 {
		return fmt.Errorf("config %q: layout tolerances must be non-negative", c.Key)
	}

	for _, label := range c.TransactionDateFormats {
		if !formats.HasDateFormat(label) {
			return fmt.Errorf("config %q: transaction_date_formats references unregistered label %q", c.Key, label)
		}
	}
	for _, label := range c.TransactionAmountFormats {
		if !formats.HasAmountFormat(label) {
			return fmt.Errorf("config %q: transaction_amount_formats references unregistered label %q", c.Key, label)
		}
	}
	for _, label := range c.TransactionBalanceFormats {
		if !formats.HasAmountFormat(label) {
			return fmt.Errorf("config %q: transaction_balance_formats references unregistered label %q", c.Key, label)
		}
	}

	if len(c.DateHeaders) == 0 || len(c.DescriptionHeaders) == 0 || len(c.AmountHeaders) == 0 {
		return fmt.Errorf("config %q: date, description, and amount headers are required", c.Key)
	}

	for _, re := range c.TransactionDescriptionExclude {
		if _, err := regexp.Compile(re); err != nil {
			return fmt.Errorf("config %q: invalid transaction_description_exclude pattern %q: %w", c.Key, re, err)
		}
	}
	for _, re := range c.AccountNumber.Patterns {
		if _, err := regexp.Compile(re); err != nil {
			return fmt.Errorf("config %q: invalid account_number pattern %q: %w", c.Key, re, err)
		}
	}

	return nil
}

// FormatChecker is the subset of format.Registry's API Config.Validate
// needs, kept narrow so config does not import format directly (and
// vice versa) and create a cycle with statement orchestration.
type FormatChecker interface {
	HasAmountFormat(label string) bool
	HasDateFormat(label string) bool
}
