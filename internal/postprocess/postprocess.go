// Package postprocess implements C8: year back-fill, implicit balance
// synthesis, description cleanup (already applied in C7, see table
// package), and the arithmetic/ordering validation of spec.md §4.7.
package postprocess

import (
	"fmt"

	"github.com/statementcore/corebank/internal/config"
	"github.com/statementcore/corebank/internal/money"
	"github.com/statementcore/corebank/internal/statement"
)

// Tolerance is the ±0.005 arithmetic tolerance from spec.md §4.7/§8.
// Every Money value carries exactly two fractional digits, so any
// nonzero difference is at least 0.01 and ±0.005 means exact equality.
var Tolerance = money.Zero

// Process applies year back-fill, implicit balance synthesis, and the
// arithmetic/date-ordering validation to data in place.
func Process(cfg config.Config, data *statement.Data) {
	backfillYears(data)
	synthesizeBalances(data)
	validateArithmetic(data)
	validateOrdering(data)
}

// backfillYears gives any year-inferred transaction date the start
// date's year, advancing by 12 months whenever month decreases across
// successive transactions (spec.md §4.7).
func backfillYears(data *statement.Data) {
	if !data.HasStartDate {
		return
	}
	year := data.StartDate.Year
	lastMonth := data.StartDate.Month

	for i := range data.Transactions {
		t := &data.Transactions[i]
		if !t.Date.YearInferred {
			lastMonth = t.Date.Month
			continue
		}
		if t.Date.Month < lastMonth {
			year++
		}
		t.Date.Year = year
		t.Date.YearInferred = false
		lastMonth = t.Date.Month
	}
}

// synthesizeBalances fills in the running balance for any transaction
// lacking an explicit one, seeded by opening_balance.
func synthesizeBalances(data *statement.Data) {
	running := data.OpeningBalance
	hasRunning := data.HasOpeningBalance

	for i := range data.Transactions {
		t := &data.Transactions[i]
		if t.Balance != nil {
			running = *t.Balance
			hasRunning = true
			continue
		}
		if !hasRunning {
			continue
		}
		running = running.Add(t.Amount)
		b := running
		t.Balance = &b
	}
}

func validateArithmetic(data *statement.Data) {
	if !data.HasOpeningBalance {
		return
	}

	sum := data.OpeningBalance
	running := data.OpeningBalance
	for _, t := range data.Transactions {
		sum = sum.Add(t.Amount)
		running = running.Add(t.Amount)
		if t.Balance != nil && !t.Balance.WithinTolerance(running, Tolerance) {
			data.AddError(statement.Error{
				Kind:    statement.ErrArithmeticMismatch,
				Message: fmt.Sprintf("explicit balance %s does not match running balance %s", t.Balance.String(), running.String()),
			})
		}
		if t.Balance != nil {
			running = *t.Balance
		}
	}

	if data.HasClosingBalance && !sum.WithinTolerance(data.ClosingBalance, Tolerance) {
		data.AddError(statement.Error{
			Kind:    statement.ErrArithmeticMismatch,
			Message: fmt.Sprintf("opening + sum(amounts) %s does not equal closing balance %s", sum.String(), data.ClosingBalance.String()),
		})
	}
}

func validateOrdering(data *statement.Data) {
	for i := 1; i < len(data.Transactions); i++ {
		prev := data.Transactions[i-1].Date
		cur := data.Transactions[i].Date
		if cur.Before(prev) {
			data.AddError(statement.Error{
				Kind:    statement.ErrArithmeticMismatch,
				Message: fmt.Sprintf("transaction date %s is out of order after %s", cur.ISO(), prev.ISO()),
			})
		}
	}
}
