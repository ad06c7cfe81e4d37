// Package table implements C7: detecting the transaction table,
// discovering column anchors, and assembling transaction records via
// the SEEK_FIELD_START / IN_RECORD / TERMINAL state machine of spec.md
// §4.6.
package table

import (
	"regexp"
	"strings"

	"github.com/statementcore/corebank/internal/config"
	"github.com/statementcore/corebank/internal/format"
	"github.com/statementcore/corebank/internal/fragment"
	"github.com/statementcore/corebank/internal/statement"
)

type column struct {
	slot     config.Slot
	anchorX  float64
	align    fragment.Align
	invert   bool
	declOrder int
}

// Extract locates the transaction table in doc and appends assembled
// transactions to data, recording MissingHeader/RecordParseFailure
// errors as described in spec.md §4.6.
func Extract(doc fragment.Stream, cfg config.Config, formats *format.Registry, data *statement.Data) {
	anchorIdx := findFirst(doc, 0, len(doc), cfg.TransactionTerms)
	if anchorIdx < 0 {
		data.AddError(statement.Error{
			Kind:    statement.ErrMissingAnchor,
			Field:   "transaction_table",
			Message: "no fragment matched any configured transaction_terms anchor",
		})
		return
	}

	start := anchorIdx + 1
	stop := findFirst(doc, start+1, len(doc), cfg.TransactionTermsStop)
	if stop < 0 {
		stop = len(doc)
	}

	cols, headerEnd, err := locateColumns(doc, cfg, start, stop)
	if err != nil {
		data.AddError(*err)
		return
	}

	bodyStart := headerEnd + 1
	if bodyStart > stop {
		bodyStart = stop
	}

	assemble(doc, cfg, formats, cols, bodyStart, stop, data)
}

func findFirst(doc fragment.Stream, from, to int, terms []string) int {
	if from < 0 {
		from = 0
	}
	if to > len(doc) {
		to = len(doc)
	}
	for i := from; i < to; i++ {
		for _, term := range terms {
			if doc[i].Contains(term) {
				return i
			}
		}
	}
	return -1
}

func locateColumns(doc fragment.Stream, cfg config.Config, start, stop int) ([]column, int, *statement.Error) {
	type spec struct {
		slot    config.Slot
		terms   []string
		invert  bool
		order   int
		required bool
	}
	specs := []spec{
		{config.SlotDate, cfg.DateHeaders, false, 0, true},
		{config.SlotDescription, cfg.DescriptionHeaders, false, 1, true},
		{config.SlotAmount, cfg.AmountHeaders, false, 2, true},
		{config.SlotAmount, cfg.AmountInvertHeaders, true, 3, false},
		{config.SlotBalance, cfg.BalanceHeaders, false, 4, len(cfg.TransactionBalanceFormats) > 0},
	}

	var cols []column
	headerEnd := start
	for _, s := range specs {
		if len(s.terms) == 0 {
			if s.required {
				return nil, 0, &statement.Error{
					Kind:    statement.ErrMissingHeader,
					Field:   string(s.slot),
					Message: "config declares no header terms for required column " + string(s.slot),
				}
			}
			continue
		}
		idx := findFirst(doc, start, stop, s.terms)
		if idx < 0 {
			if s.required {
				return nil, 0, &statement.Error{
					Kind:    statement.ErrMissingHeader,
					Field:   string(s.slot),
					Message: "no header fragment found for required column " + string(s.slot),
				}
			}
			continue
		}
		if idx > headerEnd {
			headerEnd = idx
		}
		cols = append(cols, column{
			slot:      s.slot,
			anchorX:   doc[idx].Coord(cfg.TransactionAlignment),
			align:     cfg.TransactionAlignment,
			invert:    s.invert,
			declOrder: s.order,
		})
	}
	return cols, headerEnd, nil
}

// classify returns the column a fragment aligns with, or (-1,false)
// if it aligns with none. Ties broken by smallest absolute offset,
// then by column declaration order (spec.md §4.6).
func classify(f fragment.Fragment, cols []column, tol float64) (int, bool) {
	best := -1
	bestOffset := tol + 1
	for i, c := range cols {
		offset := f.Coord(c.align) - c.anchorX
		if offset < 0 {
			offset = -offset
		}
		if offset > tol {
			continue
		}
		if best == -1 || offset < bestOffset ||
			(offset == bestOffset && cols[i].declOrder < cols[best].declOrder) {
			best = i
			bestOffset = offset
		}
	}
	return best, best != -1
}

// firstSlotFormats returns every configured transaction format whose
// first slot is slot.
func firstSlotFormats(cfg config.Config, slot config.Slot) [][]config.Slot {
	var out [][]config.Slot
	for _, f := range cfg.TransactionFormats {
		if len(f) > 0 && f[0] == slot {
			out = append(out, f)
		}
	}
	return out
}

// record accumulates fragments for one transaction under a chosen
// transaction_formats sequence. filled counts how many leading slots
// of format have been reached; format[filled-1] is the "current slot"
// that plain extension appends to, format[filled] (if any) is the
// "next expected slot" whose arrival advances the pointer.
type record struct {
	format          []config.Slot
	filled          int
	date            string
	description     strings.Builder
	amount          string
	amountInvertCol bool
	balance         string
	hasBalance      bool
	start           int
	end             int
	lastFragY       float64
}

// assemble drives the record state machine. Every transaction_formats
// entry sharing the record's first slot is accumulated in lockstep as
// a separate candidate record spanning the same fragments (spec.md
// §4.6 "Multiple formats": the set is attempted greedily in list
// order); at record boundaries the candidates are validated in
// declared order and the first to pass wins, so a later candidate
// backstops an earlier one that misclassifies the slot sequence.
func assemble(doc fragment.Stream, cfg config.Config, formats *format.Registry, cols []column, start, stop int, data *statement.Data) {
	var cur []*record
	var lastDate *statement.Date

	finish := func() {
		if len(cur) == 0 {
			return
		}
		var best statement.Transaction
		accepted := false
		for _, r := range cur {
			txn, ok := validateRecord(r, cfg, formats, lastDate)
			if ok {
				best = txn
				accepted = true
				break
			}
		}
		if !accepted {
			data.AddError(statement.Error{
				Kind:    statement.ErrRecordParseFailure,
				Message: "transaction record could not be assembled under any configured format",
			})
		} else {
			lastDate = &best.Date
			data.Transactions = append(data.Transactions, best)
		}
		cur = nil
	}

	for i := start; i < stop; i++ {
		f := doc[i]
		colIdx, aligned := classify(f, cols, cfg.TransactionAlignmentTol)
		if !aligned {
			continue
		}
		slot := cols[colIdx].slot

		newLine := len(cur) > 0 && hasYGap(f, cur[0].lastFragY, cfg.TransactionNewLineTol)
		if len(cur) > 0 && newLine && slot == cur[0].format[0] {
			finish()
		}

		if len(cur) == 0 {
			candidates := firstSlotFormats(cfg, slot)
			if len(candidates) == 0 {
				continue
			}
			cur = make([]*record, len(candidates))
			for ci, cand := range candidates {
				r := &record{format: cand, filled: 1, start: i, end: i, lastFragY: f.Y1}
				appendSlot(r, cols[colIdx], f, cfg)
				cur[ci] = r
			}
			continue
		}

		for _, r := range cur {
			r.end = i
			switch {
			case r.filled < len(r.format) && slot == r.format[r.filled]:
				r.filled++
				appendSlot(r, cols[colIdx], f, cfg)
			case r.filled > 0 && slot == r.format[r.filled-1]:
				appendSlot(r, cols[colIdx], f, cfg)
			}
			r.lastFragY = f.Y1
		}
	}
	finish()
}

func hasYGap(f fragment.Fragment, prevY, tol float64) bool {
	gap := f.Y1 - prevY
	if gap < 0 {
		gap = -gap
	}
	return gap > tol
}

func appendSlot(r *record, col column, f fragment.Fragment, cfg config.Config) {
	switch col.slot {
	case config.SlotDate:
		r.date = joinContent(r.date, f.Text)
	case config.SlotDescription:
		if r.description.Len() > 0 && hasYGap(f, r.lastFragY, cfg.TransactionNewLineTol) {
			r.description.WriteString("\n")
		} else if r.description.Len() > 0 {
			r.description.WriteString(" ")
		}
		r.description.WriteString(f.Text)
	case config.SlotAmount:
		r.amount = joinContent(r.amount, f.Text)
		if col.invert {
			r.amountInvertCol = true
		}
	case config.SlotBalance:
		r.balance = joinContent(r.balance, f.Text)
		r.hasBalance = true
	}
}

func joinContent(existing, add string) string {
	if existing == "" {
		return add
	}
	return existing + " " + add
}

func validateRecord(r *record, cfg config.Config, formats *format.Registry, lastDate *statement.Date) (statement.Transaction, bool) {
	var txn statement.Transaction
	txn.SourceSpan = statement.Span{Start: r.start, End: r.end}

	hasDateSlot := slotIn(r.format, config.SlotDate)
	if hasDateSlot {
		d, ok := formats.ParseDate(r.date, cfg.TransactionDateFormats)
		if !ok {
			return txn, false
		}
		txn.Date = dateFromFormat(d.Value)
	} else if cfg.TransactionStartDateRequired && lastDate != nil {
		txn.Date = *lastDate
	} else {
		return txn, false
	}

	desc := cleanDescription(r.description.String(), cfg.TransactionDescriptionExclude)
	if desc == "" {
		return txn, false
	}
	txn.Description = desc

	if r.amount == "" {
		return txn, false
	}
	amt, ok := formats.ParseAmount(r.amount, cfg.TransactionAmountFormats)
	if !ok {
		return txn, false
	}
	value := amt.Value
	if cfg.TransactionAmountInvert {
		value = value.Neg()
	}
	if r.amountInvertCol {
		value = value.Neg()
	}
	txn.Amount = value

	if r.hasBalance {
		bal, ok := formats.ParseAmount(r.balance, cfg.TransactionBalanceFormats)
		if !ok {
			return txn, false
		}
		b := bal.Value
		txn.Balance = &b
	}

	return txn, true
}

func slotIn(seq []config.Slot, s config.Slot) bool {
	for _, v := range seq {
		if v == s {
			return true
		}
	}
	return false
}

func dateFromFormat(d format.Date) statement.Date {
	sd := statement.Date{Month: d.Month, Day: d.Day}
	if d.Year != nil {
		sd.Year = *d.Year
	} else {
		sd.YearInferred = true
	}
	return sd
}

var wsCollapse = regexp.MustCompile(`\s+`)

// cleanDescription applies exclude-pattern removals before whitespace
// collapse (spec.md §9 Open Question (a): excludes run on the raw
// concatenation, collapse happens after) and trims the result.
func cleanDescription(raw string, excludes []string) string {
	s := raw
	for _, pattern := range excludes {
		re, err := regexp.Compile(pattern)
		if err != nil {
			continue
		}
		s = re.ReplaceAllString(s, "")
	}
	s = wsCollapse.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
