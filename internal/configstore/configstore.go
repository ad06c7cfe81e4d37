// Package configstore loads Config on-the-wire JSON records (spec.md
// §6) from disk into in-memory config.Config values, the only form
// the core itself consumes. File I/O and JSON decoding are the
// external collaborator spec.md scopes out of the core; this package
// is the thin adapter the host program uses to populate a
// config.Registry before driving the core.
package configstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/statementcore/corebank/internal/config"
	"github.com/statementcore/corebank/internal/fragment"
)

type preambleFieldWire struct {
	Terms     []string `json:"terms"`
	Align     string   `json:"align"`
	Tolerance float64  `json:"tolerance"`
	Formats   []string `json:"formats,omitempty"`
	Invert    bool     `json:"invert,omitempty"`
	Patterns  []string `json:"patterns,omitempty"`
}

type configWire struct {
	Key          string   `json:"key"`
	AccountType  string   `json:"account_type"`
	AccountTerms []string `json:"account_terms"`

	AccountNumber  preambleFieldWire `json:"account_number"`
	OpeningBalance preambleFieldWire `json:"opening_balance"`
	ClosingBalance preambleFieldWire `json:"closing_balance"`
	StartDate      preambleFieldWire `json:"start_date"`

	TransactionTerms     []string `json:"transaction_terms"`
	TransactionTermsStop []string `json:"transaction_terms_stop,omitempty"`

	DateHeaders         []string `json:"date_headers"`
	DescriptionHeaders  []string `json:"description_headers"`
	AmountHeaders       []string `json:"amount_headers"`
	AmountInvertHeaders []string `json:"amount_invert_headers,omitempty"`
	BalanceHeaders      []string `json:"balance_headers,omitempty"`

	TransactionAlignment    string  `json:"transaction_alignment"`
	TransactionAlignmentTol float64 `json:"transaction_alignment_tol"`

	TransactionFormats            [][]string `json:"transaction_formats"`
	TransactionDateFormats        []string   `json:"transaction_date_formats,omitempty"`
	TransactionAmountFormats      []string   `json:"transaction_amount_formats,omitempty"`
	TransactionBalanceFormats     []string   `json:"transaction_balance_formats,omitempty"`
	TransactionAmountInvert       bool       `json:"transaction_amount_invert,omitempty"`
	TransactionDescriptionExclude []string   `json:"transaction_description_exclude,omitempty"`
	TransactionNewLineTol         float64    `json:"transaction_new_line_tol,omitempty"`
	TransactionStartDateRequired  bool       `json:"transaction_start_date_required,omitempty"`

	LayoutYBin float64 `json:"layout_y_bin,omitempty"`
	LayoutXGap float64 `json:"layout_x_gap,omitempty"`
}

// Parse decodes raw JSON into a config.Config, rejecting unknown keys.
// It does not validate the result against a format.Registry — callers
// should call Config.Validate (via Registry.Register) themselves.
func Parse(raw []byte) (config.Config, error) {
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.DisallowUnknownFields()

	var w configWire
	if err := dec.Decode(&w); err != nil {
		return config.Config{}, fmt.Errorf("configstore: decode: %w", err)
	}

	toSlots := func(rows [][]string) [][]config.Slot {
		out := make([][]config.Slot, 0, len(rows))
		for _, row := range rows {
			seq := make([]config.Slot, 0, len(row))
			for _, s := range row {
				seq = append(seq, config.Slot(s))
			}
			out = append(out, seq)
		}
		return out
	}

	field := func(w preambleFieldWire) config.PreambleField {
		align := fragment.Align(w.Align)
		if align == "" {
			align = fragment.AlignNone
		}
		return config.PreambleField{
			Terms:     w.Terms,
			Align:     align,
			Tolerance: w.Tolerance,
			Formats:   w.Formats,
			Invert:    w.Invert,
			Patterns:  w.Patterns,
		}
	}

	txnAlign := fragment.Align(w.TransactionAlignment)
	if txnAlign == "" {
		txnAlign = fragment.AlignNone
	}

	return config.Config{
		Key:          w.Key,
		AccountType:  config.AccountType(w.AccountType),
		AccountTerms: w.AccountTerms,

		AccountNumber:  field(w.AccountNumber),
		OpeningBalance: field(w.OpeningBalance),
		ClosingBalance: field(w.ClosingBalance),
		StartDate:      field(w.StartDate),

		TransactionTerms:     w.TransactionTerms,
		TransactionTermsStop: w.TransactionTermsStop,

		DateHeaders:         w.DateHeaders,
		DescriptionHeaders:  w.DescriptionHeaders,
		AmountHeaders:       w.AmountHeaders,
		AmountInvertHeaders: w.AmountInvertHeaders,
		BalanceHeaders:      w.BalanceHeaders,

		TransactionAlignment:    txnAlign,
		TransactionAlignmentTol: w.TransactionAlignmentTol,

		TransactionFormats:            toSlots(w.TransactionFormats),
		TransactionDateFormats:        w.TransactionDateFormats,
		TransactionAmountFormats:      w.TransactionAmountFormats,
		TransactionBalanceFormats:     w.TransactionBalanceFormats,
		TransactionAmountInvert:       w.TransactionAmountInvert,
		TransactionDescriptionExclude: w.TransactionDescriptionExclude,
		TransactionNewLineTol:         w.TransactionNewLineTol,
		TransactionStartDateRequired:  w.TransactionStartDateRequired,

		LayoutYBin: w.LayoutYBin,
		LayoutXGap: w.LayoutXGap,
	}, nil
}

// LoadFile reads and parses one config JSON file.
func LoadFile(path string) (config.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("configstore: read %s: %w", path, err)
	}
	cfg, err := Parse(raw)
	if err != nil {
		return config.Config{}, fmt.Errorf("configstore: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDir reads every *.json file in dir (non-recursive, sorted by
// name for deterministic registration order) and registers each into
// registry.
func LoadDir(dir string, registry *config.Registry, formats config.FormatChecker) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("configstore: read dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		cfg, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if err := registry.Register(cfg, formats); err != nil {
			return fmt.Errorf("configstore: %s: %w", name, err)
		}
	}
	return nil
}
