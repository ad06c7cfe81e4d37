// Package writer renders a statement.Data result to CSV or XLSX,
// grounded on the teacher's internal/writer/csv.go — generalized from
// one hardcoded StatementInfo shape to the declarative engine's
// statement.Data/statement.Transaction.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/statementcore/corebank/internal/statement"
)

// CSVWriter writes a statement.Data result to CSV.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes data to a CSV file at path.
func (w *CSVWriter) WriteToFile(path string, data *statement.Data) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, data)
}

// Write writes data in CSV format to out.
func (w *CSVWriter) Write(out io.Writer, data *statement.Data) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if w.IncludeHeader {
		writer.Write([]string{"# Config", data.ConfigKey})
		if data.HasAccountNumber {
			writer.Write([]string{"# Account Number", data.AccountNumber})
		}
		if data.HasStartDate {
			writer.Write([]string{"# Start Date", data.StartDate.ISO()})
		}
		if data.HasOpeningBalance {
			writer.Write([]string{"# Opening Balance", data.OpeningBalance.String()})
		}
		if data.HasClosingBalance {
			writer.Write([]string{"# Closing Balance", data.ClosingBalance.String()})
		}
	}

	header := []string{"date", "description", "amount", "balance"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range data.Transactions {
		balance := ""
		if txn.Balance != nil {
			balance = txn.Balance.String()
		}
		row := []string{
			txn.Date.ISO(),
			txn.Description,
			txn.Amount.String(),
			balance,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}
