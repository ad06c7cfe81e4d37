// Package api exposes the extraction engine over HTTP via Fiber,
// grounded on the teacher's main.go Fiber wiring (app.Group("/api"),
// recover/logger/cors middleware) — handler.go itself is rewritten
// around the Fiber *fiber.Ctx signature main.go actually calls,
// generalized from one hardcoded bank parser to the config-driven
// statement.Driver.
package api

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/statementcore/corebank/internal/config"
	"github.com/statementcore/corebank/internal/extractor"
	"github.com/statementcore/corebank/internal/format"
	"github.com/statementcore/corebank/internal/layout"
	"github.com/statementcore/corebank/internal/statement"
	"github.com/statementcore/corebank/internal/writer"
)

// Server holds the dependencies the HTTP handlers close over.
type Server struct {
	Driver  *statement.Driver
	Configs *config.Registry
	Formats *format.Registry
	Version string
}

// RegisterRoutes wires /api/convert, /api/health, and /api/configs onto
// app's /api group, matching the teacher's route layout.
func (s *Server) RegisterRoutes(app *fiber.App) {
	apiGroup := app.Group("/api")
	apiGroup.Get("/health", s.HandleHealth)
	apiGroup.Get("/configs", s.HandleConfigs)
	apiGroup.Post("/convert", s.HandleConvert)
}

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success      bool                    `json:"success"`
	Error        string                  `json:"error,omitempty"`
	ConfigKey    string                  `json:"configKey,omitempty"`
	AccountInfo  *AccountInfo            `json:"accountInfo,omitempty"`
	Transactions []transactionJSON       `json:"transactions"`
	CSV          string                  `json:"csv,omitempty"`
	TotalDebit   float64                 `json:"totalDebit"`
	TotalCredit  float64                 `json:"totalCredit"`
	Count        int                     `json:"count"`
	Errors       []statementErrorJSON    `json:"errors,omitempty"`
	Version      string                  `json:"version,omitempty"`
}

type transactionJSON struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Balance     float64 `json:"balance,omitempty"`
}

type statementErrorJSON struct {
	Kind    string `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// AccountInfo holds account metadata for the JSON response.
type AccountInfo struct {
	Number         string `json:"number,omitempty"`
	StartDate      string `json:"startDate,omitempty"`
	OpeningBalance string `json:"openingBalance,omitempty"`
	ClosingBalance string `json:"closingBalance,omitempty"`
}

func (s *Server) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": s.Version,
		"configs": len(s.Configs.Keys()),
	})
}

// HandleConfigs lists every registered config key. HandleConvert
// always auto-detects the config; it takes no config override.
func (s *Server) HandleConfigs(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"configs": s.Configs.Keys()})
}

func (s *Server) HandleConvert(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "Only PDF files are supported.")
	}

	includeHeader := c.FormValue("header") != "false"

	tmpFile, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to create temp file.")
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	uploaded, err := fileHeader.Open()
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to open uploaded file.")
	}
	defer uploaded.Close()
	if _, err := io.Copy(tmpFile, uploaded); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to save uploaded file.")
	}
	tmpFile.Close()

	rawPages, err := extractor.ExtractFragments(tmpFile.Name())
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, "PDF extraction failed: "+err.Error())
	}
	doc := layout.Normalize(rawPages, layout.Params{YBin: 2.0, XGap: 1.5})

	data, _, err := s.Driver.Run(doc)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if data == nil {
		return writeError(c, fiber.StatusUnprocessableEntity, "no config produced an error-free extraction")
	}

	var csvBuf bytes.Buffer
	csvWriter := &writer.CSVWriter{IncludeHeader: includeHeader}
	if err := csvWriter.Write(&csvBuf, data); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "CSV generation failed: "+err.Error())
	}

	resp := ConvertResponse{
		Success:      true,
		ConfigKey:    data.ConfigKey,
		Transactions: toTransactionJSON(data),
		CSV:          csvBuf.String(),
		Count:        len(data.Transactions),
		Errors:       toErrorJSON(data),
		Version:      s.Version,
	}
	resp.TotalDebit, resp.TotalCredit = totals(data)

	if data.HasAccountNumber || data.HasStartDate || data.HasOpeningBalance || data.HasClosingBalance {
		info := &AccountInfo{}
		if data.HasAccountNumber {
			info.Number = data.AccountNumber
		}
		if data.HasStartDate {
			info.StartDate = data.StartDate.ISO()
		}
		if data.HasOpeningBalance {
			info.OpeningBalance = data.OpeningBalance.String()
		}
		if data.HasClosingBalance {
			info.ClosingBalance = data.ClosingBalance.String()
		}
		resp.AccountInfo = info
	}

	return c.JSON(resp)
}

func totals(data *statement.Data) (debit, credit float64) {
	for _, txn := range data.Transactions {
		if txn.Amount.Float64() < 0 {
			debit += -txn.Amount.Float64()
		} else {
			credit += txn.Amount.Float64()
		}
	}
	return debit, credit
}

func toTransactionJSON(data *statement.Data) []transactionJSON {
	out := make([]transactionJSON, 0, len(data.Transactions))
	for _, t := range data.Transactions {
		tj := transactionJSON{
			Date:        t.Date.ISO(),
			Description: t.Description,
			Amount:      t.Amount.Float64(),
		}
		if t.Balance != nil {
			tj.Balance = t.Balance.Float64()
		}
		out = append(out, tj)
	}
	return out
}

func toErrorJSON(data *statement.Data) []statementErrorJSON {
	out := make([]statementErrorJSON, 0, len(data.Errors))
	for _, e := range data.Errors {
		out = append(out, statementErrorJSON{Kind: string(e.Kind), Field: e.Field, Message: e.Message})
	}
	return out
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{Success: false, Error: msg})
}
