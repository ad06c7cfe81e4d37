package config

import (
	"testing"

	"github.com/statementcore/corebank/internal/fragment"
)

type fakeFormats struct{}

func (fakeFormats) HasAmountFormat(label string) bool { return label == "format1" }
func (fakeFormats) HasDateFormat(label string) bool   { return label == "format4" }

func validConfig() Config {
	return Config{
		Key:                  "uk__fake__checking_account__1",
		AccountType:          Checking,
		AccountTerms:         []string{"Fake Bank"},
		AccountNumber:        PreambleField{Terms: []string{"Account Number"}, Align: fragment.AlignY1},
		OpeningBalance:       PreambleField{Terms: []string{"Opening Balance"}, Align: fragment.AlignX1, Formats: []string{"format1"}},
		ClosingBalance:       PreambleField{Terms: []string{"Closing Balance"}, Align: fragment.AlignX1, Formats: []string{"format1"}},
		StartDate:            PreambleField{Terms: []string{"Statement Date"}, Align: fragment.AlignX1, Formats: []string{"format4"}},
		TransactionTerms:     []string{"Date"},
		TransactionTermsStop: []string{"End"},
		DateHeaders:          []string{"Date"},
		DescriptionHeaders:   []string{"Description"},
		AmountHeaders:        []string{"Amount"},
		BalanceHeaders:       []string{"Balance"},
		TransactionAlignment: fragment.AlignX2,
		TransactionFormats:   [][]Slot{{SlotDate, SlotDescription, SlotAmount, SlotBalance}},
		TransactionDateFormats:   []string{"format4"},
		TransactionAmountFormats: []string{"format1"},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(fakeFormats{}); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidate_BadKey(t *testing.T) {
	c := validConfig()
	c.Key = "not a valid key"
	if err := c.Validate(fakeFormats{}); err == nil {
		t.Error("expected error for malformed key")
	}
}

func TestValidate_InvalidAccountType(t *testing.T) {
	c := validConfig()
	c.AccountType = "Bogus"
	if err := c.Validate(fakeFormats{}); err == nil {
		t.Error("expected error for invalid account type")
	}
}

func TestValidate_EmptyAccountTerms(t *testing.T) {
	c := validConfig()
	c.AccountTerms = nil
	if err := c.Validate(fakeFormats{}); err == nil {
		t.Error("expected error for empty account_terms")
	}
}

func TestValidate_UnregisteredFormatLabel(t *testing.T) {
	c := validConfig()
	c.OpeningBalance.Formats = []string{"format9"}
	if err := c.Validate(fakeFormats{}); err == nil {
		t.Error("expected error for unregistered amount format")
	}
}

func TestValidate_InvalidAlignment(t *testing.T) {
	c := validConfig()
	c.TransactionAlignment = "diagonal"
	if err := c.Validate(fakeFormats{}); err == nil {
		t.Error("expected error for invalid transaction alignment")
	}
}

func TestValidate_NegativeTolerance(t *testing.T) {
	c := validConfig()
	c.TransactionAlignmentTol = -1
	if err := c.Validate(fakeFormats{}); err == nil {
		t.Error("expected error for negative tolerance")
	}
}

func TestValidate_MissingRequiredHeaders(t *testing.T) {
	c := validConfig()
	c.AmountHeaders = nil
	if err := c.Validate(fakeFormats{}); err == nil {
		t.Error("expected error for missing amount headers")
	}
}

func TestValidate_InvalidExcludePattern(t *testing.T) {
	c := validConfig()
	c.TransactionDescriptionExclude = []string{"("}
	if err := c.Validate(fakeFormats{}); err == nil {
		t.Error("expected error for invalid regex pattern")
	}
}

func TestValidate_InvalidAccountNumberPattern(t *testing.T) {
	c := validConfig()
	c.AccountNumber.Patterns = []string{"[unterminated"}
	if err := c.Validate(fakeFormats{}); err == nil {
		t.Error("expected error for invalid account_number pattern")
	}
}

func TestValidate_NegativeLayoutTolerance(t *testing.T) {
	c := validConfig()
	c.LayoutYBin = -1
	if err := c.Validate(fakeFormats{}); err == nil {
		t.Error("expected error for negative layout tolerance")
	}
}
