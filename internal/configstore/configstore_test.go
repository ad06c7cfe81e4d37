package configstore

import (
	"testing"

	"github.com/statementcore/corebank/internal/config"
	"github.com/statementcore/corebank/internal/format"
)

func TestLoadDir(t *testing.T) {
	formats := format.NewRegistry()
	registry := config.NewRegistry()

	if err := LoadDir("testdata", registry, formats); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	want := []string{
		"uk__barclays__checking_account__1",
		"uk__hsbc__checking_account__1",
		"uk__metro__checking_account__1",
	}
	got := registry.Keys()
	if len(got) != len(want) {
		t.Fatalf("got %d configs, want %d: %v", len(got), len(want), got)
	}
	for i, k := range want {
		if got[i] != k {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], k)
		}
	}
}

func TestLoadFile_FieldMapping(t *testing.T) {
	cfg, err := LoadFile("testdata/uk__metro__checking_account__1.json")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Key != "uk__metro__checking_account__1" {
		t.Errorf("Key = %q", cfg.Key)
	}
	if cfg.AccountType != config.Checking {
		t.Errorf("AccountType = %q", cfg.AccountType)
	}
	if len(cfg.AccountTerms) != 2 {
		t.Errorf("AccountTerms = %v", cfg.AccountTerms)
	}
	if cfg.TransactionAlignment != "x2" {
		t.Errorf("TransactionAlignment = %q", cfg.TransactionAlignment)
	}
	if len(cfg.TransactionFormats) != 1 || len(cfg.TransactionFormats[0]) != 4 {
		t.Fatalf("TransactionFormats = %v", cfg.TransactionFormats)
	}
	if cfg.TransactionFormats[0][0] != config.SlotDate {
		t.Errorf("TransactionFormats[0][0] = %q, want date", cfg.TransactionFormats[0][0])
	}
	if cfg.OpeningBalance.Align != "x2" {
		t.Errorf("OpeningBalance.Align = %q", cfg.OpeningBalance.Align)
	}
}

func TestLoadFile_RejectsUnknownFields(t *testing.T) {
	raw := []byte(`{"key": "uk__x__y__1", "unknown_field": true}`)
	if _, err := Parse(raw); err == nil {
		t.Fatal("Parse: expected error for unknown field, got nil")
	}
}

func TestLoadDir_ValidatesAgainstFormats(t *testing.T) {
	formats := format.NewRegistry()
	registry := config.NewRegistry()
	if err := LoadDir("testdata", registry, formats); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	for _, key := range registry.Keys() {
		cfg, _ := registry.Get(key)
		if err := cfg.Validate(formats); err != nil {
			t.Errorf("config %s failed validation after registration: %v", key, err)
		}
	}
}
