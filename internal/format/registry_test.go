package format

import "testing"

func TestRegistry_HasFormat(t *testing.T) {
	r := NewRegistry()
	if !r.HasAmountFormat("format1") {
		t.Error("expected format1 amount format registered")
	}
	if r.HasAmountFormat("format99") {
		t.Error("format99 should not be registered")
	}
	if !r.HasDateFormat("format7") {
		t.Error("expected format7 date format registered")
	}
	if r.HasDateFormat("format99") {
		t.Error("format99 should not be registered")
	}
}

func TestRegistry_ParseAmount_TriesInOrder(t *testing.T) {
	r := NewRegistry()
	result, ok := r.ParseAmount("$1,234.56", []string{"format1", "format2"})
	if !ok {
		t.Fatal("expected a match")
	}
	if result.Label != "format2" {
		t.Errorf("expected format2 to match, got %s", result.Label)
	}
	if result.Value.Float64() != 1234.56 {
		t.Errorf("value = %v", result.Value.Float64())
	}
}

func TestRegistry_ParseAmount_NoMatch(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.ParseAmount("garbage", []string{"format1", "format2"}); ok {
		t.Error("expected no match")
	}
}

func TestRegistry_ParseDate_TriesInOrder(t *testing.T) {
	r := NewRegistry()
	result, ok := r.ParseDate("24/03/2020", []string{"format1", "format4"})
	if !ok || result.Label != "format4" {
		t.Errorf("expected format4 to match, got %+v, %v", result, ok)
	}
}

func TestRegistry_ParseDate_SkipsUnknownLabel(t *testing.T) {
	r := NewRegistry()
	result, ok := r.ParseDate("24/03/2020", []string{"bogus", "format4"})
	if !ok || result.Label != "format4" {
		t.Errorf("expected format4 to match after skipping bogus label, got %+v, %v", result, ok)
	}
}
