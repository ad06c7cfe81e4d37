package format

import "testing"

func TestAmountFormat1(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1,234.56", 1234.56, true},
		{"-1,234.56", -1234.56, true},
		{"1,234.56-", -1234.56, true},
		{"not an amount", 0, false},
	}
	for _, tt := range tests {
		got, ok := AmountFormat1(tt.in)
		if ok != tt.ok {
			t.Fatalf("AmountFormat1(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
		if ok && got.Float64() != tt.want {
			t.Errorf("AmountFormat1(%q) = %v, want %v", tt.in, got.Float64(), tt.want)
		}
	}
}

func TestAmountFormat2(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$1,234.56", 1234.56, true},
		{"-$1,234.56", -1234.56, true},
		{"£1,234.56-", -1234.56, true},
		{"1,234.56", 0, false},
	}
	for _, tt := range tests {
		got, ok := AmountFormat2(tt.in)
		if ok != tt.ok {
			t.Fatalf("AmountFormat2(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
		if ok && got.Float64() != tt.want {
			t.Errorf("AmountFormat2(%q) = %v, want %v", tt.in, got.Float64(), tt.want)
		}
	}
}

func TestAmountFormat3(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$1,234.56 CR", 1234.56, true},
		{"$1,234.56 DR", -1234.56, true},
		{"-$1,234.56 DR", 1234.56, true},
	}
	for _, tt := range tests {
		got, ok := AmountFormat3(tt.in)
		if !ok {
			t.Fatalf("AmountFormat3(%q) unexpectedly failed", tt.in)
		}
		if got.Float64() != tt.want {
			t.Errorf("AmountFormat3(%q) = %v, want %v", tt.in, got.Float64(), tt.want)
		}
	}
}

func TestAmountFormat4(t *testing.T) {
	got, ok := AmountFormat4("1,234.56 DR")
	if !ok || got.Float64() != -1234.56 {
		t.Errorf("AmountFormat4 DR = %v, %v", got.Float64(), ok)
	}
	got, ok = AmountFormat4("1,234.56 CR")
	if !ok || got.Float64() != 1234.56 {
		t.Errorf("AmountFormat4 CR = %v, %v", got.Float64(), ok)
	}
}

func TestAmountFormat5(t *testing.T) {
	for _, in := range []string{"nil", "NIL", "zero", "Zero"} {
		got, ok := AmountFormat5(in)
		if !ok || !got.IsZero() {
			t.Errorf("AmountFormat5(%q) = %v, %v, want zero/true", in, got, ok)
		}
	}
	if _, ok := AmountFormat5("1.00"); ok {
		t.Error("AmountFormat5 should reject numeric input")
	}
}

func TestStripForMatch(t *testing.T) {
	if got := StripForMatch("$1,234.56"); got != "1234.56" {
		t.Errorf("StripForMatch = %q", got)
	}
}
