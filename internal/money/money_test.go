package money

import "testing"

func TestFromString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234.56", "1234.56"},
		{"-1234.56", "-1234.56"},
		{"0", "0.00"},
		{"1234.567", "1234.57"},
	}
	for _, tt := range tests {
		m, err := FromString(tt.in)
		if err != nil {
			t.Fatalf("FromString(%q): %v", tt.in, err)
		}
		if got := m.String(); got != tt.want {
			t.Errorf("FromString(%q).String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFromString_Invalid(t *testing.T) {
	if _, err := FromString("not-a-number"); err == nil {
		t.Error("expected error for invalid input")
	}
}

func TestMustFromString_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for invalid input")
		}
	}()
	MustFromString("garbage")
}

func TestAddSubNeg(t *testing.T) {
	a := MustFromString("10.00")
	b := MustFromString("3.50")

	if got := a.Add(b).String(); got != "13.50" {
		t.Errorf("Add = %q", got)
	}
	if got := a.Sub(b).String(); got != "6.50" {
		t.Errorf("Sub = %q", got)
	}
	if got := a.Neg().String(); got != "-10.00" {
		t.Errorf("Neg = %q", got)
	}
}

func TestCmp(t *testing.T) {
	a := MustFromString("5.00")
	b := MustFromString("5.00")
	c := MustFromString("6.00")
	if a.Cmp(b) != 0 {
		t.Error("expected equal")
	}
	if a.Cmp(c) >= 0 {
		t.Error("expected a < c")
	}
	if c.Cmp(a) <= 0 {
		t.Error("expected c > a")
	}
}

func TestWithinTolerance(t *testing.T) {
	tol := MustFromString("0.01")
	a := MustFromString("10.00")
	b := MustFromString("10.01")
	c := MustFromString("10.02")

	if !a.WithinTolerance(b, tol) {
		t.Error("expected within tolerance")
	}
	if a.WithinTolerance(c, tol) {
		t.Error("expected outside tolerance")
	}
}

func TestIsZero(t *testing.T) {
	if !Zero.IsZero() {
		t.Error("Zero.IsZero() should be true")
	}
	if MustFromString("0.01").IsZero() {
		t.Error("0.01 should not be zero")
	}
}

func TestFloat64(t *testing.T) {
	m := MustFromString("12.34")
	if got := m.Float64(); got != 12.34 {
		t.Errorf("Float64() = %v, want 12.34", got)
	}
}
