package fragment

import "testing"

func TestCoord(t *testing.T) {
	f := Fragment{X1: 10, X2: 20, Y1: 30, Y2: 40}
	tests := []struct {
		which Align
		want  float64
	}{
		{AlignX1, 10}, {AlignX2, 20}, {AlignY1, 30}, {AlignY2, 40}, {AlignNone, 0},
	}
	for _, tt := range tests {
		if got := f.Coord(tt.which); got != tt.want {
			t.Errorf("Coord(%s) = %v, want %v", tt.which, got, tt.want)
		}
	}
}

func TestAligned(t *testing.T) {
	a := Fragment{X1: 10}
	b := Fragment{X1: 12}
	if !Aligned(a, b, AlignX1, 2) {
		t.Error("expected aligned at exactly tolerance")
	}
	if Aligned(a, b, AlignX1, 1.9) {
		t.Error("expected not aligned beyond tolerance")
	}
	if !Aligned(a, b, AlignNone, 0) {
		t.Error("AlignNone should always report aligned")
	}
}

func TestSameLine(t *testing.T) {
	a := Fragment{Y1: 100}
	b := Fragment{Y1: 101.5}
	if !SameLine(a, b, 2.0) {
		t.Error("expected same line within ybin")
	}
	if SameLine(a, b, 1.0) {
		t.Error("expected not same line beyond ybin")
	}
}

func TestContains(t *testing.T) {
	f := Fragment{Text: "Opening Balance"}
	if !f.Contains("balance") {
		t.Error("expected case-insensitive substring match")
	}
	if f.Contains("closing") {
		t.Error("unexpected match")
	}
	if !f.Contains("") {
		t.Error("empty substring should always match")
	}
}

func TestAfter(t *testing.T) {
	a := Fragment{Text: "a", X1: 1}
	b := Fragment{Text: "b", X1: 2}
	stream := Stream{a, b}
	if !After(stream, a, b) {
		t.Error("expected b after a")
	}
	if After(stream, b, a) {
		t.Error("expected a not after b")
	}
	missing := Fragment{Text: "missing"}
	if After(stream, a, missing) {
		t.Error("expected false when b is not a stream member")
	}
}

func TestWidthAndMeanAdvance(t *testing.T) {
	f := Fragment{Text: "abcd", X1: 0, X2: 8}
	if got := f.Width(); got != 8 {
		t.Errorf("Width() = %v, want 8", got)
	}
	if got := f.MeanAdvance(); got != 2 {
		t.Errorf("MeanAdvance() = %v, want 2", got)
	}
	empty := Fragment{Text: ""}
	if got := empty.MeanAdvance(); got != 0 {
		t.Errorf("MeanAdvance() on empty text = %v, want 0", got)
	}
}
