package layout

import (
	"testing"

	"github.com/statementcore/corebank/internal/fragment"
)

func TestNormalize_OrdersLinesTopToBottomAndLeftToRight(t *testing.T) {
	pages := map[int][]fragment.Fragment{
		1: {
			{Text: "World", X1: 20, X2: 30, Y1: 100, Y2: 110},
			{Text: "Hello", X1: 0, X2: 10, Y1: 100, Y2: 110},
			{Text: "Bottom", X1: 0, X2: 10, Y1: 50, Y2: 60},
		},
	}

	out := Normalize(pages, Params{YBin: 2.0, XGap: 0})

	if len(out) != 3 {
		t.Fatalf("got %d fragments, want 3", len(out))
	}
	if out[0].Text != "Hello" || out[1].Text != "World" {
		t.Errorf("expected Hello before World on the top line, got %q then %q", out[0].Text, out[1].Text)
	}
	if out[2].Text != "Bottom" {
		t.Errorf("expected Bottom on the second line, got %q", out[2].Text)
	}
}

func TestNormalize_MergesGapsWithinThreshold(t *testing.T) {
	pages := map[int][]fragment.Fragment{
		1: {
			{Text: "Open", X1: 0, X2: 8, Y1: 0, Y2: 10},
			{Text: "ing", X1: 8.5, X2: 12, Y1: 0, Y2: 10},
		},
	}

	out := Normalize(pages, Params{YBin: 2.0, XGap: 5.0})
	if len(out) != 1 {
		t.Fatalf("got %d fragments, want 1 merged", len(out))
	}
	if out[0].Text != "Open ing" {
		t.Errorf("merged text = %q", out[0].Text)
	}
}

func TestNormalize_DoesNotMergeBeyondThreshold(t *testing.T) {
	pages := map[int][]fragment.Fragment{
		1: {
			{Text: "Date", X1: 0, X2: 8, Y1: 0, Y2: 10},
			{Text: "Amount", X1: 200, X2: 220, Y1: 0, Y2: 10},
		},
	}

	out := Normalize(pages, Params{YBin: 2.0, XGap: 1.5})
	if len(out) != 2 {
		t.Fatalf("got %d fragments, want 2 (no merge across a large gap)", len(out))
	}
}

func TestNormalize_MultiplePagesConcatenateInOrder(t *testing.T) {
	pages := map[int][]fragment.Fragment{
		2: {{Text: "page2", X1: 0, X2: 5, Y1: 0, Y2: 10}},
		1: {{Text: "page1", X1: 0, X2: 5, Y1: 0, Y2: 10}},
	}

	out := Normalize(pages, Params{YBin: 2.0, XGap: 0})
	if len(out) != 2 || out[0].Text != "page1" || out[1].Text != "page2" {
		t.Fatalf("expected page1 then page2, got %v", out)
	}
}

func TestNormalize_ZeroYBinPreservesProviderOrder(t *testing.T) {
	pages := map[int][]fragment.Fragment{
		1: {
			{Text: "b", X1: 10, Y1: 5},
			{Text: "a", X1: 0, Y1: 5},
		},
	}
	out := Normalize(pages, Params{YBin: 0, XGap: 0})
	if len(out) != 2 || out[0].Text != "b" || out[1].Text != "a" {
		t.Errorf("expected provider order preserved with YBin=0, got %v", out)
	}
}
