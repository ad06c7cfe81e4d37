// Package fragment defines the positioned-text primitive the rest of the
// extractor operates on, plus the geometric predicates used throughout.
package fragment

import "math"

// Align names the coordinate an alignment rule compares.
type Align string

const (
	AlignX1   Align = "x1"
	AlignX2   Align = "x2"
	AlignY1   Align = "y1"
	AlignY2   Align = "y2"
	AlignNone Align = "none"
)

// Fragment is a positioned glyph group: text plus its bounding box in
// PDF user-space points. Coordinates satisfy X1 <= X2 and Y1 <= Y2.
type Fragment struct {
	Text string
	X1   float64
	X2   float64
	Y1   float64
	Y2   float64
	Page int
}

// Width returns the glyph box width.
func (f Fragment) Width() float64 { return f.X2 - f.X1 }

// MeanAdvance is the average per-rune horizontal advance, used by the
// layout normalizer's gap-merge heuristic. Returns 0 for empty text.
func (f Fragment) MeanAdvance() float64 {
	n := len([]rune(f.Text))
	if n == 0 {
		return 0
	}
	return f.Width() / float64(n)
}

// Coord returns the named coordinate of the fragment.
func (f Fragment) Coord(which Align) float64 {
	switch which {
	case AlignX1:
		return f.X1
	case AlignX2:
		return f.X2
	case AlignY1:
		return f.Y1
	case AlignY2:
		return f.Y2
	default:
		return 0
	}
}

// Stream is an ordered sequence of fragments spanning all pages, sorted
// in reading order by the layout normalizer.
type Stream []Fragment

// Aligned reports whether a and b's named coordinate differ by no more
// than tol (inclusive — exactly-at-tolerance must pass per spec).
func Aligned(a, b Fragment, which Align, tol float64) bool {
	if which == AlignNone {
		return true
	}
	return math.Abs(a.Coord(which)-b.Coord(which)) <= tol
}

// After reports whether b appears later than a in the given canonical
// stream. Both fragments must be members of stream; if either is not
// found After returns false.
func After(stream Stream, a, b Fragment) bool {
	ai, bi := -1, -1
	for i := range stream {
		if ai == -1 && sameFragment(stream[i], a) {
			ai = i
		}
		if bi == -1 && sameFragment(stream[i], b) {
			bi = i
		}
	}
	return ai != -1 && bi != -1 && bi > ai
}

// SameLine reports whether two fragments' Y1 values lie within ybin of
// each other.
func SameLine(a, b Fragment, ybin float64) bool {
	return math.Abs(a.Y1-b.Y1) <= ybin
}

func sameFragment(a, b Fragment) bool {
	return a.Text == b.Text && a.X1 == b.X1 && a.X2 == b.X2 &&
		a.Y1 == b.Y1 && a.Y2 == b.Y2 && a.Page == b.Page
}

// Contains reports whether the fragment's text contains substr,
// case-insensitively.
func (f Fragment) Contains(substr string) bool {
	return containsFold(f.Text, substr)
}

func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return indexFold(s, substr) >= 0
}

func toLower(s string) string {
	b := []rune(s)
	for i, r := range b {
		if r >= 'A' && r <= 'Z' {
			b[i] = r + ('a' - 'A')
		}
	}
	return string(b)
}

func indexFold(s, substr string) int {
	ls, lsub := toLower(s), toLower(substr)
	return indexOf(ls, lsub)
}

func indexOf(s, substr string) int {
	rs, rsub := []rune(s), []rune(substr)
	if len(rsub) > len(rs) {
		return -1
	}
	for i := 0; i+len(rsub) <= len(rs); i++ {
		match := true
		for j := range rsub {
			if rs[i+j] != rsub[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
