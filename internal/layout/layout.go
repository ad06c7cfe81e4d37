// Package layout reconstructs visual reading order from unordered
// positional fragments: tolerant line binning followed by horizontal
// gap merging, page by page.
//
// Grounded on the teacher's extractByContent (bank-statement-converter
// internal/extractor/pdf.go), which groups pdf.Text items by rounded Y
// and sorts by X to rebuild rows — generalized here into a standalone,
// parametric pass over fragment.Fragment that the rest of the module
// can reuse for any PDF provider, not just ledongthuc/pdf.
package layout

import (
	"sort"
	"strings"

	"github.com/statementcore/corebank/internal/fragment"
)

// Params controls the normalizer's tolerances. Zero values disable the
// corresponding pass (raw provider order / no merging), per spec.
type Params struct {
	YBin float64 // line-binning tolerance, points
	XGap float64 // gap-merge threshold, multiples of mean glyph advance
}

// Normalize groups raw per-page fragments into reading order: line
// binning by Y, ascending-X ordering within a line, then optional
// horizontal gap merging. Pages are concatenated in ascending Page
// index. Idempotent: re-running Normalize with the same Params on its
// own output reproduces the same stream (merged fragments' widened
// boxes and single-space joins do not reorder or re-split under a
// second pass).
func Normalize(pages map[int][]fragment.Fragment, p Params) fragment.Stream {
	pageIdx := make([]int, 0, len(pages))
	for idx := range pages {
		pageIdx = append(pageIdx, idx)
	}
	sort.Ints(pageIdx)

	var out fragment.Stream
	for _, idx := range pageIdx {
		out = append(out, normalizePage(pages[idx], p)...)
	}
	return out
}

func normalizePage(frags []fragment.Fragment, p Params) []fragment.Fragment {
	if len(frags) == 0 {
		return nil
	}

	lines := binLines(frags, p.YBin)

	// Descending visual top (PDF y-up): highest Y1 first. With YBin 0
	// the provider's order is kept.
	if p.YBin > 0 {
		sort.SliceStable(lines, func(i, j int) bool {
			return lines[i].meanY > lines[j].meanY
		})
	}

	var out []fragment.Fragment
	for _, ln := range lines {
		sort.SliceStable(ln.frags, func(i, j int) bool {
			return ln.frags[i].X1 < ln.frags[j].X1
		})
		if p.XGap > 0 {
			out = append(out, mergeGaps(ln.frags, p.XGap)...)
		} else {
			out = append(out, ln.frags...)
		}
	}
	return out
}

type line struct {
	meanY float64
	n     int
	frags []fragment.Fragment
}

// binLines groups fragments into lines whose Y1 values lie in a common
// bin of width ybin: a fragment joins the line whose current mean Y1 is
// within ybin/2. With ybin == 0, each fragment is its own "line" and
// provider order is preserved (no sort by X happens in that case since
// every line has exactly one fragment).
func binLines(frags []fragment.Fragment, ybin float64) []*line {
	if ybin <= 0 {
		lines := make([]*line, len(frags))
		for i, f := range frags {
			lines[i] = &line{meanY: f.Y1, n: 1, frags: []fragment.Fragment{f}}
		}
		return lines
	}

	var lines []*line
	half := ybin / 2
	for _, f := range frags {
		var best *line
		bestDist := half + 1
		for _, ln := range lines {
			d := ln.meanY - f.Y1
			if d < 0 {
				d = -d
			}
			if d <= half && d < bestDist {
				best = ln
				bestDist = d
			}
		}
		if best == nil {
			lines = append(lines, &line{meanY: f.Y1, n: 1, frags: []fragment.Fragment{f}})
			continue
		}
		best.frags = append(best.frags, f)
		best.meanY = (best.meanY*float64(best.n) + f.Y1) / float64(best.n+1)
		best.n++
	}
	return lines
}

// mergeGaps merges adjacent same-line fragments whose horizontal gap is
// at most xGap * mean-glyph-advance of the left fragment.
func mergeGaps(frags []fragment.Fragment, xGap float64) []fragment.Fragment {
	if len(frags) == 0 {
		return nil
	}
	out := []fragment.Fragment{frags[0]}
	for i := 1; i < len(frags); i++ {
		prev := &out[len(out)-1]
		cur := frags[i]
		gap := cur.X1 - prev.X2
		threshold := xGap * prev.MeanAdvance()
		if gap <= threshold {
			*prev = fragment.Fragment{
				Text: strings.TrimSpace(prev.Text + " " + cur.Text),
				X1:   prev.X1,
				X2:   maxF(prev.X2, cur.X2),
				Y1:   minF(prev.Y1, cur.Y1),
				Y2:   maxF(prev.Y2, cur.Y2),
				Page: prev.Page,
			}
			continue
		}
		out = append(out, cur)
	}
	return out
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
