package extractor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/statementcore/corebank/internal/fragment"
)

// ExtractFragments reads a PDF file and returns each page's text as a
// set of fragments carrying X/Y coordinates, the input C2's layout
// normalizer consumes. It tries the structured library first, then raw
// stream parsing, then the external pdftotext command, then OCR. Only
// the library step yields real per-glyph-run coordinates; the fallbacks
// get approximate ones from syntheticFragments. Lines are not
// reconstructed here — that is the layout package's job, not the
// extractor's.
func ExtractFragments(filePath string) (map[int][]fragment.Fragment, error) {
	pages, libErr := extractFragmentsWithLibrary(filePath)
	if libErr == nil && isReadableFragments(pages) {
		return pages, nil
	}

	rawPages, rawErr := ExtractTextRaw(filePath)
	if rawErr == nil && isReadableText(rawPages) {
		return syntheticFragments(rawPages), nil
	}

	popplerPages, popplerErr := extractWithPdftotext(filePath)
	if popplerErr == nil && isReadableText(popplerPages) {
		return syntheticFragments(popplerPages), nil
	}

	ocrPages, ocrErr := ExtractTextOCR(filePath)
	if ocrErr == nil && isReadableText(ocrPages) {
		return syntheticFragments(ocrPages), nil
	}

	if libErr != nil {
		return nil, fmt.Errorf("PDF fragment extraction failed: %v. The PDF may use custom fonts or be image-based/scanned", libErr)
	}
	return nil, fmt.Errorf("no readable text could be extracted from PDF as positioned fragments")
}

// extractFragmentsWithLibrary reads positioned text runs directly off
// ledongthuc/pdf's low-level Content(), the same access point the
// teacher's extractByContent method used to reconstruct lines — here
// each run is kept as its own fragment instead of being grouped.
func extractFragmentsWithLibrary(filePath string) (pages map[int][]fragment.Fragment, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return nil, openErr
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	pages = make(map[int][]fragment.Fragment)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			width := t.W
			if width <= 0 {
				width = t.FontSize * float64(len(t.S)) * 0.5
			}
			height := t.FontSize
			if height <= 0 {
				height = 10
			}
			pages[i] = append(pages[i], fragment.Fragment{
				Text: t.S,
				X1:   t.X,
				X2:   t.X + width,
				Y1:   t.Y,
				Y2:   t.Y + height,
				Page: i,
			})
		}
	}
	return pages, nil
}

func isReadableFragments(pages map[int][]fragment.Fragment) bool {
	if len(pages) == 0 {
		return false
	}
	var texts []string
	total := 0
	for _, frags := range pages {
		for _, f := range frags {
			texts = append(texts, f.Text)
			total += len(f.Text)
		}
	}
	if total <= 50 {
		return false
	}
	if textQuality(texts) <= 0.6 {
		return false
	}
	return containsCommonWords(texts)
}

// columnGap splits a reconstructed text line into column runs wherever
// two or more consecutive spaces appear, mirroring the column-gap
// heuristic the teacher's extractByContent used (a >15pt X gap became
// an inserted double-space separator); here it runs in reverse, turning
// that same whitespace signal back into distinct positioned fragments
// for extractors (pdftotext -layout, raw stream) that emit plain text.
var columnGap = regexp.MustCompile(`\S+(?:\s\S+)*`)

// syntheticFragments builds approximate fragments from plain text pages
// lacking real coordinates: each line becomes one Y row (rows count
// down so earlier lines sort before later ones, matching PDF's
// bottom-to-top Y axis once normalized), and each whitespace-separated
// column run becomes a fragment whose X is its byte offset into the
// line — coarse, but enough for C2's gap-merge and alignment checks to
// treat the reconstruction the same way as real coordinates.
func syntheticFragments(textPages []string) map[int][]fragment.Fragment {
	pages := make(map[int][]fragment.Fragment)
	for pageIdx, pageText := range textPages {
		pageNum := pageIdx + 1
		lines := strings.Split(pageText, "\n")
		row := float64(len(lines))
		for _, line := range lines {
			if strings.TrimSpace(line) == "" {
				row--
				continue
			}
			for _, loc := range columnGap.FindAllStringIndex(line, -1) {
				text := line[loc[0]:loc[1]]
				x1 := float64(loc[0])
				x2 := float64(loc[1])
				pages[pageNum] = append(pages[pageNum], fragment.Fragment{
					Text: text,
					X1:   x1,
					X2:   x2,
					Y1:   row,
					Y2:   row + 1,
					Page: pageNum,
				})
			}
			row--
		}
	}
	return pages
}
