package writer

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/statementcore/corebank/internal/fragment"
)

// LayoutTextWriter renders a normalized fragment.Stream back out as
// plain text, one `[Page N]` section per page and one fragment per
// line, the inverse of the coordinate-bearing extraction pipeline —
// useful for inspecting what C2's normalizer actually produced when a
// config fails to match or a table fails to assemble.
type LayoutTextWriter struct{}

// WriteToFile writes stream to a layout-text file at path.
func (w *LayoutTextWriter) WriteToFile(path string, stream fragment.Stream) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, stream)
}

// Write renders stream in layout-text form to out: one `[Page N]`
// section per page, each subsequent line `["text",x1,x2,y1,y2]` with
// coordinates truncated toward zero, in the stream's own reading
// order.
func (w *LayoutTextWriter) Write(out io.Writer, stream fragment.Stream) error {
	bw := bufio.NewWriter(out)
	defer bw.Flush()

	currentPage := 0
	havePage := false
	for _, f := range stream {
		if !havePage || f.Page != currentPage {
			if _, err := fmt.Fprintf(bw, "[Page %d]\n", f.Page); err != nil {
				return fmt.Errorf("failed to write page header: %w", err)
			}
			currentPage = f.Page
			havePage = true
		}

		textJSON, err := json.Marshal(f.Text)
		if err != nil {
			return fmt.Errorf("failed to encode fragment text: %w", err)
		}
		if _, err := fmt.Fprintf(bw, "[%s,%d,%d,%d,%d]\n",
			textJSON, int(f.X1), int(f.X2), int(f.Y1), int(f.Y2)); err != nil {
			return fmt.Errorf("failed to write fragment line: %w", err)
		}
	}

	return bw.Flush()
}
