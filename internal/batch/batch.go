// Package batch walks a directory of PDF statements, runs each through
// the extraction pipeline with a bounded worker pool, and aggregates
// results into a Report — the directory-processing mode the teacher's
// single-file CLI loop (main.go's processFile over flag.Args()) never
// had. Live watch mode (fsnotify) and scheduled sweep mode
// (robfig/cron) are built on top of the same per-file Convert step.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/statementcore/corebank/internal/extractor"
	"github.com/statementcore/corebank/internal/layout"
	"github.com/statementcore/corebank/internal/statement"
)

// Result is the outcome of converting one PDF file.
type Result struct {
	Path  string
	Data  *statement.Data
	Err   error
}

// Report aggregates a batch run's results.
type Report struct {
	Results []Result
}

// Succeeded returns the subset of results that produced an error-free
// statement.Data.
func (r *Report) Succeeded() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err == nil && res.Data != nil && res.Data.ErrorFree() {
			out = append(out, res)
		}
	}
	return out
}

// Failed returns the subset of results that errored outright or never
// reached an error-free attempt.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil || res.Data == nil || !res.Data.ErrorFree() {
			out = append(out, res)
		}
	}
	return out
}

// Convert runs the extraction pipeline over a single PDF file.
func Convert(driver *statement.Driver, path string, layoutParams layout.Params) (*statement.Data, error) {
	rawPages, err := extractor.ExtractFragments(path)
	if err != nil {
		return nil, fmt.Errorf("batch: extract %s: %w", path, err)
	}
	doc := layout.Normalize(rawPages, layoutParams)

	data, _, err := driver.Run(doc)
	if err != nil {
		return nil, fmt.Errorf("batch: %s: %w", path, err)
	}
	return data, nil
}

// FindPDFs lists every *.pdf file directly under dir, sorted, for a
// deterministic processing order.
func FindPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: read dir %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// Run processes every PDF under dir with a bounded worker pool,
// returning an aggregated Report. workers <= 0 defaults to 4.
func Run(driver *statement.Driver, dir string, layoutParams layout.Params, workers int) (*Report, error) {
	paths, err := FindPDFs(dir)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = 4
	}

	jobs := make(chan string)
	results := make(chan Result)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				data, err := Convert(driver, path, layoutParams)
				results <- Result{Path: path, Data: data, Err: err}
			}
		}()
	}

	go func() {
		for _, p := range paths {
			jobs <- p
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	report := &Report{}
	for res := range results {
		report.Results = append(report.Results, res)
	}
	sort.Slice(report.Results, func(i, j int) bool {
		return report.Results[i].Path < report.Results[j].Path
	})
	return report, nil
}
