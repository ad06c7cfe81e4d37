package batch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/statementcore/corebank/internal/layout"
	"github.com/statementcore/corebank/internal/statement"
)

func TestWatch_ConvertsNewPDFAndIgnoresOthers(t *testing.T) {
	dir := t.TempDir()
	results := make(chan Result, 4)
	stop := make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- Watch(&statement.Driver{}, dir, layout.Params{YBin: 2.0, XGap: 1.5}, func(r Result) {
			results <- r
		}, stop)
	}()

	// give the watcher a moment to register dir before writing into it
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "statement.pdf"), []byte("not a real pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-results:
		if filepath.Base(r.Path) != "statement.pdf" {
			t.Fatalf("got result for %s, want statement.pdf", r.Path)
		}
		if r.Err == nil {
			t.Error("expected Convert to fail on a non-PDF payload, got nil error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a watch result on statement.pdf")
	}

	close(stop)
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned error after stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after stop was closed")
	}
}
