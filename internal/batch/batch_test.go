package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/statementcore/corebank/internal/statement"
)

func TestFindPDFs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.pdf", "b.PDF", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "subdir.pdf"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindPDFs(dir)
	if err != nil {
		t.Fatalf("FindPDFs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d pdfs, want 2: %v", len(got), got)
	}
}

func TestReport_SucceededFailed(t *testing.T) {
	ok := &statement.Data{ConfigKey: "ok"}
	bad := &statement.Data{ConfigKey: "bad"}
	bad.AddError(statement.Error{Kind: statement.ErrRecordParseFailure, Message: "boom"})

	report := &Report{Results: []Result{
		{Path: "a.pdf", Data: ok},
		{Path: "b.pdf", Data: bad},
		{Path: "c.pdf", Err: errTest{}},
	}}

	if len(report.Succeeded()) != 1 {
		t.Errorf("Succeeded() = %d, want 1", len(report.Succeeded()))
	}
	if len(report.Failed()) != 2 {
		t.Errorf("Failed() = %d, want 2", len(report.Failed()))
	}
}

type errTest struct{}

func (errTest) Error() string { return "test error" }
