package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"doccomp/internal/diag"
	"doccomp/internal/source"
)

func TestConsoleWriterToolFormat(t *testing.T) {
	var buf bytes.Buffer
	w := NewConsoleWriter(&buf, ConsoleOptions{FixIts: true})

	first := source.NewRange(3, 1, 3, 9)
	p := diag.NewProblem(
		diag.NewAt(diag.SevWarning, diag.IDDuplicateCuration, "/docs/Root.md", source.NewRange(7, 3, 7, 20), "'Child' is curated twice").
			WithExplanation("Remove the duplicate link.").
			WithNote("/docs/Root.md", first, "first curated here"),
	).WithSolution("Remove duplicate", diag.Replacement{Range: source.NewRange(7, 1, 8, 1), Replacement: ""})

	w.Receive([]diag.Problem{p})
	if buf.Len() != 0 {
		t.Fatalf("output must be buffered until Flush")
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}

	want := strings.Join([]string{
		"/docs/Root.md:7:3: warning: 'Child' is curated twice",
		"Remove the duplicate link.",
		"/docs/Root.md:3:1: note: first curated here",
		"/docs/Root.md:7:1-8:1: fixit: ",
	}, "\n") + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("output mismatch\n got: %q\nwant: %q", got, want)
	}

	// повторный Flush ничего не теряет и не дублирует
	if err := w.Flush(); err != nil {
		t.Fatalf("second Flush() error: %v", err)
	}
	if buf.String() != want {
		t.Fatalf("second Flush changed output")
	}
}

func TestConsoleWriterWithoutLocationOrFixIts(t *testing.T) {
	w := NewConsoleWriter(&bytes.Buffer{}, ConsoleOptions{})
	p := diag.NewProblem(diag.New(diag.SevError, "org.test", "something broke")).
		WithSolution("fix", diag.Replacement{Range: source.NewRange(1, 1, 1, 2), Replacement: "x"})

	if got := w.Format(p); got != "error: something broke" {
		t.Fatalf("Format() = %q", got)
	}

	p.Diagnostic.Source = "file.md"
	p.Diagnostic.Severity = diag.SevHint
	if got := w.Format(p); got != "file.md: notice: something broke" {
		t.Fatalf("Format() = %q", got)
	}
}

func TestConsoleWriterSnippet(t *testing.T) {
	files := source.NewFileSet()
	files.Add("a.md", []byte("intro\n@Row(numberOfColumns: 2, numberOfColumns: 3)\n"))

	w := NewConsoleWriter(&bytes.Buffer{}, ConsoleOptions{Sources: files})
	p := diag.NewProblem(diag.NewAt(diag.SevWarning, "id", "a.md", source.NewRange(2, 26, 2, 41), "duplicate"))

	lines := strings.Split(w.Format(p), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header, source line and caret line, got %q", lines)
	}
	if lines[1] != "@Row(numberOfColumns: 2, numberOfColumns: 3)" {
		t.Fatalf("source line = %q", lines[1])
	}
	if lines[2] != strings.Repeat(" ", 25)+"^"+strings.Repeat("~", 14) {
		t.Fatalf("caret line = %q", lines[2])
	}
}
