package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"doccomp/internal/diag"
	"doccomp/internal/diagfmt"
	"doccomp/internal/source"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config-dir", t.TempDir(), "--color", "off"}, args...))
	err := root.Execute()
	return out.String(), err
}

func writeDiagnostics(t *testing.T, name string, problems ...diag.Problem) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	w := diagfmt.NewFileWriter(path)
	w.Receive(problems)
	if err := w.Flush(); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func warningAt(summary string) diag.Problem {
	d := diag.NewAt(diag.SevWarning, diag.IDUnresolvedSymbolLink, "Kit.md", source.NewRange(3, 5, 3, 9), summary)
	return diag.NewProblem(d).WithSolution("Remove link", diag.Replacement{Range: source.NewRange(3, 5, 3, 9)})
}

func TestPrintWritesConsoleFormat(t *testing.T) {
	path := writeDiagnostics(t, "d.json", warningAt("Symbol link 'Gizmo' could not be resolved"))

	out, err := runCLI(t, "diagnostics", "print", "--fixits", path)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(out, "Kit.md:3:5: warning: Symbol link 'Gizmo' could not be resolved") {
		t.Errorf("output missing diagnostic line:\n%s", out)
	}
	if !strings.Contains(out, "Kit.md:3:5-3:9: fixit: ") {
		t.Errorf("output missing fixit line:\n%s", out)
	}
}

func TestPrintFailsOnErrors(t *testing.T) {
	errProblem := diag.NewProblem(diag.New(diag.SevError, diag.IDCyclicReference, "Cycle"))
	path := writeDiagnostics(t, "d.json", errProblem)

	out, err := runCLI(t, "diagnostics", "print", path)
	if !errors.Is(err, errHasErrors) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(out, "Cycle") {
		t.Errorf("output = %q", out)
	}
}

func TestPrintLevelFilters(t *testing.T) {
	path := writeDiagnostics(t, "d.json", warningAt("only a warning"))
	out, err := runCLI(t, "diagnostics", "print", "--level", "error", path)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if strings.Contains(out, "only a warning") {
		t.Errorf("warning printed despite --level error:\n%s", out)
	}
}

func TestPrintSortsBySourceAndPosition(t *testing.T) {
	late := diag.NewProblem(diag.NewAt(diag.SevWarning, diag.IDUnresolvedSymbolLink, "B.md", source.NewRange(9, 1, 9, 4), "late"))
	early := diag.NewProblem(diag.NewAt(diag.SevWarning, diag.IDUnresolvedSymbolLink, "B.md", source.NewRange(2, 1, 2, 4), "early"))
	first := diag.NewProblem(diag.NewAt(diag.SevWarning, diag.IDUnresolvedSymbolLink, "A.md", source.NewRange(7, 1, 7, 4), "first"))
	path := writeDiagnostics(t, "d.json", late, early, first)

	out, err := runCLI(t, "diagnostics", "print", path)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	i, j, k := strings.Index(out, "first"), strings.Index(out, "early"), strings.Index(out, "late")
	if i < 0 || j < 0 || k < 0 || !(i < j && j < k) {
		t.Fatalf("unsorted output:\n%s", out)
	}
}

func TestPrintSourcesShowsSnippet(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "Kit.md")
	if err := os.WriteFile(doc, []byte("# Kit\n\nSee ``Gizmo`` here.\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	d := diag.NewAt(diag.SevWarning, diag.IDUnresolvedSymbolLink, doc, source.NewRange(3, 7, 3, 12), "unresolved")
	missing := diag.NewAt(diag.SevWarning, diag.IDUnresolvedSymbolLink, filepath.Join(dir, "Gone.md"), source.NewRange(1, 1, 1, 2), "gone")
	path := writeDiagnostics(t, "d.json", diag.NewProblem(d), diag.NewProblem(missing))

	out, err := runCLI(t, "diagnostics", "print", path)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if strings.Contains(out, "^") {
		t.Fatalf("snippet printed without --sources:\n%s", out)
	}

	out, err = runCLI(t, "diagnostics", "print", "--sources", path)
	if err != nil {
		t.Fatalf("print --sources: %v", err)
	}
	if !strings.Contains(out, "See ``Gizmo`` here.\n      ^~~~~") {
		t.Errorf("output missing snippet:\n%s", out)
	}
	if !strings.Contains(out, "gone") {
		t.Errorf("unreadable source dropped its diagnostic:\n%s", out)
	}
}

func TestPrintRejectsNewerMajorVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.json")
	if err := os.WriteFile(path, []byte(`{"version":{"major":2,"minor":0,"patch":0},"diagnostics":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := runCLI(t, "diagnostics", "print", path)
	var verr *diagfmt.UnknownMajorVersionError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v", err)
	}
}

func TestMergeConcatenatesInputs(t *testing.T) {
	a := writeDiagnostics(t, "a.json", warningAt("first"))
	b := writeDiagnostics(t, "b.json", warningAt("second"), warningAt("third"))
	out := filepath.Join(t.TempDir(), "merged.json")

	if _, err := runCLI(t, "diagnostics", "merge", "-o", out, a, b); err != nil {
		t.Fatalf("merge: %v", err)
	}
	doc, err := diagfmt.ReadFile(out)
	if err != nil {
		t.Fatalf("read merged: %v", err)
	}
	var got []string
	for _, d := range doc.Diagnostics {
		got = append(got, d.Summary)
	}
	if strings.Join(got, ",") != "first,second,third" {
		t.Fatalf("merged = %v", got)
	}
}

func TestMergeReportsMissingInput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "merged.json")
	_, err := runCLI(t, "diagnostics", "merge", "-o", out, filepath.Join(t.TempDir(), "nope.json"))
	var missing *diagfmt.MissingFileError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v", err)
	}
}

func TestCacheCleanRequiresDirectory(t *testing.T) {
	if _, err := runCLI(t, "cache", "clean"); err == nil {
		t.Fatal("expected error without a cache directory")
	}
	dir := filepath.Join(t.TempDir(), "cache")
	out, err := runCLI(t, "cache", "clean", "--dir", dir)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if !strings.Contains(out, dir) {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache dir not recreated: %v", err)
	}
}

func TestVersionJSON(t *testing.T) {
	out, err := runCLI(t, "version", "--format", "json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if payload.Tool != "doccomp" || payload.Version == "" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestRejectsUnknownColorMode(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config-dir", t.TempDir(), "--color", "rainbow", "version"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for unknown color mode")
	}
}

func TestMergeExpandsGlobs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.json"} {
		src := writeDiagnostics(t, name, warningAt(strings.TrimSuffix(name, ".json")))
		data, err := os.ReadFile(src)
		if err != nil {
			t.Fatal(err)
		}
		sub := filepath.Join(dir, "targets", strings.TrimSuffix(name, ".json"))
		if err := os.MkdirAll(sub, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(sub, "diagnostics.json"), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	out := filepath.Join(dir, "targets", "merged.json")

	if _, err := runCLI(t, "diagnostics", "merge", "-o", out, filepath.Join(dir, "**", "*.json")); err != nil {
		t.Fatalf("merge: %v", err)
	}
	doc, err := diagfmt.ReadFile(out)
	if err != nil {
		t.Fatalf("read merged: %v", err)
	}
	if len(doc.Diagnostics) != 2 || doc.Diagnostics[0].Summary != "a" || doc.Diagnostics[1].Summary != "b" {
		t.Fatalf("merged = %+v", doc.Diagnostics)
	}

	if _, err := runCLI(t, "diagnostics", "merge", "-o", out, filepath.Join(dir, "*.nothing")); err == nil {
		t.Fatal("expected error for a glob without matches")
	}
}
