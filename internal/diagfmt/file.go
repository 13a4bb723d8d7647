package diagfmt

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"doccomp/internal/diag"
	"doccomp/internal/source"
)

// Version is the schema version of a diagnostics file.
type Version struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// CurrentVersion is written by FileWriter. Readers accept any file with the
// same major version.
var CurrentVersion = Version{Major: 1, Minor: 0, Patch: 0}

// FileDocument is the root of a diagnostics file.
type FileDocument struct {
	Version     Version          `json:"version"`
	Diagnostics []FileDiagnostic `json:"diagnostics"`
}

type FileDiagnostic struct {
	Source      string         `json:"source,omitempty"`
	Range       *source.Range  `json:"range,omitempty"`
	Severity    string         `json:"severity"`
	Identifier  string         `json:"identifier,omitempty"`
	Summary     string         `json:"summary"`
	Explanation string         `json:"explanation,omitempty"`
	Solutions   []FileSolution `json:"solutions,omitempty"`
	Notes       []FileNote     `json:"notes,omitempty"`
}

type FileSolution struct {
	Summary      string            `json:"summary"`
	Replacements []FileReplacement `json:"replacements"`
}

type FileReplacement struct {
	Range source.Range `json:"range"`
	Text  string       `json:"text"`
}

type FileNote struct {
	Source  string       `json:"source,omitempty"`
	Range   source.Range `json:"range"`
	Message string       `json:"message"`
}

// UnknownMajorVersionError is returned when a file was written by an
// incompatible writer.
type UnknownMajorVersionError struct {
	Path    string
	Found   Version
	Current Version
}

func (e *UnknownMajorVersionError) Error() string {
	return fmt.Sprintf("%s: unknown diagnostics file major version %d (this reader understands %d.x.x)",
		e.Path, e.Found.Major, e.Current.Major)
}

// MissingFileError is returned by Merge when an input does not exist.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("diagnostics file %q does not exist", e.Path)
}

func fileSeverity(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	case diag.SevInformation:
		return "note"
	}
	return "remark"
}

// InvalidSeverityError is returned by ReadFile for a severity it does not know.
type InvalidSeverityError struct {
	Path     string
	Index    int
	Severity string
}

func (e *InvalidSeverityError) Error() string {
	return fmt.Sprintf("%s: diagnostic %d has unknown severity %q", e.Path, e.Index, e.Severity)
}

// parseFileSeverity accepts the names the writer emits ("note", "remark") and
// the model's own names ("information", "hint").
func parseFileSeverity(s string) (diag.Severity, bool) {
	switch strings.ToLower(s) {
	case "error":
		return diag.SevError, true
	case "warning":
		return diag.SevWarning, true
	case "note", "information":
		return diag.SevInformation, true
	case "remark", "hint":
		return diag.SevHint, true
	}
	return diag.SevError, false
}

// NewFileDiagnostic converts a problem to its serialised form.
func NewFileDiagnostic(p diag.Problem) FileDiagnostic {
	d := p.Diagnostic
	out := FileDiagnostic{
		Source:      d.Source,
		Range:       d.Range,
		Severity:    fileSeverity(d.Severity),
		Identifier:  d.Identifier,
		Summary:     d.Summary,
		Explanation: d.Explanation,
	}
	for _, sol := range p.PossibleSolutions {
		fs := FileSolution{Summary: sol.Summary, Replacements: make([]FileReplacement, 0, len(sol.Replacements))}
		for _, r := range sol.Replacements {
			fs.Replacements = append(fs.Replacements, FileReplacement{Range: r.Range, Text: r.Replacement})
		}
		out.Solutions = append(out.Solutions, fs)
	}
	for _, n := range d.Notes {
		out.Notes = append(out.Notes, FileNote{Source: n.Source, Range: n.Range, Message: n.Message})
	}
	return out
}

// Problem converts the serialised form back to a problem. An unknown severity
// is reported as an error; ReadFile rejects such files up front.
func (fd FileDiagnostic) Problem() diag.Problem {
	sev, _ := parseFileSeverity(fd.Severity)
	d := diag.Diagnostic{
		Source:      fd.Source,
		Range:       fd.Range,
		Severity:    sev,
		Identifier:  fd.Identifier,
		Summary:     fd.Summary,
		Explanation: fd.Explanation,
	}
	for _, n := range fd.Notes {
		d.Notes = append(d.Notes, diag.Note{Source: n.Source, Range: n.Range, Message: n.Message})
	}
	p := diag.NewProblem(d)
	for _, sol := range fd.Solutions {
		reps := make([]diag.Replacement, 0, len(sol.Replacements))
		for _, r := range sol.Replacements {
			reps = append(reps, diag.Replacement{Range: r.Range, Replacement: r.Text})
		}
		p = p.WithSolution(sol.Summary, reps...)
	}
	return p
}

// Problems converts every diagnostic of the document.
func (doc *FileDocument) Problems() []diag.Problem {
	out := make([]diag.Problem, 0, len(doc.Diagnostics))
	for _, fd := range doc.Diagnostics {
		out = append(out, fd.Problem())
	}
	return out
}

// FileWriter is a diag.Consumer that accumulates problems and rewrites one
// JSON file with all of them on every Flush.
type FileWriter struct {
	mu       sync.Mutex
	path     string
	received []FileDiagnostic
}

func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// Path returns the output path.
func (w *FileWriter) Path() string {
	return w.path
}

func (w *FileWriter) Receive(problems []diag.Problem) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, p := range problems {
		w.received = append(w.received, NewFileDiagnostic(p))
	}
}

func (w *FileWriter) Flush() error {
	w.mu.Lock()
	doc := FileDocument{
		Version:     CurrentVersion,
		Diagnostics: append(make([]FileDiagnostic, 0, len(w.received)), w.received...),
	}
	w.mu.Unlock()
	return WriteFile(w.path, &doc)
}

// WriteFile writes doc to path, replacing the file atomically.
func WriteFile(path string, doc *FileDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode diagnostics: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".diagnostics-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(append(data, '\n')); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// атомарная замена
	return os.Rename(tmp, path)
}

// ReadFile loads a diagnostics file. The version is checked before the body is
// decoded; files with another major version are rejected.
func ReadFile(path string) (*FileDocument, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var header struct {
		Version *Version `json:"version"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("%s: failed to parse diagnostics file: %w", path, err)
	}
	if header.Version == nil {
		return nil, fmt.Errorf("%s: diagnostics file has no version", path)
	}
	if header.Version.Major != CurrentVersion.Major {
		return nil, &UnknownMajorVersionError{Path: path, Found: *header.Version, Current: CurrentVersion}
	}
	var doc FileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: failed to parse diagnostics file: %w", path, err)
	}
	for i, fd := range doc.Diagnostics {
		if _, ok := parseFileSeverity(fd.Severity); !ok {
			return nil, &InvalidSeverityError{Path: path, Index: i, Severity: fd.Severity}
		}
	}
	return &doc, nil
}

// Merge concatenates the diagnostics of several files, in argument order.
func Merge(paths ...string) (*FileDocument, error) {
	merged := &FileDocument{Version: CurrentVersion, Diagnostics: []FileDiagnostic{}}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, &MissingFileError{Path: p}
			}
			return nil, err
		}
		doc, err := ReadFile(p)
		if err != nil {
			return nil, err
		}
		merged.Diagnostics = append(merged.Diagnostics, doc.Diagnostics...)
	}
	return merged, nil
}
