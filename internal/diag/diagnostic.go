package diag

import (
	"slices"

	"doccomp/internal/source"
)

// Note attaches a secondary message to a location other than the primary one.
type Note struct {
	Source  string
	Range   source.Range
	Message string
}

// Diagnostic describes a single issue. Values are never mutated in place once
// built; transformations return copies.
type Diagnostic struct {
	Source      string
	Severity    Severity
	Range       *source.Range
	Identifier  string
	Summary     string
	Explanation string
	Notes       []Note
}

// New constructs a diagnostic without a location.
func New(sev Severity, id, summary string) Diagnostic {
	return Diagnostic{
		Severity:   sev,
		Identifier: id,
		Summary:    summary,
	}
}

// NewAt constructs a diagnostic pointing at rng inside src.
func NewAt(sev Severity, id, src string, rng source.Range, summary string) Diagnostic {
	d := New(sev, id, summary)
	d.Source = src
	d.Range = &rng
	return d
}

func (d Diagnostic) WithExplanation(text string) Diagnostic {
	d.Explanation = text
	return d
}

func (d Diagnostic) WithNote(src string, rng source.Range, msg string) Diagnostic {
	d.Notes = append(slices.Clone(d.Notes), Note{Source: src, Range: rng, Message: msg})
	return d
}

func (d Diagnostic) WithSeverity(sev Severity) Diagnostic {
	d.Severity = sev
	return d
}

// Offset returns a copy whose range is shifted by the start of base.
// Diagnostics without a range are returned unchanged.
func (d Diagnostic) Offset(base source.Range) Diagnostic {
	d.Notes = slices.Clone(d.Notes)
	if d.Range != nil {
		shifted := d.Range.Offset(base)
		d.Range = &shifted
	}
	return d
}

func rangeOrZero(d Diagnostic) source.Range {
	if d.Range == nil {
		return source.Range{}
	}
	return *d.Range
}
