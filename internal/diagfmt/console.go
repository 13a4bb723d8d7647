package diagfmt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"doccomp/internal/diag"
	"doccomp/internal/source"
)

// ConsoleWriter is a diag.Consumer that writes human-readable lines.
type ConsoleWriter struct {
	mu   sync.Mutex
	out  *bufio.Writer
	opts ConsoleOptions

	errColor  *color.Color
	warnColor *color.Color
	noteColor *color.Color
	bold      *color.Color
}

// NewConsoleWriter writes to w, or to standard error when w is nil.
func NewConsoleWriter(w io.Writer, opts ConsoleOptions) *ConsoleWriter {
	if w == nil {
		w = os.Stderr
	}
	cw := &ConsoleWriter{
		out:       bufio.NewWriter(w),
		opts:      opts,
		errColor:  color.New(color.FgRed, color.Bold),
		warnColor: color.New(color.FgYellow, color.Bold),
		noteColor: color.New(color.FgCyan),
		bold:      color.New(color.Bold),
	}
	for _, c := range []*color.Color{cw.errColor, cw.warnColor, cw.noteColor, cw.bold} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return cw
}

func (w *ConsoleWriter) Receive(problems []diag.Problem) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range problems {
		_, _ = w.out.WriteString(w.format(&problems[i]))
		_ = w.out.WriteByte('\n')
	}
}

func (w *ConsoleWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out.Flush()
}

// Format renders a single problem without a trailing newline.
func (w *ConsoleWriter) Format(p diag.Problem) string {
	return w.format(&p)
}

func (w *ConsoleWriter) format(p *diag.Problem) string {
	d := &p.Diagnostic
	lines := make([]string, 0, 2+len(d.Notes))

	lines = append(lines, fmt.Sprintf("%s%s: %s",
		locationPrefix(d.Source, d.Range),
		w.severityLabel(d.Severity),
		w.bold.Sprint(d.Summary)))

	if snippet := w.snippet(d.Source, d.Range); snippet != "" {
		lines = append(lines, snippet)
	}
	if d.Explanation != "" {
		lines = append(lines, d.Explanation)
	}
	for _, note := range d.Notes {
		rng := note.Range
		lines = append(lines, fmt.Sprintf("%s%s: %s",
			locationPrefix(note.Source, &rng),
			w.noteColor.Sprint("note"),
			note.Message))
	}
	if w.opts.FixIts {
		for _, sol := range p.PossibleSolutions {
			for _, r := range sol.Replacements {
				lines = append(lines, fmt.Sprintf("%s:%d:%d-%d:%d: fixit: %s",
					d.Source,
					r.Range.Start.Line, r.Range.Start.Column,
					r.Range.End.Line, r.Range.End.Column,
					r.Replacement))
			}
		}
	}
	return strings.Join(lines, "\n")
}

func locationPrefix(src string, rng *source.Range) string {
	switch {
	case src == "":
		return ""
	case rng == nil:
		return src + ": "
	}
	return fmt.Sprintf("%s:%d:%d: ", src, rng.Start.Line, rng.Start.Column)
}

func (w *ConsoleWriter) severityLabel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return w.errColor.Sprint(sev.Label())
	case diag.SevWarning:
		return w.warnColor.Sprint(sev.Label())
	}
	return w.noteColor.Sprint(sev.Label())
}

// snippet renders the first line of rng with a ^~~~ underline; multi-line
// ranges are underlined up to the end of that first line.
func (w *ConsoleWriter) snippet(src string, rng *source.Range) string {
	if w.opts.Sources == nil || src == "" || rng == nil {
		return ""
	}
	line, ok := w.opts.Sources.Line(src, rng.Start.Line)
	if !ok {
		return ""
	}
	startCol := clamp(rng.Start.Column-1, 0, len(line))
	endCol := len(line)
	if rng.End.Line == rng.Start.Line {
		endCol = clamp(rng.End.Column-1, startCol, len(line))
	}

	pad := runewidth.StringWidth(strings.ReplaceAll(line[:startCol], "\t", "    "))
	width := max(runewidth.StringWidth(line[startCol:endCol]), 1)

	var b strings.Builder
	b.WriteString(strings.ReplaceAll(line, "\t", "    "))
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(w.errColor.Sprint("^" + strings.Repeat("~", width-1)))
	return b.String()
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
