package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Range is a half-open (line,column)–(line,column) span.
type Range struct {
	Start Location `json:"start"`
	End   Location `json:"end"`
}

// NewRange builds a range from raw line/column numbers.
func NewRange(startLine, startCol, endLine, endCol int) Range {
	return Range{
		Start: Location{Line: startLine, Column: startCol},
		End:   Location{Line: endLine, Column: endCol},
	}
}

func (r Range) Empty() bool {
	return r.Start == r.End
}

func (r Range) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", r.Start.Line, r.Start.Column, r.End.Line, r.End.Column)
}

// Contains reports whether loc lies inside r (end exclusive).
func (r Range) Contains(loc Location) bool {
	return !loc.Less(r.Start) && loc.Less(r.End)
}

// Cover returns the smallest range spanning both r and other.
func (r Range) Cover(other Range) Range {
	if other.Start.Less(r.Start) {
		r.Start = other.Start
	}
	if r.End.Less(other.End) {
		r.End = other.End
	}
	return r
}

// Offset shifts r by the start of base. It is used when a range was computed
// relative to a doc comment that is embedded in a larger file: the comment's
// own start line/column is added to both ends.
func (r Range) Offset(base Range) Range {
	return Range{
		Start: shift(r.Start, base.Start),
		End:   shift(r.End, base.Start),
	}
}

func shift(loc, by Location) Location {
	line, err := safecast.Conv[int32](loc.Line + by.Line)
	if err != nil {
		panic(fmt.Errorf("line offset overflow: %w", err))
	}
	col, err := safecast.Conv[int32](loc.Column + by.Column)
	if err != nil {
		panic(fmt.Errorf("column offset overflow: %w", err))
	}
	return Location{Line: int(line), Column: int(col)}
}
