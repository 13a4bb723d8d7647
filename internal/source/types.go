package source

import "fmt"

// Location is a 1-based line/column position in a documentation source.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Less reports whether l comes strictly before other.
func (l Location) Less(other Location) bool {
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Column < other.Column
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// File captures content for a single documentation source (markup file, doc comment dump).
type File struct {
	Path    string
	Content []byte
	LineIdx []int // offsets of '\n'
}
