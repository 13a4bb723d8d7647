// Package markup is the small slice of the documentation markup tree that the
// translators look at: paragraphs, inline text, code voice, symbol links and
// block directives with their argument lists. Parsing markup is out of scope;
// callers build these nodes from their own parser.
package markup

import (
	"fmt"
	"strings"

	"doccomp/internal/source"
)

// Node is any markup node.
type Node interface {
	Range() *source.Range
	node()
}

type Paragraph struct {
	Children []Node
	Rng      *source.Range
}

type Text struct {
	Text string
	Rng  *source.Range
}

type CodeVoice struct {
	Code string
	Rng  *source.Range
}

// SymbolLink is a symbol link written in double backticks; Destination is
// the raw link text.
type SymbolLink struct {
	Destination string
	Rng         *source.Range
}

// RawArgument is one `name: value` pair as written in a directive.
type RawArgument struct {
	Name       string
	Value      string
	NameRange  source.Range
	ValueRange source.Range
}

// Range covers the whole `name: value` text.
func (a RawArgument) Range() source.Range {
	return a.NameRange.Cover(a.ValueRange)
}

// Directive is a block directive such as `@Metadata(...) { ... }`.
type Directive struct {
	Name      string
	Arguments []RawArgument
	Children  []Node
	Rng       *source.Range
}

func (n *Paragraph) Range() *source.Range  { return n.Rng }
func (n *Text) Range() *source.Range       { return n.Rng }
func (n *CodeVoice) Range() *source.Range  { return n.Rng }
func (n *SymbolLink) Range() *source.Range { return n.Rng }
func (n *Directive) Range() *source.Range  { return n.Rng }

func (*Paragraph) node()  {}
func (*Text) node()       {}
func (*CodeVoice) node()  {}
func (*SymbolLink) node() {}
func (*Directive) node()  {}

// Dump renders nodes as a compact, stable debug string.
func Dump(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		dump(&b, n)
	}
	return b.String()
}

func dump(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Paragraph:
		b.WriteString("(p ")
		for _, c := range n.Children {
			dump(b, c)
		}
		b.WriteString(")")
	case *Text:
		fmt.Fprintf(b, "%q", n.Text)
	case *CodeVoice:
		fmt.Fprintf(b, "`%s`", n.Code)
	case *SymbolLink:
		fmt.Fprintf(b, "``%s``", n.Destination)
	case *Directive:
		fmt.Fprintf(b, "(@%s", n.Name)
		for _, a := range n.Arguments {
			fmt.Fprintf(b, " %s=%q", a.Name, a.Value)
		}
		for _, c := range n.Children {
			b.WriteByte(' ')
			dump(b, c)
		}
		b.WriteString(")")
	}
}
