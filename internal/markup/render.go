package markup

import (
	"doccomp/internal/render"
	"doccomp/internal/topic"
)

// LinkResolver resolves link destinations and symbol identifiers to topics.
type LinkResolver interface {
	ResolveLink(destination string) (topic.Reference, bool)
	ResolveSymbol(preciseIdentifier string) (topic.Reference, bool)
}

// Render converts markup into render content, recording every resolved
// reference in refs. Unresolved symbol links render as code voice.
func Render(content []Node, links LinkResolver, refs *render.ReferenceCollector) []render.BlockContent {
	var blocks []render.BlockContent
	var loose []render.InlineContent
	flush := func() {
		if len(loose) > 0 {
			blocks = append(blocks, render.Paragraph(loose...))
			loose = nil
		}
	}
	for _, n := range content {
		switch n := n.(type) {
		case *Paragraph:
			flush()
			blocks = append(blocks, render.Paragraph(renderInline(n.Children, links, refs)...))
		case *Directive:
			flush()
			blocks = append(blocks, Render(n.Children, links, refs)...)
		default:
			loose = append(loose, renderInline([]Node{n}, links, refs)...)
		}
	}
	flush()
	return blocks
}

func renderInline(nodes []Node, links LinkResolver, refs *render.ReferenceCollector) []render.InlineContent {
	out := make([]render.InlineContent, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case *Text:
			out = append(out, render.Text(n.Text))
		case *CodeVoice:
			out = append(out, render.CodeVoice(n.Code))
		case *SymbolLink:
			if links != nil {
				if ref, ok := links.ResolveLink(n.Destination); ok {
					id := ref.URL()
					refs.Add(id)
					out = append(out, render.ReferenceTo(id))
					continue
				}
			}
			out = append(out, render.CodeVoice(n.Destination))
		case *Paragraph:
			out = append(out, renderInline(n.Children, links, refs)...)
		}
	}
	return out
}

// Unresolved returns the symbol links in content that links cannot resolve.
func Unresolved(content []Node, links LinkResolver) []*SymbolLink {
	var out []*SymbolLink
	var walk func([]Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			switch n := n.(type) {
			case *SymbolLink:
				if links == nil {
					out = append(out, n)
				} else if _, ok := links.ResolveLink(n.Destination); !ok {
					out = append(out, n)
				}
			case *Paragraph:
				walk(n.Children)
			case *Directive:
				walk(n.Children)
			}
		}
	}
	walk(content)
	return out
}
