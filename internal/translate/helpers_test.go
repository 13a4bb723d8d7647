package translate

import (
	"doccomp/internal/markup"
	"doccomp/internal/render"
	"doccomp/internal/source"
	"doccomp/internal/symbol"
	"doccomp/internal/topic"
)

const bundle = "org.example.kit"

type fakeLinks struct {
	symbols map[string]string // precise identifier → path
	links   map[string]string // link text → path
}

func (f fakeLinks) ResolveLink(dest string) (topic.Reference, bool) {
	p, ok := f.links[dest]
	if !ok {
		return topic.Reference{}, false
	}
	return topic.NewReference(bundle, p, ""), true
}

func (f fakeLinks) ResolveSymbol(usr string) (topic.Reference, bool) {
	p, ok := f.symbols[usr]
	if !ok {
		return topic.Reference{}, false
	}
	return topic.NewReference(bundle, p, ""), true
}

func docURL(p string) string {
	return topic.NewReference(bundle, p, "").URL()
}

func frag(kind symbol.FragmentKind, spelling string) symbol.Fragment {
	return symbol.Fragment{Kind: kind, Spelling: spelling}
}

func typeFrag(spelling, usr string) symbol.Fragment {
	return symbol.Fragment{Kind: symbol.FragmentTypeIdentifier, Spelling: spelling, PreciseIdentifier: usr}
}

// fooDecl builds `func foo(_ x: <T>)`.
func fooDecl(typ, usr string) []symbol.Fragment {
	return []symbol.Fragment{
		frag(symbol.FragmentKeyword, "func"),
		frag(symbol.FragmentText, " "),
		frag(symbol.FragmentIdentifier, "foo"),
		frag(symbol.FragmentText, "("),
		frag(symbol.FragmentExternalParam, "_"),
		frag(symbol.FragmentText, " "),
		frag(symbol.FragmentInternalParam, "x"),
		frag(symbol.FragmentText, ": "),
		typeFrag(typ, usr),
		frag(symbol.FragmentText, ")"),
	}
}

func para(text string) []markup.Node {
	return []markup.Node{&markup.Paragraph{Children: []markup.Node{&markup.Text{Text: text}}}}
}

func rng(line int) *source.Range {
	r := source.NewRange(line, 1, line, 10)
	return &r
}

func highlighted(tokens []render.DeclarationToken) []render.DeclarationToken {
	var out []render.DeclarationToken
	for _, t := range tokens {
		if t.Highlight {
			out = append(out, t)
		}
	}
	return out
}
