package translate

import (
	"doccomp/internal/lang"
	"doccomp/internal/markup"
	"doccomp/internal/render"
	"doccomp/internal/symbol"
)

// Context carries per-page state shared by the translators of one symbol.
type Context struct {
	Links      markup.LinkResolver
	References *render.ReferenceCollector
}

func NewContext(links markup.LinkResolver) *Context {
	return &Context{Links: links, References: render.NewReferenceCollector()}
}

// Translator produces one kind of section.
type Translator interface {
	Translate(sym *symbol.Symbol, ctx *Context) *render.VariantCollection[render.Section]
}

// Default returns every translator in page order.
func Default() []Translator {
	return []Translator{
		Declarations{},
		Parameters{},
		HTTPEndpoint{},
		HTTPParameters{Source: symbol.ParameterPath},
		HTTPParameters{Source: symbol.ParameterQuery},
		HTTPParameters{Source: symbol.ParameterHeader},
		HTTPBody{},
		HTTPResponses{},
		DictionaryKeys{},
		Attributes{},
		PossibleValues{},
	}
}

// Page runs translators over sym and assembles the rendered page.
func Page(sym *symbol.Symbol, identifier string, ctx *Context, translators []Translator) *render.Page {
	page := &render.Page{
		Identifier: identifier,
		Kind:       "symbol",
		Title:      sym.Title,
	}
	for _, l := range sym.Languages {
		page.Languages = append(page.Languages, l.ID())
	}
	for _, t := range translators {
		if s := t.Translate(sym, ctx); s != nil {
			page.Sections = append(page.Sections, s)
		}
	}
	page.References = ctx.References.Identifiers()
	return page
}

// variants maps fn over every language of v. The primary language's result
// is the default; no collection is built when it yields nothing.
func variants[T any](v symbol.Variants[T], fn func(l lang.Language, value T) (render.Section, bool)) *render.VariantCollection[render.Section] {
	primary, ok := v.Primary()
	if !ok {
		return nil
	}
	def, _ := v.Default()
	section, ok := fn(primary, def)
	if !ok {
		return nil
	}
	out := render.NewVariantCollection(section)
	for _, l := range v.Overrides() {
		value, _ := v.Get(l)
		if s, ok := fn(l, value); ok {
			out.Add(l.ID(), s)
		}
	}
	return out
}

func (ctx *Context) tokens(frags []symbol.Fragment) []render.DeclarationToken {
	out := make([]render.DeclarationToken, 0, len(frags))
	for _, f := range frags {
		tok := render.DeclarationToken{
			Text:              f.Spelling,
			Kind:              render.TokenKind(f.Kind),
			PreciseIdentifier: f.PreciseIdentifier,
		}
		if id := ctx.resolveSymbol(f.PreciseIdentifier); id != "" {
			tok.Identifier = id
		}
		out = append(out, tok)
	}
	return out
}

// resolveSymbol returns the topic URL for a precise identifier and records it.
func (ctx *Context) resolveSymbol(preciseIdentifier string) string {
	if preciseIdentifier == "" || ctx.Links == nil {
		return ""
	}
	ref, ok := ctx.Links.ResolveSymbol(preciseIdentifier)
	if !ok {
		return ""
	}
	id := ref.URL()
	ctx.References.Add(id)
	return id
}

func (ctx *Context) content(nodes []markup.Node) []render.BlockContent {
	if len(nodes) == 0 {
		return nil
	}
	return markup.Render(nodes, ctx.Links, ctx.References)
}
