package translate

import (
	"doccomp/internal/lang"
	"doccomp/internal/render"
	"doccomp/internal/symbol"
)

// Declarations renders the declaration section. When the symbol belongs to an
// overload group, the first declaration and every resolvable overload are
// diffed and their distinguishing tokens highlighted.
type Declarations struct{}

func (Declarations) Translate(sym *symbol.Symbol, ctx *Context) *render.VariantCollection[render.Section] {
	return variants(sym.Declarations, func(l lang.Language, decls []symbol.Declaration) (render.Section, bool) {
		if len(decls) == 0 {
			return nil, false
		}
		section := &render.DeclarationsSection{Declarations: make([]render.Declaration, 0, len(decls))}
		for _, d := range decls {
			section.Declarations = append(section.Declarations, render.Declaration{
				Tokens:    ctx.tokens(d.Fragments),
				Platforms: d.Platforms,
				Languages: []string{l.ID()},
			})
		}

		group, ok := sym.Overloads.Get(l)
		if !ok || len(group.Overloads) == 0 {
			return section, true
		}

		all := [][]render.DeclarationToken{section.Declarations[0].Tokens}
		var others []render.OtherDeclaration
		for _, o := range group.Overloads {
			id := ctx.resolveSymbol(o.PreciseIdentifier)
			if id == "" {
				continue
			}
			toks := ctx.tokens(o.Fragments)
			all = append(all, toks)
			others = append(others, render.OtherDeclaration{Tokens: toks, Identifier: id})
		}
		if len(others) == 0 {
			return section, true
		}

		highlighted := highlightOverloads(all)
		section.Declarations[0].Tokens = highlighted[0]
		for i := range others {
			others[i].Tokens = highlighted[i+1]
		}
		section.Declarations[0].OtherDeclarations = &render.OtherDeclarations{
			Declarations: others,
			DisplayIndex: group.DisplayIndex,
		}
		return section, true
	})
}
