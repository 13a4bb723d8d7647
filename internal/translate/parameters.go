package translate

import (
	"doccomp/internal/lang"
	"doccomp/internal/render"
	"doccomp/internal/symbol"
)

// Parameters renders documented parameters. With a known signature they are
// listed in signature order and parameters the signature lacks are dropped;
// without one they keep their documented order. Repeats keep the first entry.
type Parameters struct{}

func (Parameters) Translate(sym *symbol.Symbol, ctx *Context) *render.VariantCollection[render.Section] {
	return variants(sym.Parameters, func(_ lang.Language, params symbol.Parameters) (render.Section, bool) {
		byName := make(map[string]symbol.DocumentedParameter, len(params.Documented))
		order := make([]string, 0, len(params.Documented))
		for _, p := range params.Documented {
			if _, dup := byName[p.Name]; dup {
				continue
			}
			byName[p.Name] = p
			order = append(order, p.Name)
		}
		if params.Signature != nil {
			order = order[:0]
			for _, name := range params.Signature {
				if _, ok := byName[name]; ok {
					order = append(order, name)
				}
			}
		}
		if len(order) == 0 {
			return nil, false
		}

		section := &render.ParametersSection{Parameters: make([]render.Parameter, 0, len(order))}
		for _, name := range order {
			section.Parameters = append(section.Parameters, render.Parameter{
				Name:    name,
				Content: ctx.content(byName[name].Contents),
			})
		}
		return section, true
	})
}
