package translate

import (
	"slices"
	"strings"

	"doccomp/internal/lang"
	"doccomp/internal/render"
	"doccomp/internal/symbol"
)

// DictionaryKeys renders the keys of a dictionary symbol, sorted by name.
type DictionaryKeys struct{}

func (DictionaryKeys) Translate(sym *symbol.Symbol, ctx *Context) *render.VariantCollection[render.Section] {
	return variants(sym.DictionaryKeys, func(_ lang.Language, keys []symbol.DictionaryKey) (render.Section, bool) {
		if len(keys) == 0 {
			return nil, false
		}
		sorted := slices.Clone(keys)
		slices.SortStableFunc(sorted, func(a, b symbol.DictionaryKey) int { return strings.Compare(a.Name, b.Name) })

		section := &render.PropertiesSection{Title: "Properties"}
		for i, k := range sorted {
			if i > 0 && sorted[i-1].Name == k.Name {
				continue
			}
			section.Items = append(section.Items, render.Property{
				Name:       k.Name,
				Type:       ctx.tokens(k.Type),
				Content:    ctx.content(k.Contents),
				Attributes: ctx.attributes(k.Attributes, false),
				Required:   k.Required,
				Deprecated: k.Deprecated,
				ReadOnly:   k.ReadOnly,
			})
		}
		return section, true
	})
}

var attributeTitles = map[symbol.AttributeKind]string{
	symbol.AttributeDefault:          "Default value",
	symbol.AttributeMinimum:          "Minimum value",
	symbol.AttributeMaximum:          "Maximum value",
	symbol.AttributeMinimumExclusive: "Minimum value (exclusive)",
	symbol.AttributeMaximumExclusive: "Maximum value (exclusive)",
	symbol.AttributeAllowedValues:    "Possible values",
	symbol.AttributeAllowedTypes:     "Possible types",
}

// Attributes renders a symbol's constraints. Allowed values are left out when
// the symbol documents its possible values, which get their own section.
type Attributes struct{}

func (Attributes) Translate(sym *symbol.Symbol, ctx *Context) *render.VariantCollection[render.Section] {
	return variants(sym.Attributes, func(l lang.Language, attrs []symbol.Attribute) (render.Section, bool) {
		documented, _ := valueFor(sym.PossibleValues, l)
		rendered := ctx.attributes(attrs, len(documented) > 0)
		if len(rendered) == 0 {
			return nil, false
		}
		return &render.AttributesSection{Title: "Attributes", Attributes: rendered}, true
	})
}

func (ctx *Context) attributes(attrs []symbol.Attribute, skipAllowedValues bool) []render.Attribute {
	var out []render.Attribute
	for _, a := range attrs {
		if skipAllowedValues && a.Kind == symbol.AttributeAllowedValues {
			continue
		}
		title, ok := attributeTitles[a.Kind]
		if !ok {
			continue
		}
		ra := render.Attribute{
			Kind:   render.AttributeKind(a.Kind),
			Title:  title,
			Value:  a.Value,
			Values: a.Values,
		}
		for _, t := range a.Types {
			ra.Types = append(ra.Types, ctx.tokens(t))
		}
		out = append(out, ra)
	}
	return out
}

// PossibleValues renders documented possible values. When the symbol lists
// allowed values, those define the order and every allowed value appears,
// documented or not; documented values outside the list are dropped.
type PossibleValues struct{}

func (PossibleValues) Translate(sym *symbol.Symbol, ctx *Context) *render.VariantCollection[render.Section] {
	return variants(sym.PossibleValues, func(l lang.Language, documented []symbol.PossibleValue) (render.Section, bool) {
		if len(documented) == 0 {
			return nil, false
		}
		docs := make(map[string]symbol.PossibleValue, len(documented))
		order := make([]string, 0, len(documented))
		for _, v := range documented {
			if _, dup := docs[v.Value]; dup {
				continue
			}
			docs[v.Value] = v
			order = append(order, v.Value)
		}
		if allowed := allowedValues(sym, l); allowed != nil {
			order = allowed
		}

		section := &render.PossibleValuesSection{Title: "Possible Values"}
		for _, value := range order {
			section.Values = append(section.Values, render.PossibleValue{
				Value:   value,
				Content: ctx.content(docs[value].Contents),
			})
		}
		return section, true
	})
}

// allowedValues returns the allowedValues attribute for l, or nil.
func allowedValues(sym *symbol.Symbol, l lang.Language) []string {
	attrs, _ := valueFor(sym.Attributes, l)
	for _, a := range attrs {
		if a.Kind == symbol.AttributeAllowedValues {
			return a.Values
		}
	}
	return nil
}

// valueFor returns v's value for l, falling back to the default.
func valueFor[T any](v symbol.Variants[T], l lang.Language) (T, bool) {
	if val, ok := v.Get(l); ok {
		return val, true
	}
	return v.Default()
}
