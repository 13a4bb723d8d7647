package translate

import (
	"fmt"
	"slices"
	"strings"

	"doccomp/internal/diag"
	"doccomp/internal/lang"
	"doccomp/internal/markup"
	"doccomp/internal/source"
	"doccomp/internal/symbol"
)

// Validate reports documentation problems of sym, located in sym.DocSource.
// Every language variant is checked; a problem found in several variants at
// the same place is reported once.
func Validate(sym *symbol.Symbol, links markup.LinkResolver) []diag.Problem {
	v := &validator{sym: sym, resolver: links, seen: make(map[problemKey]struct{})}
	eachVariant(sym.Parameters, v.parameters)
	eachVariant(sym.HTTPResponses, v.responses)
	eachVariant(sym.PossibleValues, v.possibleValues)

	eachVariant(sym.HTTPBody, func(_ lang.Language, b symbol.HTTPBody) {
		v.checkContent(b.Contents)
		for _, p := range b.Parameters {
			v.checkContent(p.Contents)
		}
	})
	eachVariant(sym.HTTPParameters, func(_ lang.Language, params []symbol.HTTPParameter) {
		for _, p := range params {
			v.checkContent(p.Contents)
		}
	})
	eachVariant(sym.DictionaryKeys, func(_ lang.Language, keys []symbol.DictionaryKey) {
		for _, k := range keys {
			v.checkContent(k.Contents)
		}
	})
	return v.problems
}

func eachVariant[T any](vs symbol.Variants[T], fn func(lang.Language, T)) {
	for _, l := range vs.Languages() {
		val, _ := vs.Get(l)
		fn(l, val)
	}
}

type problemKey struct {
	id      string
	summary string
	rng     source.Range
}

type validator struct {
	sym      *symbol.Symbol
	resolver markup.LinkResolver
	seen     map[problemKey]struct{}
	problems []diag.Problem
}

func (v *validator) report(p diag.Problem) {
	d := p.Diagnostic
	key := problemKey{id: d.Identifier, summary: d.Summary}
	if d.Range != nil {
		key.rng = *d.Range
	}
	if _, dup := v.seen[key]; dup {
		return
	}
	v.seen[key] = struct{}{}
	v.problems = append(v.problems, p)
}

func (v *validator) at(sev diag.Severity, id string, rng *source.Range, summary string) diag.Diagnostic {
	if rng == nil {
		d := diag.New(sev, id, summary)
		d.Source = v.sym.DocSource
		return d
	}
	return diag.NewAt(sev, id, v.sym.DocSource, *rng, summary)
}

func (v *validator) withFirst(d diag.Diagnostic, first *source.Range, msg string) diag.Diagnostic {
	if first == nil {
		return d
	}
	return d.WithNote(v.sym.DocSource, *first, msg)
}

func removal(p diag.Problem, rng *source.Range, summary string) diag.Problem {
	if rng == nil {
		return p
	}
	return p.WithSolution(summary, diag.Replacement{Range: *rng})
}

func (v *validator) parameters(_ lang.Language, params symbol.Parameters) {
	first := make(map[string]symbol.DocumentedParameter, len(params.Documented))
	for _, p := range params.Documented {
		v.checkContent(p.Contents)
		if prev, dup := first[p.Name]; dup {
			d := v.at(diag.SevWarning, diag.IDDuplicateParameterDoc, p.Range,
				fmt.Sprintf("Parameter %q is already documented", p.Name))
			d = v.withFirst(d, prev.Range, "Previous documentation is here")
			v.report(removal(diag.NewProblem(d), p.Range, "Remove duplicate parameter documentation"))
			continue
		}
		first[p.Name] = p

		if params.Signature != nil && !slices.Contains(params.Signature, p.Name) {
			d := v.at(diag.SevWarning, diag.IDParameterNotFound, p.Range,
				fmt.Sprintf("Parameter %q not found in %s declaration", p.Name, v.sym.Title))
			if len(params.Signature) > 0 {
				d = d.WithExplanation("Declared parameters: " + strings.Join(params.Signature, ", "))
			}
			v.report(removal(diag.NewProblem(d), p.Range, fmt.Sprintf("Remove %q parameter documentation", p.Name)))
		}
	}

	if len(params.Documented) == 0 {
		return
	}
	for _, name := range params.Signature {
		if _, ok := first[name]; ok {
			continue
		}
		v.report(diag.NewProblem(v.at(diag.SevWarning, diag.IDMissingParameterDoc, nil,
			fmt.Sprintf("Parameter %q is missing documentation", name))))
	}
}

func (v *validator) responses(_ lang.Language, responses []symbol.HTTPResponse) {
	first := make(map[int]symbol.HTTPResponse, len(responses))
	for _, r := range responses {
		v.checkContent(r.Contents)
		prev, dup := first[r.StatusCode]
		if !dup {
			first[r.StatusCode] = r
			continue
		}
		d := v.at(diag.SevWarning, diag.IDDuplicateHTTPResponse, r.Range,
			fmt.Sprintf("Response status %d is documented more than once", r.StatusCode))
		d = v.withFirst(d, prev.Range, "First documented here")
		v.report(removal(diag.NewProblem(d), r.Range, "Remove duplicate response documentation"))
	}
}

func (v *validator) possibleValues(l lang.Language, values []symbol.PossibleValue) {
	allowed := allowedValues(v.sym, l)
	first := make(map[string]symbol.PossibleValue, len(values))
	for _, pv := range values {
		v.checkContent(pv.Contents)
		if prev, dup := first[pv.Value]; dup {
			d := v.at(diag.SevWarning, diag.IDDuplicatePossibleValue, pv.Range,
				fmt.Sprintf("Possible value %q is documented more than once", pv.Value))
			d = v.withFirst(d, prev.Range, "First documented here")
			v.report(removal(diag.NewProblem(d), pv.Range, "Remove duplicate value documentation"))
			continue
		}
		first[pv.Value] = pv

		if allowed != nil && !slices.Contains(allowed, pv.Value) {
			d := v.at(diag.SevWarning, diag.IDUnknownPossibleValue, pv.Range,
				fmt.Sprintf("%q is not a possible value of %s", pv.Value, v.sym.Title)).
				WithExplanation("Allowed values: " + strings.Join(allowed, ", "))
			v.report(removal(diag.NewProblem(d), pv.Range, fmt.Sprintf("Remove %q documentation", pv.Value)))
		}
	}
}

// checkContent reports unresolved links and invalid directive arguments.
func (v *validator) checkContent(content []markup.Node) {
	for _, p := range markup.CheckDirectives(content, v.sym.DocSource) {
		v.report(p)
	}
	for _, link := range markup.Unresolved(content, v.resolver) {
		v.report(diag.NewProblem(v.at(diag.SevWarning, diag.IDUnresolvedSymbolLink, link.Rng,
			fmt.Sprintf("%q doesn't exist at this location", link.Destination))))
	}
}
