package markup

import "doccomp/internal/diag"

// knownDirectives are the block directives whose arguments are validated.
// Directives not listed here are left alone.
var knownDirectives = map[string][]ArgumentSpec{
	"Image": {
		{Name: "source", Required: true},
		{Name: "alt"},
	},
	"Video": {
		{Name: "source", Required: true},
		{Name: "alt"},
		{Name: "poster"},
	},
	"Links": {
		{Name: "visualStyle", Required: true, Allowed: []string{"list", "compactGrid", "detailedGrid"}},
	},
	"Row": {
		{Name: "numberOfColumns"},
	},
	"Column": {
		{Name: "size"},
	},
	"CallToAction": {
		{Name: "url"},
		{Name: "file"},
		{Name: "purpose", Allowed: []string{"download", "link"}},
		{Name: "label"},
	},
	"Small":        nil,
	"Comment":      nil,
	"TabNavigator": nil,
}

// Directives returns every directive in content, outer ones first.
func Directives(content []Node) []*Directive {
	var out []*Directive
	var walk func([]Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			switch n := n.(type) {
			case *Directive:
				out = append(out, n)
				walk(n.Children)
			case *Paragraph:
				walk(n.Children)
			}
		}
	}
	walk(content)
	return out
}

// CheckDirectives runs ParseArguments over every known directive in content.
func CheckDirectives(content []Node, src string) []diag.Problem {
	var problems []diag.Problem
	for _, d := range Directives(content) {
		specs, ok := knownDirectives[d.Name]
		if !ok {
			continue
		}
		_, ps := ParseArguments(d, specs, src)
		problems = append(problems, ps...)
	}
	return problems
}
