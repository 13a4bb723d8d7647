package markup

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/unicode/norm"

	"doccomp/internal/diag"
	"doccomp/internal/source"
)

// ArgumentSpec describes one argument a directive accepts.
type ArgumentSpec struct {
	Name     string
	Required bool
	// Allowed restricts the value when non-empty.
	Allowed []string
}

// Argument is a validated directive argument.
type Argument struct {
	Name       string
	Value      string
	NameRange  source.Range
	ValueRange source.Range
}

// ParseArguments validates d's arguments against specs. Only arguments that
// passed every check are returned; everything else is reported as a problem
// located in src. Problems never stop the remaining arguments from parsing.
func ParseArguments(d *Directive, specs []ArgumentSpec, src string) (map[string]Argument, []diag.Problem) {
	known := make(map[string]ArgumentSpec, len(specs))
	names := make([]string, 0, len(specs))
	for _, s := range specs {
		name := normalizeName(s.Name)
		known[name] = s
		names = append(names, name)
	}

	parsed := make(map[string]Argument, len(d.Arguments))
	first := make(map[string]RawArgument, len(d.Arguments))
	var problems []diag.Problem
	warned := make(map[source.Range]struct{})

	for _, raw := range d.Arguments {
		name := normalizeName(raw.Name)

		if prev, dup := first[name]; dup {
			rng := raw.Range()
			if _, seen := warned[rng]; seen {
				continue
			}
			warned[rng] = struct{}{}
			p := diag.NewProblem(
				diag.NewAt(diag.SevWarning, diag.IDDirectiveDuplicateArgument, src, rng,
					fmt.Sprintf("Duplicate argument %q for @%s", name, d.Name)).
					WithNote(src, prev.Range(), fmt.Sprintf("First %q argument is here", name)),
			).WithSolution(fmt.Sprintf("Remove duplicate %q argument", name), diag.Replacement{Range: rng})
			problems = append(problems, p)
			continue
		}
		first[name] = raw

		spec, ok := known[name]
		if !ok {
			dg := diag.NewAt(diag.SevWarning, diag.IDDirectiveUnknownArgument, src, raw.NameRange,
				fmt.Sprintf("Unknown argument %q for @%s", name, d.Name))
			if len(names) > 0 {
				dg = dg.WithExplanation(fmt.Sprintf("@%s accepts: %s", d.Name, strings.Join(names, ", ")))
			}
			p := diag.NewProblem(dg)
			if best, ok := closest(name, names); ok {
				p = p.WithSolution(fmt.Sprintf("Replace %q with %q", name, best),
					diag.Replacement{Range: raw.NameRange, Replacement: best})
			}
			problems = append(problems, p)
			continue
		}

		if len(spec.Allowed) > 0 && !slices.Contains(spec.Allowed, raw.Value) {
			p := diag.NewProblem(diag.NewAt(diag.SevWarning, diag.IDDirectiveInvalidArgumentValue, src, raw.ValueRange,
				fmt.Sprintf("Invalid value %q for argument %q of @%s", raw.Value, name, d.Name)).
				WithExplanation(fmt.Sprintf("Allowed values: %s", strings.Join(spec.Allowed, ", "))))
			for _, allowed := range spec.Allowed {
				p = p.WithSolution(fmt.Sprintf("Use %q", allowed),
					diag.Replacement{Range: raw.ValueRange, Replacement: allowed})
			}
			problems = append(problems, p)
			continue
		}

		parsed[name] = Argument{
			Name:       name,
			Value:      raw.Value,
			NameRange:  raw.NameRange,
			ValueRange: raw.ValueRange,
		}
	}

	for _, name := range names {
		spec := known[name]
		if !spec.Required {
			continue
		}
		if _, present := first[name]; present {
			continue
		}
		summary := fmt.Sprintf("Missing required argument %q for @%s", name, d.Name)
		var dg diag.Diagnostic
		if d.Rng != nil {
			dg = diag.NewAt(diag.SevWarning, diag.IDDirectiveMissingRequiredArgument, src, *d.Rng, summary)
		} else {
			dg = diag.New(diag.SevWarning, diag.IDDirectiveMissingRequiredArgument, summary)
			dg.Source = src
		}
		problems = append(problems, diag.NewProblem(dg))
	}
	return parsed, problems
}

func normalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// closest returns the known name nearest to name, if any is near enough to be
// a plausible typo.
func closest(name string, known []string) (string, bool) {
	best, bestDist := "", -1
	for _, k := range known {
		if strings.EqualFold(k, name) {
			return k, true
		}
		d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(k))
		if bestDist < 0 || d < bestDist {
			best, bestDist = k, d
		}
	}
	if bestDist < 0 || bestDist > max(2, len([]rune(name))/3) {
		return "", false
	}
	return best, true
}
