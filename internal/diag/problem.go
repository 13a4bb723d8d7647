package diag

import (
	"slices"

	"doccomp/internal/source"
)

// Replacement is a machine-applicable text edit.
type Replacement struct {
	Range       source.Range
	Replacement string
}

// Solution is one way of addressing a problem.
type Solution struct {
	Summary      string
	Replacements []Replacement
}

// Problem is a diagnostic together with possible solutions.
type Problem struct {
	Diagnostic        Diagnostic
	PossibleSolutions []Solution
}

// NewProblem wraps d with no solutions.
func NewProblem(d Diagnostic) Problem {
	return Problem{Diagnostic: d}
}

// WithSolution appends a solution built from replacements.
func (p Problem) WithSolution(summary string, replacements ...Replacement) Problem {
	p.PossibleSolutions = append(slices.Clone(p.PossibleSolutions), Solution{
		Summary:      summary,
		Replacements: replacements,
	})
	return p
}

// Offset shifts the diagnostic and every replacement range by the start of base.
// The result shares no slices with p.
func (p Problem) Offset(base source.Range) Problem {
	out := Problem{Diagnostic: p.Diagnostic.Offset(base)}
	if len(p.PossibleSolutions) == 0 {
		return out
	}
	out.PossibleSolutions = make([]Solution, len(p.PossibleSolutions))
	for i, sol := range p.PossibleSolutions {
		reps := make([]Replacement, len(sol.Replacements))
		for j, r := range sol.Replacements {
			reps[j] = Replacement{Range: r.Range.Offset(base), Replacement: r.Replacement}
		}
		out.PossibleSolutions[i] = Solution{Summary: sol.Summary, Replacements: reps}
	}
	return out
}

// HasErrors reports whether any problem is error-severity.
func HasErrors(problems []Problem) bool {
	for i := range problems {
		if problems[i].Diagnostic.Severity == SevError {
			return true
		}
	}
	return false
}
