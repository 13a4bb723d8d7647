package markup

import (
	"testing"

	"doccomp/internal/diag"
	"doccomp/internal/source"
)

func arg(line int, name, value string) RawArgument {
	nameEnd := 1 + len(name)
	return RawArgument{
		Name:       name,
		Value:      value,
		NameRange:  source.NewRange(line, 1, line, nameEnd),
		ValueRange: source.NewRange(line, nameEnd+2, line, nameEnd+2+len(value)),
	}
}

var metadataSpecs = []ArgumentSpec{
	{Name: "title", Required: true},
	{Name: "style", Allowed: []string{"compact", "detailed"}},
	{Name: "id", Required: true},
}

func TestParseArgumentsReportsEveryProblem(t *testing.T) {
	rng := source.NewRange(1, 1, 6, 2)
	d := &Directive{
		Name: "Metadata",
		Rng:  &rng,
		Arguments: []RawArgument{
			arg(2, "title", "Hello"),
			arg(3, "titel", "Typo"),
			arg(4, "title", "Again"),
			arg(5, "style", "huge"),
		},
	}

	parsed, problems := ParseArguments(d, metadataSpecs, "/docs/Page.md")

	if len(parsed) != 1 || parsed["title"].Value != "Hello" {
		t.Fatalf("parsed = %+v", parsed)
	}

	wantIDs := []string{
		diag.IDDirectiveUnknownArgument,
		diag.IDDirectiveDuplicateArgument,
		diag.IDDirectiveInvalidArgumentValue,
		diag.IDDirectiveMissingRequiredArgument,
	}
	if len(problems) != len(wantIDs) {
		t.Fatalf("got %d problems, want %d: %+v", len(problems), len(wantIDs), problems)
	}
	for i, id := range wantIDs {
		if got := problems[i].Diagnostic.Identifier; got != id {
			t.Errorf("problem %d = %s, want %s", i, got, id)
		}
		if problems[i].Diagnostic.Source != "/docs/Page.md" {
			t.Errorf("problem %d source = %q", i, problems[i].Diagnostic.Source)
		}
	}

	unknown := problems[0]
	if len(unknown.PossibleSolutions) != 1 {
		t.Fatalf("unknown argument solutions = %+v", unknown.PossibleSolutions)
	}
	if rep := unknown.PossibleSolutions[0].Replacements[0]; rep.Replacement != "title" || rep.Range != source.NewRange(3, 1, 3, 6) {
		t.Fatalf("unknown argument fix-it = %+v", rep)
	}

	dup := problems[1]
	if len(dup.Diagnostic.Notes) != 1 || dup.Diagnostic.Notes[0].Range.Start.Line != 2 {
		t.Fatalf("duplicate note = %+v", dup.Diagnostic.Notes)
	}
	if *dup.Diagnostic.Range != source.NewRange(4, 1, 4, 13) {
		t.Fatalf("duplicate range = %v", *dup.Diagnostic.Range)
	}

	invalid := problems[2]
	if len(invalid.PossibleSolutions) != 2 || invalid.PossibleSolutions[1].Replacements[0].Replacement != "detailed" {
		t.Fatalf("invalid value solutions = %+v", invalid.PossibleSolutions)
	}

	missing := problems[3]
	if missing.Diagnostic.Range == nil || *missing.Diagnostic.Range != rng {
		t.Fatalf("missing argument range = %v", missing.Diagnostic.Range)
	}
}

func TestParseArgumentsWarnsOncePerDuplicateRange(t *testing.T) {
	dupe := arg(2, "id", "x")
	d := &Directive{
		Name:      "Metadata",
		Arguments: []RawArgument{arg(1, "id", "x"), dupe, dupe, arg(3, "title", "T")},
	}
	_, problems := ParseArguments(d, metadataSpecs, "p.md")
	if len(problems) != 1 || problems[0].Diagnostic.Identifier != diag.IDDirectiveDuplicateArgument {
		t.Fatalf("problems = %+v", problems)
	}
}

func TestClosestRejectsFarNames(t *testing.T) {
	if _, ok := closest("completelydifferent", []string{"id", "title"}); ok {
		t.Fatal("expected no suggestion")
	}
	if got, ok := closest("Title", []string{"id", "title"}); !ok || got != "title" {
		t.Fatalf("closest(Title) = %q, %v", got, ok)
	}
}

func TestClosestSuggestsTypoFix(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{"tilte", "title"},
		{"colour", "color"},
		{"Sizes", "size"},
	}
	for _, tt := range tests {
		got, ok := closest(tt.name, []string{"title", "color", "size"})
		if !ok || got != tt.want {
			t.Errorf("closest(%q) = %q, %v; want %q", tt.name, got, ok, tt.want)
		}
	}
}
