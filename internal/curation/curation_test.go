package curation

import (
	"slices"
	"testing"

	"doccomp/internal/diag"
	"doccomp/internal/source"
	"doccomp/internal/topic"
)

type nameLinks map[string]topic.Reference

func (n nameLinks) ResolveLink(dest string) (topic.Reference, bool) {
	r, ok := n[dest]
	return r, ok
}

func (n nameLinks) ResolveSymbol(string) (topic.Reference, bool) {
	return topic.Reference{}, false
}

type fixture struct {
	graph   *topic.Graph
	nodes   map[string]*topic.Node
	links   nameLinks
	engine  *diag.Engine
	curator *Curator
}

func newFixture() *fixture {
	f := &fixture{
		graph: topic.NewGraph(),
		nodes: make(map[string]*topic.Node),
		links: make(nameLinks),
	}
	for _, name := range []string{"Root", "A", "B", "C", "A1"} {
		n := topic.NewNode(topic.NewReference("org.example", "/documentation/"+name, ""), topic.KindSymbol, nil, name)
		f.nodes[name] = n
		f.links[name] = n.Reference
	}
	f.links["Missing"] = topic.NewReference("org.example", "/documentation/Missing", "")
	f.graph.AddEdge(f.nodes["Root"], f.nodes["A"])
	f.graph.AddEdge(f.nodes["Root"], f.nodes["B"])
	f.graph.AddEdge(f.nodes["Root"], f.nodes["C"])
	f.graph.AddEdge(f.nodes["A"], f.nodes["A1"])

	f.engine = diag.NewEngine(diag.DefaultEngineOptions())
	f.curator = &Curator{Graph: f.graph, Links: f.links, Engine: f.engine}
	return f
}

func (f *fixture) ref(name string) topic.Reference {
	return f.nodes[name].Reference
}

func link(dest string, line int) Link {
	r := source.NewRange(line, 3, line, 3+len(dest)+4)
	return Link{Destination: dest, Source: "/docs/B.md", Range: &r}
}

func TestCurateMovesChildAndReportsBadLinks(t *testing.T) {
	f := newFixture()

	curated := f.curator.Curate(f.ref("B"), []Link{
		link("A1", 1),
		link("A1", 2),
		link("Root", 3),
		link("B", 4),
		link("Missing", 5),
	})

	if len(curated) != 1 || curated[0] != f.ref("A1") {
		t.Fatalf("curated = %v", curated)
	}
	if got := f.graph.Children(f.ref("B")); !slices.Equal(got, []topic.Reference{f.ref("A1")}) {
		t.Fatalf("Children(B) = %v", got)
	}
	if got := f.graph.Parents(f.ref("A1")); !slices.Equal(got, []topic.Reference{f.ref("B")}) {
		t.Fatalf("Parents(A1) = %v", got)
	}
	if got := f.graph.Children(f.ref("A")); len(got) != 0 {
		t.Fatalf("Children(A) = %v", got)
	}

	problems := f.engine.Problems()
	want := []string{
		diag.IDDuplicateCuration,
		diag.IDCyclicReference,
		diag.IDCuratedIntoSelf,
		diag.IDUnresolvedTopicReference,
	}
	if len(problems) != len(want) {
		t.Fatalf("got %d problems: %+v", len(problems), problems)
	}
	for i, id := range want {
		if problems[i].Diagnostic.Identifier != id {
			t.Errorf("problem %d = %s, want %s", i, problems[i].Diagnostic.Identifier, id)
		}
		if problems[i].Diagnostic.Range.Start.Line != i+2 {
			t.Errorf("problem %d line = %d", i, problems[i].Diagnostic.Range.Start.Line)
		}
	}
	dup := problems[0]
	if len(dup.Diagnostic.Notes) != 1 || dup.Diagnostic.Notes[0].Range.Start.Line != 1 {
		t.Fatalf("duplicate notes = %+v", dup.Diagnostic.Notes)
	}
	if len(dup.PossibleSolutions) != 1 || dup.PossibleSolutions[0].Replacements[0].Replacement != "" {
		t.Fatalf("duplicate solutions = %+v", dup.PossibleSolutions)
	}
	if problems[3].PossibleSolutions != nil {
		t.Fatal("unresolved references have no fix-it")
	}
}

func TestCuratedChildrenComeFirst(t *testing.T) {
	f := newFixture()
	f.curator.Curate(f.ref("Root"), []Link{link("C", 1)})

	want := []topic.Reference{f.ref("C"), f.ref("A"), f.ref("B")}
	if got := f.graph.Children(f.ref("Root")); !slices.Equal(got, want) {
		t.Fatalf("Children(Root) = %v, want %v", got, want)
	}
	if len(f.engine.Problems()) != 0 {
		t.Fatalf("unexpected problems %+v", f.engine.Problems())
	}
}

func TestCurateUnknownParentIsNoop(t *testing.T) {
	f := newFixture()
	got := f.curator.Curate(topic.NewReference("org.example", "/nowhere", ""), []Link{link("A", 1)})
	if got != nil || len(f.engine.Problems()) != 0 {
		t.Fatalf("curated = %v, problems = %v", got, f.engine.Problems())
	}
}
