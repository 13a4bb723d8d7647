package convert

import (
	"testing"

	"doccomp/internal/topic"
)

func TestLinkIndexDropsAmbiguousSuffixes(t *testing.T) {
	g := topic.NewGraph()
	links := newLinkIndex(g)
	for _, p := range []string{"/documentation/Kit/A/init", "/documentation/Kit/B/init"} {
		ref := topic.NewReference(bundle, p, "")
		g.AddNode(topic.NewNode(ref, topic.KindSymbol, topic.ExternalLocation{}, ref.LastPathComponent()))
		links.add("", ref)
	}

	if ref, ok := links.ResolveLink("init"); ok {
		t.Fatalf("ambiguous link resolved to %s", ref)
	}
	if ref, ok := links.ResolveLink("Kit/B/init"); !ok || ref.Path != "/documentation/Kit/B/init" {
		t.Fatalf("Kit/B/init = %v, %v", ref, ok)
	}
	if ref, ok := links.ResolveLink("A/init#overview"); !ok || ref.Path != "/documentation/Kit/A/init" || ref.Fragment != "overview" {
		t.Fatalf("A/init#overview = %v, %v", ref, ok)
	}
	if _, ok := links.ResolveLink("/documentation/Kit/A/init"); !ok {
		t.Fatal("absolute path must resolve")
	}

	// a third candidate must not revive the dropped key
	third := topic.NewReference(bundle, "/documentation/Kit/C/init", "")
	g.AddNode(topic.NewNode(third, topic.KindSymbol, topic.ExternalLocation{}, "init"))
	links.add("", third)
	if _, ok := links.ResolveLink("init"); ok {
		t.Fatal("ambiguous key revived by a later symbol")
	}
}
