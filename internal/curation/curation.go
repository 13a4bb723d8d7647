// Package curation applies authored topic lists to the topic graph. A curated
// child moves under its curating parent, ahead of the parent's automatic
// children, in the order it was written.
package curation

import (
	"fmt"

	"doccomp/internal/diag"
	"doccomp/internal/markup"
	"doccomp/internal/source"
	"doccomp/internal/topic"
)

// Link is one entry of a topic list.
type Link struct {
	Destination string
	Source      string
	Range       *source.Range
}

// Curator rewires the graph for curated topics and emits a problem for every
// link it cannot apply.
type Curator struct {
	Graph  *topic.Graph
	Links  markup.LinkResolver
	Engine *diag.Engine
}

// Curate makes links children of parent and returns the references that were
// curated. Links that cannot be resolved, repeat an earlier link, point at
// parent itself or would create a cycle are skipped with a problem.
func (c *Curator) Curate(parent topic.Reference, links []Link) []topic.Reference {
	parentNode, ok := c.Graph.Node(parent)
	if !ok || len(links) == 0 {
		return nil
	}

	var (
		problems []diag.Problem
		curated  []topic.Reference
	)
	first := make(map[topic.Reference]Link, len(links))
	for _, link := range links {
		ref, ok := c.resolve(link.Destination)
		if !ok {
			problems = append(problems, c.problem(link, diag.IDUnresolvedTopicReference,
				fmt.Sprintf("Topic reference %q couldn't be resolved", link.Destination)))
			continue
		}
		if ref == parent {
			problems = append(problems, removal(c.problem(link, diag.IDCuratedIntoSelf,
				fmt.Sprintf("%q is curated under itself", link.Destination)), link, "Remove self-curation"))
			continue
		}
		if prev, dup := first[ref]; dup {
			p := c.problem(link, diag.IDDuplicateCuration,
				fmt.Sprintf("%q is already curated under %s", link.Destination, parentNode.Title))
			if prev.Range != nil {
				p.Diagnostic = p.Diagnostic.WithNote(prev.Source, *prev.Range, "First curated here")
			}
			problems = append(problems, removal(p, link, "Remove duplicate curation"))
			continue
		}
		if c.Graph.WouldCreateCycle(parent, ref) {
			problems = append(problems, removal(c.problem(link, diag.IDCyclicReference,
				fmt.Sprintf("Curating %q under %s would create a cycle", link.Destination, parentNode.Title)), link, "Remove curation"))
			continue
		}
		first[ref] = link
		curated = append(curated, ref)
	}

	c.apply(parentNode, curated)
	if len(problems) > 0 && c.Engine != nil {
		c.Engine.Emit(problems...)
	}
	return curated
}

func (c *Curator) resolve(dest string) (topic.Reference, bool) {
	if c.Links == nil {
		return topic.Reference{}, false
	}
	ref, ok := c.Links.ResolveLink(dest)
	if !ok {
		return topic.Reference{}, false
	}
	ref = ref.WithoutFragment()
	if _, exists := c.Graph.Node(ref); !exists {
		return topic.Reference{}, false
	}
	return ref, true
}

// apply moves curated children under parent, ahead of its remaining children.
func (c *Curator) apply(parent *topic.Node, curated []topic.Reference) {
	if len(curated) == 0 {
		return
	}
	previous := c.Graph.Children(parent.Reference)
	c.Graph.RemoveEdges(parent)

	isCurated := make(map[topic.Reference]struct{}, len(curated))
	for _, ref := range curated {
		isCurated[ref] = struct{}{}
		child, _ := c.Graph.Node(ref)
		for _, p := range c.Graph.Parents(ref) {
			if pn, ok := c.Graph.Node(p); ok {
				c.Graph.RemoveEdge(pn, child)
			}
		}
		c.Graph.AddEdge(parent, child)
	}
	for _, ref := range previous {
		if _, ok := isCurated[ref]; ok {
			continue
		}
		if child, ok := c.Graph.Node(ref); ok {
			c.Graph.AddEdge(parent, child)
		}
	}
}

func (c *Curator) problem(link Link, id, summary string) diag.Problem {
	if link.Range == nil {
		d := diag.New(diag.SevWarning, id, summary)
		d.Source = link.Source
		return diag.NewProblem(d)
	}
	return diag.NewProblem(diag.NewAt(diag.SevWarning, id, link.Source, *link.Range, summary))
}

func removal(p diag.Problem, link Link, summary string) diag.Problem {
	if link.Range == nil {
		return p
	}
	return p.WithSolution(summary, diag.Replacement{Range: *link.Range})
}
