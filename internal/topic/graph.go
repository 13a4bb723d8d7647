package topic

import (
	"fmt"
	"slices"
	"strings"
)

// Graph is a directed graph of documentation nodes keyed by reference.
type Graph struct {
	nodes        map[Reference]*Node
	edges        map[Reference][]Reference // Edges[from] = []to
	reverseEdges map[Reference][]Reference // ReverseEdges[to] = []from
}

func NewGraph() *Graph {
	return &Graph{
		nodes:        make(map[Reference]*Node),
		edges:        make(map[Reference][]Reference),
		reverseEdges: make(map[Reference][]Reference),
	}
}

// AddNode registers n unless a node with the same reference already exists.
func (g *Graph) AddNode(n *Node) {
	if _, ok := g.nodes[n.Reference]; ok {
		return
	}
	g.nodes[n.Reference] = n
}

// AddEdge adds from→to, adding both nodes if needed. Adding an existing edge
// is a no-op. Panics when from and to share a reference.
func (g *Graph) AddEdge(from, to *Node) {
	if from.Reference == to.Reference {
		panic(fmt.Sprintf("topic: self-loop edge on %s", from.Reference))
	}
	g.AddNode(from)
	g.AddNode(to)
	if slices.Contains(g.edges[from.Reference], to.Reference) {
		return
	}
	g.edges[from.Reference] = append(g.edges[from.Reference], to.Reference)
	g.reverseEdges[to.Reference] = append(g.reverseEdges[to.Reference], from.Reference)
}

// RemoveEdges removes every outgoing edge of from.
func (g *Graph) RemoveEdges(from *Node) {
	for _, to := range g.edges[from.Reference] {
		g.reverseEdges[to] = deleteRef(g.reverseEdges[to], from.Reference)
		if len(g.reverseEdges[to]) == 0 {
			delete(g.reverseEdges, to)
		}
	}
	delete(g.edges, from.Reference)
}

// RemoveEdge removes from→to; no-op when the edge is absent.
func (g *Graph) RemoveEdge(from, to *Node) {
	children, ok := g.edges[from.Reference]
	if !ok || !slices.Contains(children, to.Reference) {
		return
	}
	g.edges[from.Reference] = deleteRef(children, to.Reference)
	if len(g.edges[from.Reference]) == 0 {
		delete(g.edges, from.Reference)
	}
	g.reverseEdges[to.Reference] = deleteRef(g.reverseEdges[to.Reference], from.Reference)
	if len(g.reverseEdges[to.Reference]) == 0 {
		delete(g.reverseEdges, to.Reference)
	}
}

func deleteRef(refs []Reference, ref Reference) []Reference {
	return slices.DeleteFunc(refs, func(r Reference) bool { return r == ref })
}

func replaceRef(refs []Reference, old, new Reference) {
	for i := range refs {
		if refs[i] == old {
			refs[i] = new
		}
	}
}

// ReplaceNode swaps old for new, keeping old's position: new takes old's slot
// in its first parent's child list and inherits all of old's children.
//
// Only the first parent is kept. A node curated under several parents loses
// the other parent edges; callers with multi-parent topics must re-curate.
//
// The change is validated before anything is touched, so a panic leaves the
// graph as it was.
func (g *Graph) ReplaceNode(old, new *Node) {
	if _, ok := g.nodes[old.Reference]; !ok {
		g.AddNode(new)
		return
	}
	if old.Reference == new.Reference {
		g.nodes[new.Reference] = new
		return
	}
	if _, exists := g.nodes[new.Reference]; exists {
		panic(fmt.Sprintf("topic: cannot replace %s with %s: target already in graph", old.Reference, new.Reference))
	}

	parents := g.reverseEdges[old.Reference]
	children := g.edges[old.Reference]
	var parent *Reference
	if len(parents) > 0 {
		parent = &parents[0]
		if *parent == new.Reference {
			panic(fmt.Sprintf("topic: self-loop edge on %s", new.Reference))
		}
	}
	if slices.Contains(children, new.Reference) {
		panic(fmt.Sprintf("topic: self-loop edge on %s", new.Reference))
	}

	// дальше ошибок быть не может, меняем состояние
	for i, p := range parents {
		if i == 0 {
			replaceRef(g.edges[p], old.Reference, new.Reference)
			continue
		}
		g.edges[p] = deleteRef(g.edges[p], old.Reference)
		if len(g.edges[p]) == 0 {
			delete(g.edges, p)
		}
	}
	for _, c := range children {
		replaceRef(g.reverseEdges[c], old.Reference, new.Reference)
	}

	delete(g.nodes, old.Reference)
	delete(g.edges, old.Reference)
	delete(g.reverseEdges, old.Reference)

	g.nodes[new.Reference] = new
	if len(children) > 0 {
		g.edges[new.Reference] = children
	}
	if parent != nil {
		g.reverseEdges[new.Reference] = []Reference{*parent}
	}
}

// UpdateReference renames a node and re-keys every edge that mentions it.
// No-op when old is unknown; panics when new is already taken.
func (g *Graph) UpdateReference(old, new Reference) {
	n, ok := g.nodes[old]
	if !ok || old == new {
		return
	}
	if _, taken := g.nodes[new]; taken {
		panic(fmt.Sprintf("topic: cannot rename %s to %s: reference already in graph", old, new))
	}

	for _, c := range g.edges[old] {
		replaceRef(g.reverseEdges[c], old, new)
	}
	for _, p := range g.reverseEdges[old] {
		replaceRef(g.edges[p], old, new)
	}
	if children, ok := g.edges[old]; ok {
		delete(g.edges, old)
		g.edges[new] = children
	}
	if parents, ok := g.reverseEdges[old]; ok {
		delete(g.reverseEdges, old)
		g.reverseEdges[new] = parents
	}

	delete(g.nodes, old)
	n.Reference = new
	g.nodes[new] = n
}

// Node returns the node registered under ref.
func (g *Graph) Node(ref Reference) (*Node, bool) {
	n, ok := g.nodes[ref]
	return n, ok
}

// Children returns a copy of ref's outgoing edges in insertion order.
func (g *Graph) Children(ref Reference) []Reference {
	return slices.Clone(g.edges[ref])
}

// Parents returns a copy of ref's incoming edges in insertion order.
func (g *Graph) Parents(ref Reference) []Reference {
	return slices.Clone(g.reverseEdges[ref])
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns every node sorted by path, then fragment.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	slices.SortFunc(out, func(a, b *Node) int { return compareRefs(a.Reference, b.Reference) })
	return out
}

func compareRefs(a, b Reference) int {
	if c := strings.Compare(a.BundleID, b.BundleID); c != 0 {
		return c
	}
	if c := strings.Compare(a.Path, b.Path); c != 0 {
		return c
	}
	return strings.Compare(a.Fragment, b.Fragment)
}

// IsLinkable reports whether ref, without its fragment, names a resolvable node.
func (g *Graph) IsLinkable(ref Reference) bool {
	n, ok := g.nodes[ref.WithoutFragment()]
	return ok && n.IsResolvable
}

// Dump renders the subtree below from as an indented tree, children sorted by
// path. References without a node (e.g. external symbols) are skipped.
func (g *Graph) Dump(from *Node) string {
	var b strings.Builder
	g.dump(&b, from, "", make(map[Reference]bool))
	return b.String()
}

func (g *Graph) dump(b *strings.Builder, n *Node, decorator string, onPath map[Reference]bool) {
	title := n.Title
	if title == "" {
		title = n.Reference.Path
	}
	b.WriteString(decorator)
	if decorator != "" {
		b.WriteByte(' ')
	}
	b.WriteString(title)
	b.WriteByte('\n')

	if onPath[n.Reference] {
		return
	}
	onPath[n.Reference] = true
	defer delete(onPath, n.Reference)

	children := make([]*Node, 0, len(g.edges[n.Reference]))
	for _, ref := range g.edges[n.Reference] {
		if child, ok := g.nodes[ref]; ok {
			children = append(children, child)
		}
	}
	slices.SortFunc(children, func(a, b *Node) int { return compareRefs(a.Reference, b.Reference) })

	prefix := decorator
	switch {
	case strings.HasSuffix(prefix, "├"):
		prefix = strings.TrimSuffix(prefix, "├") + "│"
	case strings.HasSuffix(prefix, "╰"):
		prefix = strings.TrimSuffix(prefix, "╰") + " "
	}
	for i, child := range children {
		marker := "├"
		if i == len(children)-1 {
			marker = "╰"
		}
		next := marker
		if prefix != "" {
			next = prefix + " " + marker
		}
		g.dump(b, child, next, onPath)
	}
}
