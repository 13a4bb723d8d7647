package topic

// TraversalResult tells a traversal whether to keep going.
type TraversalResult uint8

const (
	Continue TraversalResult = iota
	Stop
)

// Visitor is called once per reachable node.
type Visitor func(n *Node) TraversalResult

// TraverseDepthFirst visits nodes reachable from start in pre-order, children in
// stored order, each node at most once. Returning Stop ends the whole walk.
func (g *Graph) TraverseDepthFirst(start *Node, visit Visitor) {
	seen := make(map[Reference]struct{})
	stack := []Reference{start.Reference}
	for len(stack) > 0 {
		ref := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}

		n, ok := g.nodes[ref]
		if !ok {
			continue
		}
		if visit(n) == Stop {
			return
		}
		children := g.edges[ref]
		for i := len(children) - 1; i >= 0; i-- {
			if _, ok := seen[children[i]]; !ok {
				stack = append(stack, children[i])
			}
		}
	}
}

// TraverseBreadthFirst visits nodes reachable from start level by level,
// children in stored order, each node at most once.
func (g *Graph) TraverseBreadthFirst(start *Node, visit Visitor) {
	seen := map[Reference]struct{}{start.Reference: {}}
	queue := []Reference{start.Reference}
	for len(queue) > 0 {
		ref := queue[0]
		queue = queue[1:]

		n, ok := g.nodes[ref]
		if !ok {
			continue
		}
		if visit(n) == Stop {
			return
		}
		for _, child := range g.edges[ref] {
			if _, ok := seen[child]; ok {
				continue
			}
			seen[child] = struct{}{}
			queue = append(queue, child)
		}
	}
}

// Reachable reports whether to can be reached from from by following edges.
func (g *Graph) Reachable(from, to Reference) bool {
	if from == to {
		return true
	}
	start, ok := g.nodes[from]
	if !ok {
		return false
	}
	found := false
	g.TraverseBreadthFirst(start, func(n *Node) TraversalResult {
		if n.Reference == to {
			found = true
			return Stop
		}
		return Continue
	})
	return found
}

// WouldCreateCycle reports whether adding from→to closes a cycle.
func (g *Graph) WouldCreateCycle(from, to Reference) bool {
	return g.Reachable(to, from)
}
