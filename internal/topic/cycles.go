package topic

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

type nodeID uint32

// Topo is the Kahn ordering of the graph.
type Topo struct {
	Order   []Reference   // линейный порядок (родители раньше детей)
	Batches [][]Reference // уровни независимых узлов
	Cyclic  bool
	Cycles  []Reference // узлы, оставшиеся в цикле или ниже него
}

// Toposort orders the graph with Kahn's algorithm. Nodes are seeded and
// released in reference order so the result is deterministic.
func (g *Graph) Toposort() *Topo {
	refs := make([]Reference, 0, len(g.nodes))
	for ref := range g.nodes {
		refs = append(refs, ref)
	}
	slices.SortFunc(refs, compareRefs)

	index := make(map[Reference]nodeID, len(refs))
	for i, ref := range refs {
		id, err := safecast.Conv[nodeID](i)
		if err != nil {
			panic(fmt.Errorf("topic node id overflow: %w", err))
		}
		index[ref] = id
	}

	indeg := make([]int, len(refs))
	for from, tos := range g.edges {
		if _, ok := index[from]; !ok {
			continue
		}
		for _, to := range tos {
			if id, ok := index[to]; ok {
				indeg[id]++
			}
		}
	}

	topo := &Topo{Order: make([]Reference, 0, len(refs))}
	current := make([]nodeID, 0, len(refs))
	for i := range refs {
		if indeg[i] == 0 {
			current = append(current, index[refs[i]])
		}
	}

	visited := 0
	for len(current) > 0 {
		batch := make([]Reference, 0, len(current))
		next := make([]nodeID, 0)
		for _, id := range current {
			ref := refs[id]
			batch = append(batch, ref)
			topo.Order = append(topo.Order, ref)
			visited++
			for _, to := range g.edges[ref] {
				toID, ok := index[to]
				if !ok {
					continue
				}
				indeg[toID]--
				if indeg[toID] == 0 {
					next = append(next, toID)
				}
			}
		}
		topo.Batches = append(topo.Batches, batch)
		slices.Sort(next)
		current = next
	}

	if visited != len(refs) {
		topo.Cyclic = true
		for i, ref := range refs {
			if indeg[i] > 0 {
				topo.Cycles = append(topo.Cycles, ref)
			}
		}
	}
	return topo
}

// Cycles returns the references Toposort could not order; nil for an acyclic graph.
func (g *Graph) Cycles() []Reference {
	return g.Toposort().Cycles
}
