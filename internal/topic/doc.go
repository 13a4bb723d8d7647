// Package topic holds the documentation hierarchy: resolved topic references,
// the nodes they identify and the directed graph of curation edges between
// them.
//
// Graph keeps a forward and a reverse adjacency map strictly in sync. Edges
// are ordered by first insertion; duplicates are ignored. A self-loop is a
// caller bug and panics. The graph is not safe for concurrent mutation: one
// conversion pass owns it while it is being built; afterwards concurrent
// read-only queries are fine.
package topic
