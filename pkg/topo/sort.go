// Package topo orders the selected nodes of an extraction so that every
// node's live dependencies come before it. Dependencies are followed through
// the selection (child -> child's class -> chosen node), not through the raw
// graph edges.
package topo

import (
	"github.com/zzzDavid/extraction-gym/pkg/egraph"
	"github.com/zzzDavid/extraction-gym/pkg/extract"
)

// Entry is one selected node in dependency order
type Entry struct {
	ID   egraph.NodeID
	Node *egraph.Node
}

// Cycle records a dependency edge that closed a cycle in the selection.
// Node is the node found already in progress; From is the node whose child
// led back to it. The edge From -> Node is dropped from the ordering.
type Cycle struct {
	Node egraph.NodeID
	From egraph.NodeID
}

// status is the outcome of visiting a node
type status int

const (
	placed status = iota // node is (or already was) in the order
	cyclic               // node was in progress; the edge leading here closes a cycle
)

// sorter holds the per-run traversal bookkeeping
type sorter struct {
	g          *egraph.EGraph
	sel        *extract.Result
	inProgress map[egraph.NodeID]bool
	done       map[egraph.NodeID]bool
	order      []Entry
	cycles     []Cycle
}

// Sort returns the selected nodes with every resolved child placed before its
// parent. Cycles are not fatal: each back edge is reported and skipped, and
// the traversal carries on.
func Sort(g *egraph.EGraph, sel *extract.Result) ([]Entry, []Cycle) {
	s := &sorter{
		g:          g,
		sel:        sel,
		inProgress: make(map[egraph.NodeID]bool),
		done:       make(map[egraph.NodeID]bool),
	}

	for _, class := range sel.Classes() {
		id, _ := sel.Choice(class)
		s.visit(id, "")
	}

	// Children are appended before their parents, so the post-order is
	// already dependency-first.
	return s.order, s.cycles
}

func (s *sorter) visit(id, from egraph.NodeID) status {
	if s.done[id] {
		return placed
	}
	if s.inProgress[id] {
		s.cycles = append(s.cycles, Cycle{Node: id, From: from})
		return cyclic
	}

	n, ok := s.g.Node(id)
	if !ok {
		// Check rejects such selections; tolerate them here all the same
		return placed
	}

	s.inProgress[id] = true
	for _, child := range n.Children {
		dep, ok := s.sel.Resolve(s.g, child)
		if !ok {
			continue
		}
		s.visit(dep, id)
	}
	delete(s.inProgress, id)
	s.done[id] = true
	s.order = append(s.order, Entry{ID: id, Node: n})
	return placed
}

// Index returns the position of every node in an order
func Index(order []Entry) map[egraph.NodeID]int {
	idx := make(map[egraph.NodeID]int, len(order))
	for i, e := range order {
		idx[e.ID] = i
	}
	return idx
}
