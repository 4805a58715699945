// Package egraph defines the read-only e-graph model consumed by extraction
// and emission: nodes with operator labels and ordered children, grouped into
// equivalence classes, plus the designated root classes.
package egraph

import (
	"errors"
	"sort"
)

// NodeID identifies an e-node
type NodeID string

// ClassID identifies an equivalence class (e-class)
type ClassID string

// ErrUnknownNode is returned when a reference names a node that is not in the graph
var ErrUnknownNode = errors.New("unknown node")

// ErrUnknownClass is returned when a reference names a class that is not in the graph
var ErrUnknownClass = errors.New("unknown class")

// Node is a single e-node. Children order is significant (left/right operands).
type Node struct {
	Op       string
	Children []NodeID
	EClass   ClassID
	Cost     float64
	Subsumed bool
}

// IsLeaf reports whether the node has no children
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Class is an equivalence class and its member nodes, in node id order
type Class struct {
	ID    ClassID
	Nodes []NodeID
}

// ClassData carries optional per-class annotations
type ClassData struct {
	Type string
}

// EGraph is the immutable graph handed to extraction and emission
type EGraph struct {
	Nodes       map[NodeID]*Node
	RootClasses []ClassID
	ClassData   map[ClassID]ClassData

	classes map[ClassID]*Class
}

// New builds an EGraph from a node map and root classes, deriving class membership.
func New(nodes map[NodeID]*Node, roots []ClassID) *EGraph {
	g := &EGraph{
		Nodes:       nodes,
		RootClasses: roots,
		ClassData:   make(map[ClassID]ClassData),
		classes:     make(map[ClassID]*Class),
	}
	for _, id := range g.NodeIDs() {
		n := nodes[id]
		c, ok := g.classes[n.EClass]
		if !ok {
			c = &Class{ID: n.EClass}
			g.classes[n.EClass] = c
		}
		c.Nodes = append(c.Nodes, id)
	}
	return g
}

// Node returns the node with the given id
func (g *EGraph) Node(id NodeID) (*Node, bool) {
	n, ok := g.Nodes[id]
	return n, ok
}

// ClassOf returns the class a node belongs to
func (g *EGraph) ClassOf(id NodeID) (ClassID, bool) {
	n, ok := g.Nodes[id]
	if !ok {
		return "", false
	}
	return n.EClass, true
}

// Class returns the class with the given id
func (g *EGraph) Class(id ClassID) (*Class, bool) {
	c, ok := g.classes[id]
	return c, ok
}

// Classes returns all classes sorted by id
func (g *EGraph) Classes() []*Class {
	classes := make([]*Class, 0, len(g.classes))
	for _, c := range g.classes {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool {
		return classes[i].ID < classes[j].ID
	})
	return classes
}

// NodeIDs returns all node ids sorted
func (g *EGraph) NodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}

// Len returns the number of nodes
func (g *EGraph) Len() int {
	return len(g.Nodes)
}

// NumClasses returns the number of classes
func (g *EGraph) NumClasses() int {
	return len(g.classes)
}
