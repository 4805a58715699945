// Package extract holds extraction results (one chosen node per e-class) and
// the extraction strategies that produce them.
package extract

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/zzzDavid/extraction-gym/pkg/egraph"
)

// ErrInvalidSelection is returned by Check when a result violates the selection invariant
var ErrInvalidSelection = errors.New("invalid selection")

// Result is a selection: the node chosen to represent each class.
// Every chosen node must belong to the class it is keyed by.
type Result struct {
	Choices map[egraph.ClassID]egraph.NodeID
}

// NewResult creates an empty result
func NewResult() *Result {
	return &Result{Choices: make(map[egraph.ClassID]egraph.NodeID)}
}

// Choose records the node chosen for a class, replacing any previous choice
func (r *Result) Choose(class egraph.ClassID, node egraph.NodeID) {
	r.Choices[class] = node
}

// Choice returns the node chosen for a class
func (r *Result) Choice(class egraph.ClassID) (egraph.NodeID, bool) {
	n, ok := r.Choices[class]
	return n, ok
}

// Len returns the number of chosen classes
func (r *Result) Len() int {
	return len(r.Choices)
}

// Classes returns the chosen classes in canonical (sorted) order
func (r *Result) Classes() []egraph.ClassID {
	classes := make([]egraph.ClassID, 0, len(r.Choices))
	for c := range r.Choices {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool {
		return classes[i] < classes[j]
	})
	return classes
}

// Resolve maps a child reference to the node chosen for the child's class.
// ok is false when the child is unknown or its class has no choice.
func (r *Result) Resolve(g *egraph.EGraph, child egraph.NodeID) (egraph.NodeID, bool) {
	class, ok := g.ClassOf(child)
	if !ok {
		return "", false
	}
	return r.Choice(class)
}

// Check validates the result against the graph: every choice names a node
// of its own class, and every root class has a choice.
func (r *Result) Check(g *egraph.EGraph) error {
	for _, class := range r.Classes() {
		id := r.Choices[class]
		n, ok := g.Node(id)
		if !ok {
			return fmt.Errorf("class %q chooses %q: %w", class, id, egraph.ErrUnknownNode)
		}
		if n.EClass != class {
			return fmt.Errorf("%w: class %q chooses %q which belongs to %q",
				ErrInvalidSelection, class, id, n.EClass)
		}
	}
	for _, root := range g.RootClasses {
		if _, ok := r.Choices[root]; !ok {
			return fmt.Errorf("%w: root class %q has no choice", ErrInvalidSelection, root)
		}
	}
	return nil
}

// TreeCost returns the cost of the chosen terms as trees, counting shared
// subterms once per use. A cyclic choice costs +Inf.
func (r *Result) TreeCost(g *egraph.EGraph, roots []egraph.ClassID) float64 {
	memo := make(map[egraph.ClassID]float64)
	active := make(map[egraph.ClassID]bool)

	var cost func(c egraph.ClassID) float64
	cost = func(c egraph.ClassID) float64 {
		if v, ok := memo[c]; ok {
			return v
		}
		if active[c] {
			return math.Inf(1)
		}
		id, ok := r.Choices[c]
		if !ok {
			return math.Inf(1)
		}
		active[c] = true
		n := g.Nodes[id]
		total := n.Cost
		for _, child := range n.Children {
			total += cost(g.Nodes[child].EClass)
		}
		delete(active, c)
		memo[c] = total
		return total
	}

	var total float64
	for _, root := range roots {
		total += cost(root)
	}
	return total
}

// DagCost returns the cost of the chosen terms with every reachable class
// counted once.
func (r *Result) DagCost(g *egraph.EGraph, roots []egraph.ClassID) float64 {
	seen := make(map[egraph.ClassID]bool)
	todo := append([]egraph.ClassID(nil), roots...)
	var total float64

	for len(todo) > 0 {
		c := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		if seen[c] {
			continue
		}
		seen[c] = true

		id, ok := r.Choices[c]
		if !ok {
			return math.Inf(1)
		}
		n := g.Nodes[id]
		total += n.Cost
		for _, child := range n.Children {
			todo = append(todo, g.Nodes[child].EClass)
		}
	}
	return total
}
