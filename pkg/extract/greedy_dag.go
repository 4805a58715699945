package extract

import (
	"sort"

	"github.com/zzzDavid/extraction-gym/pkg/egraph"
)

// costSet is the set of classes (with their node costs) needed to build a
// class from a particular node, shared subterms counted once.
type costSet struct {
	costs  map[egraph.ClassID]float64
	total  float64
	choice egraph.NodeID
}

// FasterGreedyDag chooses, per class, the node whose transitive class set
// has the smallest DAG cost. Nodes whose set would contain their own class
// are never chosen, so the result is acyclic.
type FasterGreedyDag struct{}

// Extract implements Extractor
func (FasterGreedyDag) Extract(g *egraph.EGraph, roots []egraph.ClassID) *Result {
	sets := make(map[egraph.ClassID]*costSet)
	parents := parentIndex(g)
	work := newWorklist()

	for _, id := range g.NodeIDs() {
		if g.Nodes[id].IsLeaf() {
			work.push(id)
		}
	}

	for {
		id, ok := work.pop()
		if !ok {
			break
		}
		n := g.Nodes[id]
		if n.Subsumed {
			continue
		}
		set := buildCostSet(g, id, n, sets)
		if set == nil {
			continue
		}
		if prev, has := sets[n.EClass]; has && set.total >= prev.total {
			continue
		}
		sets[n.EClass] = set
		for _, p := range parents[n.EClass] {
			work.push(p)
		}
	}

	result := NewResult()
	for class, set := range sets {
		result.Choose(class, set.choice)
	}
	return result
}

// buildCostSet unions the child sets of n. It returns nil if a child class
// is not yet costed or if n's own class is among its dependencies.
func buildCostSet(g *egraph.EGraph, id egraph.NodeID, n *egraph.Node, sets map[egraph.ClassID]*costSet) *costSet {
	union := make(map[egraph.ClassID]float64)
	for _, child := range n.Children {
		cs, ok := sets[g.Nodes[child].EClass]
		if !ok {
			return nil
		}
		for c, v := range cs.costs {
			union[c] = v
		}
	}
	if _, cyclic := union[n.EClass]; cyclic {
		return nil
	}
	union[n.EClass] = n.Cost

	classes := make([]egraph.ClassID, 0, len(union))
	for c := range union {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool {
		return classes[i] < classes[j]
	})

	// Totals must be bit-identical across runs, so sum in class order
	var total float64
	for _, c := range classes {
		total += union[c]
	}
	return &costSet{costs: union, total: total, choice: id}
}
