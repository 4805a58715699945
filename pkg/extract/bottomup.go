package extract

import "github.com/zzzDavid/extraction-gym/pkg/egraph"

// BottomUp repeatedly sweeps all classes, choosing the cheapest node whose
// children all have a known cost, until no class improves.
type BottomUp struct{}

// Extract implements Extractor
func (BottomUp) Extract(g *egraph.EGraph, roots []egraph.ClassID) *Result {
	result := NewResult()
	costs := make(map[egraph.ClassID]float64)
	classes := g.Classes()

	for changed := true; changed; {
		changed = false
		for _, class := range classes {
			for _, id := range class.Nodes {
				n := g.Nodes[id]
				if n.Subsumed {
					continue
				}
				sum, ok := childrenCost(g, n, costs)
				if !ok {
					continue
				}
				cost := n.Cost + sum
				if prev, has := costs[class.ID]; !has || cost < prev {
					costs[class.ID] = cost
					result.Choose(class.ID, id)
					changed = true
				}
			}
		}
	}
	return result
}

// FasterBottomUp computes the same costs as BottomUp but only revisits the
// parents of classes whose cost improved.
type FasterBottomUp struct{}

// Extract implements Extractor
func (FasterBottomUp) Extract(g *egraph.EGraph, roots []egraph.ClassID) *Result {
	result := NewResult()
	costs := make(map[egraph.ClassID]float64)
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
		sum, ok := childrenCost(g, n, costs)
		if !ok {
			continue
		}
		cost := n.Cost + sum
		if prev, has := costs[n.EClass]; has && cost >= prev {
			continue
		}
		costs[n.EClass] = cost
		result.Choose(n.EClass, id)
		for _, p := range parents[n.EClass] {
			work.push(p)
		}
	}
	return result
}
