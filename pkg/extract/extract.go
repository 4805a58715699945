package extract

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zzzDavid/extraction-gym/pkg/egraph"
)

// ErrUnknownExtractor is returned by ByName for unregistered strategy names
var ErrUnknownExtractor = errors.New("unknown extractor")

// DefaultExtractor is the strategy used when none is configured
const DefaultExtractor = "faster-greedy-dag"

// Extractor picks one node per class. Implementations may choose for every
// class in the graph, not only those reachable from roots.
type Extractor interface {
	Extract(g *egraph.EGraph, roots []egraph.ClassID) *Result
}

// extractors maps strategy names to implementations
var extractors = map[string]Extractor{
	"bottom-up":         BottomUp{},
	"faster-bottom-up":  FasterBottomUp{},
	"faster-greedy-dag": FasterGreedyDag{},
}

// ByName returns the extractor registered under name
func ByName(name string) (Extractor, error) {
	e, ok := extractors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExtractor, name)
	}
	return e, nil
}

// Names returns the registered extractor names, sorted
func Names() []string {
	names := make([]string, 0, len(extractors))
	for name := range extractors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// childrenCost sums the best known costs of a node's child classes.
// ok is false if some child class has no cost yet.
func childrenCost(g *egraph.EGraph, n *egraph.Node, costs map[egraph.ClassID]float64) (float64, bool) {
	var sum float64
	for _, child := range n.Children {
		c, ok := costs[g.Nodes[child].EClass]
		if !ok {
			return 0, false
		}
		sum += c
	}
	return sum, true
}

// parentIndex maps each class to the nodes that have a child in it, in node id order
func parentIndex(g *egraph.EGraph) map[egraph.ClassID][]egraph.NodeID {
	parents := make(map[egraph.ClassID][]egraph.NodeID)
	for _, id := range g.NodeIDs() {
		seen := make(map[egraph.ClassID]bool)
		for _, child := range g.Nodes[id].Children {
			c := g.Nodes[child].EClass
			if seen[c] {
				continue
			}
			seen[c] = true
			parents[c] = append(parents[c], id)
		}
	}
	return parents
}

// worklist is a FIFO of nodes that ignores duplicates already pending
type worklist struct {
	queue   []egraph.NodeID
	pending map[egraph.NodeID]bool
}

func newWorklist() *worklist {
	return &worklist{pending: make(map[egraph.NodeID]bool)}
}

func (w *worklist) push(id egraph.NodeID) {
	if w.pending[id] {
		return
	}
	w.pending[id] = true
	w.queue = append(w.queue, id)
}

func (w *worklist) pop() (egraph.NodeID, bool) {
	if len(w.queue) == 0 {
		return "", false
	}
	id := w.queue[0]
	w.queue = w.queue[1:]
	delete(w.pending, id)
	return id, true
}
