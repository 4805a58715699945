package egraph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// defaultCost is used for nodes whose serialized form omits a cost
const defaultCost = 1.0

// jsonNode mirrors a node entry in the serialized e-graph format
type jsonNode struct {
	Op       string   `json:"op"`
	Children []string `json:"children"`
	EClass   string   `json:"eclass"`
	Cost     *float64 `json:"cost,omitempty"`
	Subsumed bool     `json:"subsumed,omitempty"`
}

type jsonClassData struct {
	Type string `json:"type,omitempty"`
}

// jsonGraph mirrors the top-level serialized e-graph
type jsonGraph struct {
	Nodes        map[string]jsonNode      `json:"nodes"`
	RootEclasses []string                 `json:"root_eclasses"`
	ClassData    map[string]jsonClassData `json:"class_data,omitempty"`
}

// LoadFile reads a serialized e-graph from a JSON file
func LoadFile(filename string) (*EGraph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return g, nil
}

// Load decodes a serialized e-graph and validates its references.
func Load(r io.Reader) (*EGraph, error) {
	var raw jsonGraph
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	nodes := make(map[NodeID]*Node, len(raw.Nodes))
	for id, jn := range raw.Nodes {
		if jn.EClass == "" {
			return nil, fmt.Errorf("node %q has no eclass", id)
		}
		cost := defaultCost
		if jn.Cost != nil {
			cost = *jn.Cost
		}
		children := make([]NodeID, len(jn.Children))
		for i, c := range jn.Children {
			children[i] = NodeID(c)
		}
		nodes[NodeID(id)] = &Node{
			Op:       jn.Op,
			Children: children,
			EClass:   ClassID(jn.EClass),
			Cost:     cost,
			Subsumed: jn.Subsumed,
		}
	}

	roots := make([]ClassID, len(raw.RootEclasses))
	for i, r := range raw.RootEclasses {
		roots[i] = ClassID(r)
	}

	g := New(nodes, roots)
	for cid, data := range raw.ClassData {
		g.ClassData[ClassID(cid)] = ClassData{Type: data.Type}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks that all child and root references resolve
func (g *EGraph) Validate() error {
	for _, id := range g.NodeIDs() {
		for _, child := range g.Nodes[id].Children {
			if _, ok := g.Nodes[child]; !ok {
				return fmt.Errorf("node %q references child %q: %w", id, child, ErrUnknownNode)
			}
		}
	}
	for _, root := range g.RootClasses {
		if _, ok := g.classes[root]; !ok {
			return fmt.Errorf("root %q: %w", root, ErrUnknownClass)
		}
	}
	return nil
}
