package netlistgen

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/zzzDavid/extraction-gym/pkg/egraph"
	"github.com/zzzDavid/extraction-gym/pkg/extract"
	"github.com/zzzDavid/extraction-gym/pkg/netlist"
)

// Hop budgets of the literal encodings. A Var/Num wrapper reaches its value
// through at most two single-child hops; a primitive through at most one.
// When a chain is shorter, the deepest node reached supplies the value.
const (
	MaxLiteralHops   = 2
	MaxPrimitiveHops = 1
)

// Decoder resolves literal markers and primitive wrappers to their values
type Decoder struct {
	g    *egraph.EGraph
	sel  *extract.Result
	conv Conventions
	log  logrus.FieldLogger

	// names overrides the sanitized id of declared nodes
	names map[egraph.NodeID]string
}

// NewDecoder creates a decoder over a graph and its selection
func NewDecoder(g *egraph.EGraph, sel *extract.Result, conv Conventions, log logrus.FieldLogger) *Decoder {
	return &Decoder{g: g, sel: sel, conv: conv, log: orDiscard(log)}
}

// follow returns the live node for a child reference: the node chosen for
// the child's class, or the child itself when its class has no choice.
// selected reports which of the two it is.
func (d *Decoder) follow(child egraph.NodeID) (id egraph.NodeID, n *egraph.Node, selected bool) {
	if chosen, ok := d.sel.Resolve(d.g, child); ok {
		if n, ok := d.g.Node(chosen); ok {
			return chosen, n, true
		}
	}
	return child, d.g.Nodes[child], false
}

// descend walks up to hops first-child links from n and returns the last node
// reached
func (d *Decoder) descend(n *egraph.Node, hops int) *egraph.Node {
	cur := n
	for i := 0; i < hops && !cur.IsLeaf(); i++ {
		_, next, _ := d.follow(cur.Children[0])
		if next == nil {
			break
		}
		cur = next
	}
	return cur
}

// Decode returns the value encoded by a literal marker or primitive wrapper.
// ok is false for nodes of any other role.
func (d *Decoder) Decode(id egraph.NodeID) (string, bool) {
	n, ok := d.g.Node(id)
	if !ok {
		return "", false
	}

	switch d.conv.Classify(id, n) {
	case RoleLiteral:
		return d.decodeLiteral(id, n), true
	case RolePrimitive:
		if n.IsLeaf() {
			return strings.TrimPrefix(n.Op, d.conv.Primitive), true
		}
		return d.descend(n, MaxPrimitiveHops).Op, true
	default:
		return "", false
	}
}

func (d *Decoder) decodeLiteral(id egraph.NodeID, n *egraph.Node) string {
	kind, inline := d.conv.literal(n.Op)

	var value string
	switch {
	case !n.IsLeaf():
		value = d.descend(n, MaxLiteralHops).Op
	case inline != "":
		value = inline
	default:
		d.log.WithField("node", id).Debugf("literal %s has no encoded value, using its label", n.Op)
		value = n.Op
	}

	if kind == varLiteral {
		value = trimQuotes(value)
	}
	return value
}

// Operand renders a child reference as an expression operand. Literals and
// primitives are replaced by their decoded value and constant leaves by their
// label. A selected node with a declaration is referred to by its signal
// name; anything else has no signal and renders as unknown_<class>.
func (d *Decoder) Operand(child egraph.NodeID) netlist.Expr {
	id, n, selected := d.follow(child)
	if n == nil {
		return d.unknown(child)
	}

	if v, ok := d.Decode(id); ok {
		return netlist.Literal{Value: v}
	}
	if n.IsLeaf() && d.conv.isConstant(n.Op) {
		return netlist.Literal{Value: n.Op}
	}
	if _, declared := d.conv.Classify(id, n).Declaration(); !selected || !declared {
		return d.unknown(child)
	}
	return netlist.Ref{Name: d.name(id)}
}

func (d *Decoder) name(id egraph.NodeID) string {
	if name, ok := d.names[id]; ok {
		return name
	}
	return Sanitize(string(id))
}

func (d *Decoder) unknown(child egraph.NodeID) netlist.Expr {
	class, ok := d.g.ClassOf(child)
	label := string(class)
	if !ok {
		label = string(child)
	}
	d.log.WithFields(logrus.Fields{
		"child": child,
		"class": class,
	}).Debug("operand has no declared signal")
	return netlist.Ref{Name: "unknown_" + Sanitize(label)}
}
