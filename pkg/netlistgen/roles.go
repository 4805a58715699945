package netlistgen

import (
	"github.com/zzzDavid/extraction-gym/pkg/egraph"
	"github.com/zzzDavid/extraction-gym/pkg/netlist"
	"github.com/zzzDavid/extraction-gym/pkg/topo"
)

// Role is how a selected node takes part in the emitted program
type Role int

const (
	RoleStructural Role = iota // organizational only; never declared or assigned
	RoleLiteral                // Var/Num wrapper, substituted by its decoded value
	RolePrimitive              // raw primitive value, substituted by its decoded value
	RoleInput                  // leaf signal, declared as an input
	RoleComputed               // declared as a wire and, unless a constant leaf, assigned
)

// Roles lists every role in declaration order
var Roles = []Role{RoleStructural, RoleLiteral, RolePrimitive, RoleInput, RoleComputed}

func (r Role) String() string {
	switch r {
	case RoleStructural:
		return "structural"
	case RoleLiteral:
		return "literal"
	case RolePrimitive:
		return "primitive"
	case RoleInput:
		return "input"
	case RoleComputed:
		return "computed"
	default:
		return "unknown"
	}
}

// Declaration returns the kind of declaration a role gets, if any
func (r Role) Declaration() (netlist.DeclKind, bool) {
	switch r {
	case RoleInput:
		return netlist.Input, true
	case RoleComputed:
		return netlist.Wire, true
	default:
		return 0, false
	}
}

// Classify assigns a role to a node. Rules are applied in priority order:
// structural op, literal op, primitive id marker, non-constant leaf, and
// everything else is computed.
func (c Conventions) Classify(id egraph.NodeID, n *egraph.Node) Role {
	if c.isStructural(n.Op) {
		return RoleStructural
	}
	if kind, _ := c.literal(n.Op); kind != notLiteral {
		return RoleLiteral
	}
	if c.isPrimitive(string(id)) {
		return RolePrimitive
	}
	if n.IsLeaf() && !c.isConstant(n.Op) {
		return RoleInput
	}
	return RoleComputed
}

// CountRoles tallies the roles of an ordered selection
func CountRoles(order []topo.Entry, conv Conventions) map[Role]int {
	counts := make(map[Role]int, len(Roles))
	for _, e := range order {
		counts[conv.Classify(e.ID, e.Node)]++
	}
	return counts
}
