// Package netlistgen translates an extracted e-graph into a netlist program.
// Each selected node is classified into an emission role, literal encodings
// are decoded, and every computed node becomes one assignment, in dependency
// order.
package netlistgen

import "strings"

// Conventions names the labels the e-graph uses to encode non-computational
// nodes.
type Conventions struct {
	Structural string   // op of purely organizational nodes (never emitted), bare or as Tag("name")
	Var        string   // op of variable-reference wrappers
	Num        string   // op of numeric-literal wrappers
	Primitive  string   // reserved marker in primitive node ids, also stripped from their op
	Constants  []string // leaf ops that denote fixed bit constants rather than inputs
}

// DefaultConventions returns the labels produced by the usual serializer
func DefaultConventions() Conventions {
	return Conventions{
		Structural: "RootNode",
		Var:        "Var",
		Num:        "Num",
		Primitive:  "primitive-",
		Constants:  []string{"0", "1"},
	}
}

// literalKind says how a literal marker's value is decoded
type literalKind int

const (
	notLiteral literalKind = iota
	varLiteral
	numLiteral
)

// literal reports whether op marks a Var or Num wrapper. Besides the bare tag,
// the inline leaf form Var("x") / Num(3) is accepted; inline is then the text
// between the parentheses.
func (c Conventions) literal(op string) (kind literalKind, inline string) {
	switch op {
	case c.Var:
		return varLiteral, ""
	case c.Num:
		return numLiteral, ""
	}
	if inner, ok := inlineArg(op, c.Var); ok {
		return varLiteral, inner
	}
	if inner, ok := inlineArg(op, c.Num); ok {
		return numLiteral, inner
	}
	return notLiteral, ""
}

func inlineArg(op, tag string) (string, bool) {
	if tag == "" || !strings.HasPrefix(op, tag+"(") || !strings.HasSuffix(op, ")") {
		return "", false
	}
	return op[len(tag)+1 : len(op)-1], true
}

// isStructural accepts the bare tag and the inline RootNode("out") form
func (c Conventions) isStructural(op string) bool {
	if op == c.Structural {
		return true
	}
	_, ok := inlineArg(op, c.Structural)
	return ok
}

func (c Conventions) isConstant(op string) bool {
	for _, k := range c.Constants {
		if op == k {
			return true
		}
	}
	return false
}

func (c Conventions) isPrimitive(id string) bool {
	return c.Primitive != "" && strings.Contains(id, c.Primitive)
}

// Sanitize canonicalizes a node id into a legal identifier: every character
// other than an ASCII letter, digit, '_' or '$' becomes '_'. Sanitize is
// idempotent.
func Sanitize(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '$':
			return r
		default:
			return '_'
		}
	}, id)
}

func trimQuotes(s string) string {
	return strings.Trim(s, `"`)
}
