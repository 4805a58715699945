package netlistgen

import (
	"sort"
	"strings"

	"github.com/zzzDavid/extraction-gym/pkg/netlist"
)

// Template builds the right-hand side for an operator applied to operands
type Template interface {
	Build(op string, args []netlist.Expr) netlist.Expr
}

// InfixOp renders "a <sym> b", joining longer operand lists with the same symbol.
// With fewer than two operands it falls back to call style.
type InfixOp struct {
	Symbol string
}

// PrefixOp renders "<sym>a". Any other arity falls back to call style.
type PrefixOp struct {
	Symbol string
}

// CallOp renders "op(a, b, ...)"
type CallOp struct{}

// Build implements Template
func (t InfixOp) Build(op string, args []netlist.Expr) netlist.Expr {
	if len(args) < 2 {
		return CallOp{}.Build(op, args)
	}
	return netlist.Infix{Symbol: t.Symbol, Args: args}
}

// Build implements Template
func (t PrefixOp) Build(op string, args []netlist.Expr) netlist.Expr {
	if len(args) != 1 {
		return CallOp{}.Build(op, args)
	}
	return netlist.Prefix{Symbol: t.Symbol, Arg: args[0]}
}

// Build implements Template
func (CallOp) Build(op string, args []netlist.Expr) netlist.Expr {
	return netlist.Call{Func: op, Args: args}
}

// OperatorTable maps operator labels to templates. Labels without an entry
// use CallOp.
type OperatorTable map[string]Template

// DefaultOperators returns the arithmetic and shift operators
func DefaultOperators() OperatorTable {
	return OperatorTable{
		"Add": InfixOp{Symbol: "+"},
		"Sub": InfixOp{Symbol: "-"},
		"Mul": InfixOp{Symbol: "*"},
		"Shl": InfixOp{Symbol: "<<"},
	}
}

// ExtendedOperators returns DefaultOperators plus the bitwise operators and
// right shift.
func ExtendedOperators() OperatorTable {
	t := DefaultOperators()
	t["And"] = InfixOp{Symbol: "&"}
	t["Or"] = InfixOp{Symbol: "|"}
	t["Xor"] = InfixOp{Symbol: "^"}
	t["Shr"] = InfixOp{Symbol: ">>"}
	t["Not"] = PrefixOp{Symbol: "~"}
	return t
}

// With returns a copy of the table with other's entries added or replacing
func (t OperatorTable) With(other OperatorTable) OperatorTable {
	out := make(OperatorTable, len(t)+len(other))
	for op, tmpl := range t {
		out[op] = tmpl
	}
	for op, tmpl := range other {
		out[op] = tmpl
	}
	return out
}

// Build renders op applied to args using the op's template. A single-operand
// infix op written with an inline immediate, such as Shl(x, 2) or
// Mul(Num(3)), takes the immediate as its second operand.
func (t OperatorTable) Build(op string, args []netlist.Expr) netlist.Expr {
	if tmpl, ok := t[op]; ok {
		return tmpl.Build(op, args)
	}
	if base, imm, ok := splitImmediate(op); ok && len(args) == 1 {
		if tmpl, ok := t[base].(InfixOp); ok {
			return tmpl.Build(base, []netlist.Expr{args[0], netlist.Literal{Value: imm}})
		}
	}
	return CallOp{}.Build(op, args)
}

// splitImmediate splits "Op(...)" into Op and the immediate written inside
// the parentheses: the argument of a nested Num(k), else the text after the
// last comma, else the whole inner text.
func splitImmediate(op string) (base, imm string, ok bool) {
	open := strings.IndexByte(op, '(')
	if open <= 0 || !strings.HasSuffix(op, ")") {
		return "", "", false
	}
	base, inner := op[:open], op[open+1:len(op)-1]

	if i := strings.Index(inner, "Num("); i >= 0 {
		if j := strings.IndexByte(inner[i:], ')'); j >= 0 {
			imm = inner[i+len("Num(") : i+j]
		}
	} else if i := strings.LastIndexByte(inner, ','); i >= 0 {
		imm = inner[i+1:]
	} else {
		imm = inner
	}
	imm = strings.TrimSpace(imm)
	return base, imm, imm != ""
}

// Ops returns the labels in the table, sorted
func (t OperatorTable) Ops() []string {
	ops := make([]string, 0, len(t))
	for op := range t {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}
