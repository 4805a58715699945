package netlist

import (
	"fmt"
	"io"
	"strings"
)

// Section headers
const (
	DeclHeader   = "// Declarations"
	AssignHeader = "// Assignments"
)

// Printer outputs a Program as Verilog-style text
type Printer struct {
	w io.Writer
}

// NewPrinter creates a new netlist printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintProgram prints the declaration block, a blank line, then the
// assignment block.
func (p *Printer) PrintProgram(prog *Program) {
	fmt.Fprintln(p.w, DeclHeader)
	for _, d := range prog.Decls {
		p.PrintDecl(d)
	}
	fmt.Fprintln(p.w)

	fmt.Fprintln(p.w, AssignHeader)
	for _, a := range prog.Assigns {
		p.PrintAssign(a)
	}
}

// PrintDecl prints one declaration line, e.g. "wire [31:0] n2;"
func (p *Printer) PrintDecl(d Decl) {
	fmt.Fprintf(p.w, "%s [%d:0] %s;\n", d.Kind, d.Width-1, d.Name)
}

// PrintAssign prints one assignment line, e.g. "assign n2 = x + 1;"
func (p *Printer) PrintAssign(a Assign) {
	fmt.Fprintf(p.w, "assign %s = %s;\n", a.Target, FormatExpr(a.Expr))
}

// FormatExpr renders an expression. Operands are not parenthesized: every
// operand of an operator is a single name or literal.
func FormatExpr(e Expr) string {
	switch x := e.(type) {
	case Ref:
		return x.Name
	case Literal:
		return x.Value
	case Infix:
		return strings.Join(formatArgs(x.Args), " "+x.Symbol+" ")
	case Prefix:
		return x.Symbol + FormatExpr(x.Arg)
	case Call:
		return x.Func + "(" + strings.Join(formatArgs(x.Args), ", ") + ")"
	default:
		return "???"
	}
}

func formatArgs(args []Expr) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = FormatExpr(a)
	}
	return out
}
