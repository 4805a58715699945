// Package netlist defines the emitted single-assignment program: sized
// declarations followed by one continuous assignment per computed wire.
package netlist

// DeclKind distinguishes external inputs from internal wires
type DeclKind int

const (
	Input DeclKind = iota
	Wire
)

func (k DeclKind) String() string {
	switch k {
	case Input:
		return "input"
	case Wire:
		return "wire"
	default:
		return "?"
	}
}

// Decl declares a signal of Width bits
type Decl struct {
	Kind  DeclKind
	Name  string
	Width int
}

// Assign drives Target with Expr
type Assign struct {
	Target string
	Expr   Expr
}

// Program is a complete emitted unit
type Program struct {
	Decls   []Decl
	Assigns []Assign
}

// Expr is an assignment right-hand side
type Expr interface {
	implExpr()
}

// Ref names a previously declared signal
type Ref struct {
	Name string
}

// Literal is a decoded constant or variable name, printed verbatim
type Literal struct {
	Value string
}

// Infix joins two or more operands with Symbol
type Infix struct {
	Symbol string
	Args   []Expr
}

// Prefix applies a unary Symbol to one operand
type Prefix struct {
	Symbol string
	Arg    Expr
}

// Call renders Func(args...), the fallback for operators without a template
type Call struct {
	Func string
	Args []Expr
}

func (Ref) implExpr()     {}
func (Literal) implExpr() {}
func (Infix) implExpr()   {}
func (Prefix) implExpr()  {}
func (Call) implExpr()    {}

// Declared returns the set of declared names
func (p *Program) Declared() map[string]DeclKind {
	names := make(map[string]DeclKind, len(p.Decls))
	for _, d := range p.Decls {
		names[d.Name] = d.Kind
	}
	return names
}

// Refs returns the signal names an expression reads, in order of appearance
func Refs(e Expr) []string {
	var out []string
	var walk func(e Expr)
	walk = func(e Expr) {
		switch x := e.(type) {
		case Ref:
			out = append(out, x.Name)
		case Infix:
			for _, a := range x.Args {
				walk(a)
			}
		case Prefix:
			walk(x.Arg)
		case Call:
			for _, a := range x.Args {
				walk(a)
			}
		}
	}
	walk(e)
	return out
}
