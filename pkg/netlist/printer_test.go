package netlist

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestPrintProgram(t *testing.T) {
	prog := &Program{
		Decls: []Decl{
			{Kind: Input, Name: "a", Width: 32},
			{Kind: Wire, Name: "n2", Width: 32},
		},
		Assigns: []Assign{
			{Target: "n2", Expr: Infix{Symbol: "+", Args: []Expr{Ref{Name: "a"}, Literal{Value: "1"}}}},
		},
	}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintProgram(prog)

	want := `// Declarations
input [31:0] a;
wire [31:0] n2;

// Assignments
assign n2 = a + 1;
`
	if buf.String() != want {
		t.Errorf("PrintProgram output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrintEmptyProgram(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProgram(&Program{})

	want := DeclHeader + "\n\n" + AssignHeader + "\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestPrintDeclWidth(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDecl(Decl{Kind: Wire, Name: "w", Width: 1})
	if got := buf.String(); got != "wire [0:0] w;\n" {
		t.Errorf("PrintDecl = %q", got)
	}
}

func TestFormatExpr(t *testing.T) {
	a, b, c := Ref{Name: "a"}, Ref{Name: "b"}, Ref{Name: "c"}
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"ref", a, "a"},
		{"literal", Literal{Value: "42"}, "42"},
		{"binary", Infix{Symbol: "<<", Args: []Expr{a, b}}, "a << b"},
		{"n-ary", Infix{Symbol: "+", Args: []Expr{a, b, c}}, "a + b + c"},
		{"prefix", Prefix{Symbol: "~", Arg: a}, "~a"},
		{"call", Call{Func: "Div", Args: []Expr{a, b}}, "Div(a, b)"},
		{"call no args", Call{Func: "Nop"}, "Nop()"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatExpr(tc.expr); got != tc.want {
				t.Errorf("FormatExpr = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRefs(t *testing.T) {
	e := Call{Func: "Mux", Args: []Expr{
		Ref{Name: "s"},
		Prefix{Symbol: "~", Arg: Ref{Name: "a"}},
		Infix{Symbol: "+", Args: []Expr{Literal{Value: "3"}, Ref{Name: "b"}}},
	}}
	got := Refs(e)
	want := []string{"s", "a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Refs = %v, want %v", got, want)
	}
}

func TestDeclared(t *testing.T) {
	prog := &Program{Decls: []Decl{{Kind: Input, Name: "a"}, {Kind: Wire, Name: "b"}}}
	names := prog.Declared()
	if names["a"] != Input || names["b"] != Wire {
		t.Errorf("Declared = %v", names)
	}
	if strings.Contains(Wire.String(), "?") || Input.String() != "input" {
		t.Errorf("DeclKind strings = %s, %s", Input, Wire)
	}
}
