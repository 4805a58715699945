package netlistgen

import (
	"testing"

	"github.com/zzzDavid/extraction-gym/pkg/egraph"
	"github.com/zzzDavid/extraction-gym/pkg/extract"
	"github.com/zzzDavid/extraction-gym/pkg/netlist"
)

func literalGraph() *egraph.EGraph {
	return egraph.New(map[egraph.NodeID]*egraph.Node{
		// Num -> wrapper -> "42"
		"num":      node("Num", "cnum", "wrap"),
		"wrap":     node("wrapper", "cwrap", "leaf42"),
		"leaf42":   node("42", "c42"),
		// Var -> "\"y\"" (one hop)
		"var1":     node("Var", "cvar1", "qy"),
		"qy":       node(`"y"`, "cqy"),
		// Var -> wrapper -> "\"x\""
		"var2":     node("Var", "cvar2", "vwrap"),
		"vwrap":    node("String", "cvwrap", "qx"),
		"qx":       node(`"x"`, "cqx"),
		// Num chain longer than two hops stops at the second
		"deep":     node("Num", "cdeep", "d1"),
		"d1":       node("w1", "cd1", "d2"),
		"d2":       node("w2", "cd2", "d3"),
		"d3":       node("99", "cd3"),
		"bare":     node("Var", "cbare"),
		"inlinev":  node(`Var("z")`, "cinv"),
		"inlinen":  node("Num(-5)", "cinn"),
		"primitive-i64-7":  node("primitive-7", "cp7"),
		"primitive-String": node("ignored", "cps", "ps"),
		"ps":               node(`"hello"`, "cps2"),
		"a":        node("a", "ca"),
	}, nil)
}

func TestDecode(t *testing.T) {
	g := literalGraph()
	d := NewDecoder(g, extract.NewResult(), DefaultConventions(), nil)

	tests := []struct {
		id   egraph.NodeID
		want string
	}{
		{"num", "42"},
		{"var1", "y"},
		{"var2", "x"},
		{"deep", "w2"},
		{"bare", "Var"},
		{"inlinev", "z"},
		{"inlinen", "-5"},
		{"primitive-i64-7", "7"},
		{"primitive-String", `"hello"`},
	}

	for _, tc := range tests {
		t.Run(string(tc.id), func(t *testing.T) {
			got, ok := d.Decode(tc.id)
			if !ok {
				t.Fatalf("Decode(%s) not ok", tc.id)
			}
			if got != tc.want {
				t.Errorf("Decode(%s) = %q, want %q", tc.id, got, tc.want)
			}
		})
	}
}

func TestDecodeRejectsOtherRoles(t *testing.T) {
	d := NewDecoder(literalGraph(), extract.NewResult(), DefaultConventions(), nil)
	if _, ok := d.Decode("a"); ok {
		t.Error("Decode(a) should not apply to an input signal")
	}
	if _, ok := d.Decode("missing"); ok {
		t.Error("Decode(missing) should fail")
	}
}

func TestDecodeFollowsSelection(t *testing.T) {
	// The Num wrapper's raw child is the "1" leaf, but the selection picks
	// the "2" leaf of the same class.
	g := egraph.New(map[egraph.NodeID]*egraph.Node{
		"num": node("Num", "cnum", "one"),
		"one": node("1", "cval"),
		"two": node("2", "cval"),
	}, nil)
	sel := extract.NewResult()
	sel.Choose("cnum", "num")
	sel.Choose("cval", "two")

	d := NewDecoder(g, sel, DefaultConventions(), nil)
	if got, _ := d.Decode("num"); got != "2" {
		t.Errorf("Decode(num) = %q, want 2", got)
	}
}

func TestOperand(t *testing.T) {
	g := egraph.New(map[egraph.NodeID]*egraph.Node{
		"num":    node("Num", "cnum", "leaf"),
		"leaf":   node("8", "cleaf"),
		"k":      node("0", "ck"),
		"in-put": node("in", "cin"),
		"op-1":   node("Add", "cop", "in-put", "k"),
		"free":   node("f", "cfree"),
		"root":   node("RootNode", "croot", "op-1"),
	}, nil)
	sel := extract.NewResult()
	sel.Choose("cin", "in-put")
	sel.Choose("cop", "op-1")
	sel.Choose("croot", "root")
	d := NewDecoder(g, sel, DefaultConventions(), nil)

	tests := []struct {
		child egraph.NodeID
		want  netlist.Expr
	}{
		{"num", netlist.Literal{Value: "8"}},
		{"k", netlist.Literal{Value: "0"}},
		{"in-put", netlist.Ref{Name: "in_put"}},
		{"op-1", netlist.Ref{Name: "op_1"}},
		{"free", netlist.Ref{Name: "unknown_cfree"}},
		{"root", netlist.Ref{Name: "unknown_croot"}},
		{"ghost", netlist.Ref{Name: "unknown_ghost"}},
	}
	for _, tc := range tests {
		if got := d.Operand(tc.child); got != tc.want {
			t.Errorf("Operand(%s) = %#v, want %#v", tc.child, got, tc.want)
		}
	}
}

func TestOperandUsesAssignedNames(t *testing.T) {
	g := egraph.New(map[egraph.NodeID]*egraph.Node{
		"a-b": node("a", "ca"),
	}, nil)
	sel := extract.NewResult()
	sel.Choose("ca", "a-b")
	d := NewDecoder(g, sel, DefaultConventions(), nil)
	d.names = map[egraph.NodeID]string{"a-b": "a_b_1"}

	if got := d.Operand("a-b"); got != (netlist.Ref{Name: "a_b_1"}) {
		t.Errorf("Operand(a-b) = %#v, want a_b_1", got)
	}
}
