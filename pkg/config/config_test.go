package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/zzzDavid/extraction-gym/pkg/netlist"
	"github.com/zzzDavid/extraction-gym/pkg/netlistgen"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Width != 32 {
		t.Errorf("Width = %d, want 32", cfg.Width)
	}
	if cfg.Extractor != "faster-greedy-dag" {
		t.Errorf("Extractor = %s, want faster-greedy-dag", cfg.Extractor)
	}
	if !reflect.DeepEqual(cfg.NodeConventions(), netlistgen.DefaultConventions()) {
		t.Errorf("NodeConventions = %+v, want defaults", cfg.NodeConventions())
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
width: 16
extractor: bottom-up
operators: extended
templates:
  Div: {kind: infix, symbol: "/"}
  Neg: {kind: prefix, symbol: "-"}
  Not: {kind: call}
conventions:
  structural: Top
  constants: ["false", "true"]
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Width != 16 || cfg.Extractor != "bottom-up" || cfg.Operators != OperatorsExtended {
		t.Errorf("cfg = %+v", cfg)
	}

	ops := cfg.OperatorTable()
	a, b := netlist.Ref{Name: "a"}, netlist.Ref{Name: "b"}
	tests := []struct {
		op   string
		args []netlist.Expr
		want string
	}{
		{"Div", []netlist.Expr{a, b}, "a / b"},
		{"Neg", []netlist.Expr{a}, "-a"},
		{"Not", []netlist.Expr{a}, "Not(a)"},
		{"Xor", []netlist.Expr{a, b}, "a ^ b"},
		{"Add", []netlist.Expr{a, b}, "a + b"},
	}
	for _, tc := range tests {
		if got := netlist.FormatExpr(ops.Build(tc.op, tc.args)); got != tc.want {
			t.Errorf("%s renders %q, want %q", tc.op, got, tc.want)
		}
	}

	conv := cfg.NodeConventions()
	if conv.Structural != "Top" || conv.Var != "Var" {
		t.Errorf("conventions = %+v", conv)
	}
	if !reflect.DeepEqual(conv.Constants, []string{"false", "true"}) {
		t.Errorf("Constants = %v", conv.Constants)
	}

	opts := cfg.GenOptions()
	if opts.Width != 16 {
		t.Errorf("GenOptions width = %d, want 16", opts.Width)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"zero width", "width: 0"},
		{"negative width", "width: -4"},
		{"unknown extractor", "extractor: ilp-cbc"},
		{"unknown operator set", "operators: all"},
		{"bad template kind", "templates: {Div: {kind: postfix}}"},
		{"infix without symbol", "templates: {Div: {kind: infix}}"},
		{"malformed yaml", "width: [1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.input))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidConfig", tc.input, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("width: 64\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Width != 64 {
		t.Errorf("Width = %d, want 64", cfg.Width)
	}
	if cfg.Extractor != "faster-greedy-dag" {
		t.Errorf("Extractor = %s, want default", cfg.Extractor)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
