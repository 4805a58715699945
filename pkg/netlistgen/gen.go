package netlistgen

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/zzzDavid/extraction-gym/pkg/egraph"
	"github.com/zzzDavid/extraction-gym/pkg/extract"
	"github.com/zzzDavid/extraction-gym/pkg/netlist"
	"github.com/zzzDavid/extraction-gym/pkg/topo"
)

// DefaultWidth is the declared bit width when none is configured
const DefaultWidth = 32

// Options configures netlist generation
type Options struct {
	Width       int
	Operators   OperatorTable
	Conventions Conventions
	Log         logrus.FieldLogger
}

// DefaultOptions returns 32-bit declarations with the default operators and conventions
func DefaultOptions() Options {
	return Options{
		Width:       DefaultWidth,
		Operators:   DefaultOperators(),
		Conventions: DefaultConventions(),
	}
}

// generator holds state during generation
type generator struct {
	opts  Options
	dec   *Decoder
	names map[egraph.NodeID]string
	prog  *netlist.Program
}

// Compilation is the outcome of compiling one selection
type Compilation struct {
	Program *netlist.Program
	Order   []topo.Entry
	Cycles  []topo.Cycle
}

// Compile orders the selection and generates its program. Cycles in the
// selection are logged as warnings and returned; they do not stop generation.
func Compile(g *egraph.EGraph, sel *extract.Result, opts Options) *Compilation {
	log := orDiscard(opts.Log)

	order, cycles := topo.Sort(g, sel)
	for _, c := range cycles {
		log.WithFields(logrus.Fields{
			"node": c.Node,
			"from": c.From,
		}).Warn("cycle in selection, dropping dependency edge")
	}
	log.Debugf("ordered %d selected nodes", len(order))

	return &Compilation{
		Program: Generate(g, sel, order, opts),
		Order:   order,
		Cycles:  cycles,
	}
}

// Generate builds the program for an ordered selection: declarations for
// inputs and computed nodes, then one assignment per computed node that has
// operands, both in the given order. Nodes whose ids sanitize to the same
// identifier are given distinct names.
func Generate(g *egraph.EGraph, sel *extract.Result, order []topo.Entry, opts Options) *netlist.Program {
	if opts.Operators == nil {
		opts.Operators = DefaultOperators()
	}
	log := orDiscard(opts.Log)
	names := assignNames(order, opts.Conventions, log)
	dec := NewDecoder(g, sel, opts.Conventions, log)
	dec.names = names
	gen := &generator{
		opts:  opts,
		dec:   dec,
		names: names,
		prog:  &netlist.Program{},
	}

	for _, e := range order {
		gen.emit(e)
	}
	return gen.prog
}

func (gen *generator) emit(e topo.Entry) {
	role := gen.opts.Conventions.Classify(e.ID, e.Node)
	kind, ok := role.Declaration()
	if !ok {
		return
	}

	name := gen.names[e.ID]
	gen.prog.Decls = append(gen.prog.Decls, netlist.Decl{Kind: kind, Name: name, Width: gen.opts.Width})

	// Constant leaves are declared but have no driver
	if role != RoleComputed || e.Node.IsLeaf() {
		return
	}

	args := make([]netlist.Expr, len(e.Node.Children))
	for i, child := range e.Node.Children {
		args[i] = gen.dec.Operand(child)
	}
	gen.prog.Assigns = append(gen.prog.Assigns, netlist.Assign{
		Target: name,
		Expr:   gen.opts.Operators.Build(e.Node.Op, args),
	})
}

// orDiscard substitutes a silent logger for nil
func orDiscard(log logrus.FieldLogger) logrus.FieldLogger {
	if log != nil {
		return log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
