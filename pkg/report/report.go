// Package report prints a summary table of an extraction run
package report

import (
	"fmt"
	"io"

	"github.com/markkurossi/tabulate"
	"github.com/zzzDavid/extraction-gym/pkg/egraph"
	"github.com/zzzDavid/extraction-gym/pkg/extract"
	"github.com/zzzDavid/extraction-gym/pkg/netlist"
	"github.com/zzzDavid/extraction-gym/pkg/netlistgen"
	"github.com/zzzDavid/extraction-gym/pkg/topo"
)

// Summary collects the figures shown in the table
type Summary struct {
	Extractor string
	Classes   int
	Nodes     int
	Selected  int
	Ordered   int
	Cycles    int
	Roles     map[netlistgen.Role]int
	Decls     int
	Assigns   int
	TreeCost  float64
	DagCost   float64
}

// Summarize gathers the statistics of one run
func Summarize(extractor string, g *egraph.EGraph, sel *extract.Result, order []topo.Entry,
	cycles []topo.Cycle, prog *netlist.Program, conv netlistgen.Conventions) *Summary {

	return &Summary{
		Extractor: extractor,
		Classes:   g.NumClasses(),
		Nodes:     g.Len(),
		Selected:  sel.Len(),
		Ordered:   len(order),
		Cycles:    len(cycles),
		Roles:     netlistgen.CountRoles(order, conv),
		Decls:     len(prog.Decls),
		Assigns:   len(prog.Assigns),
		TreeCost:  sel.TreeCost(g, g.RootClasses),
		DagCost:   sel.DagCost(g, g.RootClasses),
	}
}

// Print writes the summary as a two-column table in the given style
func Print(w io.Writer, style tabulate.Style, s *Summary) {
	tab := tabulate.New(style)
	tab.Header("Metric").SetAlign(tabulate.ML)
	tab.Header("Value").SetAlign(tabulate.MR)

	add := func(label, value string) {
		row := tab.Row()
		row.Column(label)
		row.Column(value)
	}

	add("Extractor", s.Extractor)
	add("Classes", fmt.Sprintf("%d", s.Classes))
	add("Nodes", fmt.Sprintf("%d", s.Nodes))
	add("Selected", fmt.Sprintf("%d", s.Selected))
	add("Ordered", fmt.Sprintf("%d", s.Ordered))
	branch, last := treePrefixes(style)
	for i, r := range netlistgen.Roles {
		prefix := branch
		if i == len(netlistgen.Roles)-1 {
			prefix = last
		}
		row := tab.Row()
		row.Column(prefix + r.String()).SetFormat(tabulate.FmtItalic)
		row.Column(fmt.Sprintf("%d", s.Roles[r])).SetFormat(tabulate.FmtItalic)
	}
	add("Cycles", fmt.Sprintf("%d", s.Cycles))
	add("Declarations", fmt.Sprintf("%d", s.Decls))
	add("Assignments", fmt.Sprintf("%d", s.Assigns))
	add("Tree cost", fmt.Sprintf("%g", s.TreeCost))
	add("DAG cost", fmt.Sprintf("%g", s.DagCost))

	tab.Print(w)
}

// treePrefixes returns the markers for nested rows, drawn with box characters
// except in the ASCII style
func treePrefixes(style tabulate.Style) (branch, last string) {
	if style == tabulate.ASCII {
		return "|-", "`-"
	}
	return "\u251C\u2574", "\u2570\u2574"
}
