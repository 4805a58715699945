package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/markkurossi/tabulate"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/zzzDavid/extraction-gym/pkg/config"
	"github.com/zzzDavid/extraction-gym/pkg/egraph"
	"github.com/zzzDavid/extraction-gym/pkg/extract"
	"github.com/zzzDavid/extraction-gym/pkg/netlist"
	"github.com/zzzDavid/extraction-gym/pkg/netlistgen"
	"github.com/zzzDavid/extraction-gym/pkg/report"
	"golang.org/x/term"
)

var version = "0.1.0"

// Run options
var (
	extractorName  string
	width          int
	configPath     string
	outputPath     string
	selectionPath  string
	extendedOps    bool
	showStats      bool
	verbose        bool
	listExtractors bool
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "extract-verilog [graph.json]",
		Short: "extract-verilog turns an extracted e-graph into Verilog-style statements",
		Long: `extract-verilog loads a serialized e-graph, picks one node per
e-class with the chosen extractor (or reads a selection from a file),
orders the selected nodes so operands come before their users, and
prints wire declarations followed by continuous assignments.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listExtractors {
				for _, name := range extract.Names() {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			if len(args) == 0 {
				cmd.Help()
				return nil
			}

			if err := doEmit(cmd.Flags(), args[0], out, errOut); err != nil {
				fmt.Fprintf(errOut, "extract-verilog: %v\n", err)
				return err
			}
			return nil
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	addRunFlags(rootCmd.Flags())

	return rootCmd
}

// addRunFlags registers the run options on fs
func addRunFlags(fs *pflag.FlagSet) {
	fs.StringVar(&extractorName, "extractor", extract.DefaultExtractor, "Extraction strategy (see --list-extractors)")
	fs.IntVar(&width, "width", netlistgen.DefaultWidth, "Declared bit width of every signal")
	fs.StringVar(&configPath, "config", "", "YAML config file")
	fs.StringVarP(&outputPath, "output", "o", "", "Write statements to file instead of stdout")
	fs.StringVar(&selectionPath, "selection", "", "Read the selection from a JSON file instead of extracting")
	fs.BoolVar(&extendedOps, "extended-ops", false, "Render And, Or, Xor, Shr and Not as operators")
	fs.BoolVar(&showStats, "stats", false, "Print a summary table to stderr")
	fs.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	fs.BoolVar(&listExtractors, "list-extractors", false, "List available extractors and exit")
}

// loadConfig reads the config file, if any, and applies flags that were set
// explicitly on the command line.
func loadConfig(fs *pflag.FlagSet) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}

	if fs.Changed("extractor") {
		cfg.Extractor = extractorName
	}
	if fs.Changed("width") {
		cfg.Width = width
	}
	if extendedOps {
		cfg.Operators = config.OperatorsExtended
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger returns a logger writing to w, at debug level under --verbose
func newLogger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// selectNodes reads the selection file if one was given, otherwise runs
// the configured extractor over the graph roots.
func selectNodes(g *egraph.EGraph, cfg *config.Config, log logrus.FieldLogger) (*extract.Result, string, error) {
	if selectionPath != "" {
		sel, err := extract.LoadResultFile(selectionPath)
		if err != nil {
			return nil, "", err
		}
		log.Debugf("read %d choices from %s", sel.Len(), selectionPath)
		return sel, selectionPath, nil
	}

	ex, err := extract.ByName(cfg.Extractor)
	if err != nil {
		return nil, "", err
	}
	sel := ex.Extract(g, g.RootClasses)
	log.WithField("extractor", cfg.Extractor).Debugf("extracted %d classes", sel.Len())
	return sel, cfg.Extractor, nil
}

// doEmit runs the full pipeline for one graph file. Nothing is written to
// the output until every stage has succeeded.
func doEmit(fs *pflag.FlagSet, filename string, out, errOut io.Writer) error {
	cfg, err := loadConfig(fs)
	if err != nil {
		return err
	}
	log := newLogger(errOut)

	g, err := egraph.LoadFile(filename)
	if err != nil {
		return err
	}
	log.Debugf("loaded %d nodes in %d classes", g.Len(), g.NumClasses())

	sel, source, err := selectNodes(g, cfg, log)
	if err != nil {
		return err
	}
	if err := sel.Check(g); err != nil {
		return err
	}

	opts := cfg.GenOptions()
	opts.Log = log
	comp := netlistgen.Compile(g, sel, opts)

	var buf bytes.Buffer
	netlist.NewPrinter(&buf).PrintProgram(comp.Program)

	if outputPath == "" || outputPath == "-" {
		if _, err := out.Write(buf.Bytes()); err != nil {
			return err
		}
	} else if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return err
	}

	if showStats {
		s := report.Summarize(source, g, sel, comp.Order, comp.Cycles, comp.Program, opts.Conventions)
		report.Print(errOut, tableStyle(errOut), s)
	}
	return nil
}

// tableStyle picks box-drawing output for terminals and plain ASCII otherwise
func tableStyle(w io.Writer) tabulate.Style {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return tabulate.UnicodeLight
	}
	return tabulate.ASCII
}
