// Package config loads run settings from YAML: declaration width, extraction
// strategy, operator templates and the labels used to recognize literal and
// structural nodes.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/zzzDavid/extraction-gym/pkg/extract"
	"github.com/zzzDavid/extraction-gym/pkg/netlistgen"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for settings that cannot be used
var ErrInvalidConfig = errors.New("invalid config")

// Operator sets selectable with the "operators" key
const (
	OperatorsDefault  = "default"
	OperatorsExtended = "extended"
)

// Template describes an operator rendering in the config file
type Template struct {
	Kind   string `yaml:"kind"` // infix, prefix or call
	Symbol string `yaml:"symbol,omitempty"`
}

// Conventions overrides the node labels; empty fields keep the defaults
type Conventions struct {
	Structural string   `yaml:"structural,omitempty"`
	Var        string   `yaml:"var,omitempty"`
	Num        string   `yaml:"num,omitempty"`
	Primitive  string   `yaml:"primitive,omitempty"`
	Constants  []string `yaml:"constants,omitempty"`
}

// Config is the complete set of run settings
type Config struct {
	Width       int                 `yaml:"width"`
	Extractor   string              `yaml:"extractor"`
	Operators   string              `yaml:"operators"`
	Templates   map[string]Template `yaml:"templates,omitempty"`
	Conventions Conventions         `yaml:"conventions,omitempty"`
}

// Default returns the settings used without a config file
func Default() *Config {
	return &Config{
		Width:     netlistgen.DefaultWidth,
		Extractor: extract.DefaultExtractor,
		Operators: OperatorsDefault,
	}
}

// Load reads a YAML config file. Keys absent from the file keep their defaults.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML config text and validates it
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings for values that would make a run meaningless
func (c *Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidConfig, c.Width)
	}
	if _, err := extract.ByName(c.Extractor); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Operators {
	case OperatorsDefault, OperatorsExtended:
	default:
		return fmt.Errorf("%w: operators must be %q or %q, got %q",
			ErrInvalidConfig, OperatorsDefault, OperatorsExtended, c.Operators)
	}
	for op, t := range c.Templates {
		if _, err := t.template(); err != nil {
			return fmt.Errorf("%w: template %s: %v", ErrInvalidConfig, op, err)
		}
	}
	return nil
}

func (t Template) template() (netlistgen.Template, error) {
	switch t.Kind {
	case "infix":
		if t.Symbol == "" {
			return nil, errors.New("infix template needs a symbol")
		}
		return netlistgen.InfixOp{Symbol: t.Symbol}, nil
	case "prefix":
		if t.Symbol == "" {
			return nil, errors.New("prefix template needs a symbol")
		}
		return netlistgen.PrefixOp{Symbol: t.Symbol}, nil
	case "call":
		return netlistgen.CallOp{}, nil
	default:
		return nil, fmt.Errorf("unknown kind %q", t.Kind)
	}
}

// OperatorTable builds the operator table: the selected base set with the
// configured templates layered on top.
func (c *Config) OperatorTable() netlistgen.OperatorTable {
	base := netlistgen.DefaultOperators()
	if c.Operators == OperatorsExtended {
		base = netlistgen.ExtendedOperators()
	}
	extra := make(netlistgen.OperatorTable, len(c.Templates))
	for op, t := range c.Templates {
		if tmpl, err := t.template(); err == nil {
			extra[op] = tmpl
		}
	}
	return base.With(extra)
}

// NodeConventions returns the default conventions with configured overrides applied
func (c *Config) NodeConventions() netlistgen.Conventions {
	conv := netlistgen.DefaultConventions()
	if c.Conventions.Structural != "" {
		conv.Structural = c.Conventions.Structural
	}
	if c.Conventions.Var != "" {
		conv.Var = c.Conventions.Var
	}
	if c.Conventions.Num != "" {
		conv.Num = c.Conventions.Num
	}
	if c.Conventions.Primitive != "" {
		conv.Primitive = c.Conventions.Primitive
	}
	if c.Conventions.Constants != nil {
		conv.Constants = c.Conventions.Constants
	}
	return conv
}

// GenOptions converts the config to netlist generation options
func (c *Config) GenOptions() netlistgen.Options {
	return netlistgen.Options{
		Width:       c.Width,
		Operators:   c.OperatorTable(),
		Conventions: c.NodeConventions(),
	}
}
