package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/zzzDavid/extraction-gym/pkg/egraph"
)

// LoadResultFile reads a selection from a JSON file
func LoadResultFile(filename string) (*Result, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := ReadResult(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return r, nil
}

// ReadResult decodes a selection written as a JSON object mapping class ids
// to node ids, e.g. {"C0": "n0", "C2": "n2"}.
func ReadResult(r io.Reader) (*Result, error) {
	var raw map[string]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}
	res := NewResult()
	for class, node := range raw {
		if node == "" {
			return nil, fmt.Errorf("%w: class %q has an empty choice", ErrInvalidSelection, class)
		}
		res.Choose(egraph.ClassID(class), egraph.NodeID(node))
	}
	return res, nil
}

// WriteResult encodes the selection in the format ReadResult accepts.
// Keys are written in sorted order.
func (r *Result) WriteResult(w io.Writer) error {
	raw := make(map[string]string, len(r.Choices))
	for class, node := range r.Choices {
		raw[string(class)] = string(node)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(raw)
}
