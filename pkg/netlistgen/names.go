package netlistgen

import (
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/zzzDavid/extraction-gym/pkg/egraph"
	"github.com/zzzDavid/extraction-gym/pkg/topo"
)

// assignNames gives every declared node of an order its own identifier. The
// first node in the order whose id sanitizes to a name keeps it; later nodes
// with the same sanitized id get the lowest free "_N" suffix. Suffixed names
// never take a name some other node sanitizes to.
func assignNames(order []topo.Entry, conv Conventions, log logrus.FieldLogger) map[egraph.NodeID]string {
	reserved := make(map[string]bool)
	for _, e := range order {
		if _, ok := conv.Classify(e.ID, e.Node).Declaration(); ok {
			reserved[Sanitize(string(e.ID))] = true
		}
	}

	names := make(map[egraph.NodeID]string)
	taken := make(map[string]egraph.NodeID)
	for _, e := range order {
		if _, ok := conv.Classify(e.ID, e.Node).Declaration(); !ok {
			continue
		}
		base := Sanitize(string(e.ID))
		prev, clash := taken[base]
		if !clash {
			names[e.ID] = base
			taken[base] = e.ID
			continue
		}

		var name string
		for i := 1; ; i++ {
			name = base + "_" + strconv.Itoa(i)
			if _, used := taken[name]; !used && !reserved[name] {
				break
			}
		}
		log.WithFields(logrus.Fields{
			"node":     e.ID,
			"previous": prev,
			"name":     name,
		}).Warn("sanitized name already taken, renaming node")
		names[e.ID] = name
		taken[name] = e.ID
	}
	return names
}
