// Package export writes generated graphs to tabular formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/matsen/docgraph/internal/lattice"
)

// NodeHeader is the header row written by WriteNodesCSV.
var NodeHeader = []string{"index", "id", "label", "cluster", "x", "y", "z", "size", "r", "g", "b"}

// EdgeHeader is the header row written by WriteEdgesCSV.
var EdgeHeader = []string{"a", "b", "source_id", "target_id", "w"}

// WriteNodesCSV writes one row per node.
func WriteNodesCSV(w io.Writer, nodes []lattice.DocNode) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(NodeHeader); err != nil {
		return fmt.Errorf("writing node header: %w", err)
	}

	for i, n := range nodes {
		record := []string{
			strconv.Itoa(i),
			n.ID,
			n.Label,
			strconv.Itoa(n.Cluster),
			formatFloat(n.Pos[0]),
			formatFloat(n.Pos[1]),
			formatFloat(n.Pos[2]),
			formatFloat(n.Size),
			formatFloat(n.Color[0]),
			formatFloat(n.Color[1]),
			formatFloat(n.Color[2]),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing node %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteEdgesCSV writes one row per edge with weight at least threshold.
func WriteEdgesCSV(w io.Writer, g *lattice.Graph, threshold float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(EdgeHeader); err != nil {
		return fmt.Errorf("writing edge header: %w", err)
	}

	for _, e := range lattice.VisibleEdges(g.Edges, threshold) {
		record := []string{
			strconv.Itoa(e.A),
			strconv.Itoa(e.B),
			g.Nodes[e.A].ID,
			g.Nodes[e.B].ID,
			formatFloat(e.W),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing edge %d-%d: %w", e.A, e.B, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatFloat uses the shortest representation that round-trips.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
