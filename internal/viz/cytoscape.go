package viz

import (
	"encoding/json"
	"fmt"

	"github.com/matsen/docgraph/internal/lattice"
)

// cytoscapeSpread converts normalized coordinates to Cytoscape pixels.
const cytoscapeSpread = 400

// CytoscapeElements represents the Cytoscape.js data format.
type CytoscapeElements struct {
	Nodes []CytoscapeNode `json:"nodes"`
	Edges []CytoscapeEdge `json:"edges"`
}

// CytoscapeNode represents a node in Cytoscape.js format.
type CytoscapeNode struct {
	Data     CytoscapeNodeData `json:"data"`
	Position CytoscapePosition `json:"position"`
}

// CytoscapeNodeData contains the node data fields.
type CytoscapeNodeData struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Size  float64 `json:"size"`
	Color string  `json:"color"`
	Z     float64 `json:"z"` // Depth, dropped by the 2D projection
}

// CytoscapePosition is a preset 2D position (x/y projection of the lattice).
type CytoscapePosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CytoscapeEdge represents an edge in Cytoscape.js format.
type CytoscapeEdge struct {
	Data CytoscapeEdgeData `json:"data"`
}

// CytoscapeEdgeData contains the edge data fields.
type CytoscapeEdgeData struct {
	ID     string  `json:"id"`
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// ToCytoscape converts a graph to Cytoscape.js elements, keeping edges with
// weight at least threshold.
func ToCytoscape(g *lattice.Graph, threshold float64) CytoscapeElements {
	elements := CytoscapeElements{
		Nodes: make([]CytoscapeNode, 0, len(g.Nodes)),
		Edges: make([]CytoscapeEdge, 0, len(g.Edges)),
	}

	for _, n := range g.Nodes {
		elements.Nodes = append(elements.Nodes, CytoscapeNode{
			Data: CytoscapeNodeData{
				ID:    n.ID,
				Label: n.Label,
				Size:  n.Size,
				Color: hexColor(n.Color),
				Z:     n.Pos[2],
			},
			Position: CytoscapePosition{
				X: n.Pos[0] * cytoscapeSpread,
				Y: -n.Pos[1] * cytoscapeSpread, // Screen y grows downward
			},
		})
	}

	for _, e := range lattice.VisibleEdges(g.Edges, threshold) {
		source, target := g.Nodes[e.A].ID, g.Nodes[e.B].ID
		elements.Edges = append(elements.Edges, CytoscapeEdge{
			Data: CytoscapeEdgeData{
				ID:     edgeID(source, target),
				Source: source,
				Target: target,
				Weight: e.W,
			},
		})
	}
	return elements
}

// ToCytoscapeJSON converts a graph to Cytoscape.js JSON format.
func ToCytoscapeJSON(g *lattice.Graph, threshold float64) (string, error) {
	jsonBytes, err := json.Marshal(ToCytoscape(g, threshold))
	if err != nil {
		return "", fmt.Errorf("marshaling Cytoscape elements to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

// edgeID generates the edge ID. Edges are unique per node pair, so the pair
// alone identifies them.
func edgeID(source, target string) string {
	return source + "-" + target
}
