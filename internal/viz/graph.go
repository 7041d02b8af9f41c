package viz

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/matsen/docgraph/internal/lattice"
)

// BuildScene converts a generated graph into draw-ready data, dropping edges
// below the threshold and the lattice when it is hidden.
func BuildScene(g *lattice.Graph, opts HTMLOptions) *Scene {
	scene := &Scene{
		Nodes:   buildSceneNodes(g.Nodes),
		Edges:   []SceneEdge{},
		Lattice: []lattice.Point3{},
		Stats:   lattice.ComputeStats(g, opts.EdgeThreshold),
	}

	if opts.ShowEdges {
		scene.Edges = buildSceneEdges(lattice.VisibleEdges(g.Edges, opts.EdgeThreshold))
	}
	if opts.ShowLattice {
		scene.Lattice = g.Lattice
	}
	return scene
}

// ToJSON converts a graph to the scene JSON the page consumes.
func ToJSON(g *lattice.Graph, opts HTMLOptions) (string, error) {
	jsonBytes, err := json.Marshal(BuildScene(g, opts))
	if err != nil {
		return "", fmt.Errorf("marshaling scene to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

func buildSceneNodes(nodes []lattice.DocNode) []SceneNode {
	out := make([]SceneNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, SceneNode{
			ID:    n.ID,
			Label: n.Label,
			Pos:   n.Pos,
			Size:  n.Size,
			Color: hexColor(n.Color),
		})
	}
	return out
}

func buildSceneEdges(edges []lattice.DocEdge) []SceneEdge {
	out := make([]SceneEdge, 0, len(edges))
	for _, e := range edges {
		out = append(out, SceneEdge{A: e.A, B: e.B, Weight: e.W})
	}
	return out
}

// hexColor formats an RGB triple as "#rrggbb".
func hexColor(c lattice.RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", channelByte(c[0]), channelByte(c[1]), channelByte(c[2]))
}

func channelByte(v float64) uint8 {
	return uint8(math.Round(math.Min(1, math.Max(0, v)) * 255))
}
