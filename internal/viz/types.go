// Package viz renders generated lattice graphs for the browser.
package viz

import "github.com/matsen/docgraph/internal/lattice"

// Scene contains all data the visualization page needs.
type Scene struct {
	Nodes   []SceneNode      `json:"nodes"`
	Edges   []SceneEdge      `json:"edges"`
	Lattice []lattice.Point3 `json:"lattice"` // Empty unless ShowLattice
	Stats   lattice.Stats    `json:"stats"`
}

// SceneNode is a node ready to draw.
type SceneNode struct {
	ID    string         `json:"id"`
	Label string         `json:"label"`
	Pos   lattice.Point3 `json:"pos"`
	Size  float64        `json:"size"`
	Color string         `json:"color"` // "#rrggbb"
}

// SceneEdge is a visible edge, endpoints referenced by node index.
type SceneEdge struct {
	A      int     `json:"a"`
	B      int     `json:"b"`
	Weight float64 `json:"w"`
}

// IsEmpty returns true if the scene has no nodes.
func (s *Scene) IsEmpty() bool {
	return len(s.Nodes) == 0
}
