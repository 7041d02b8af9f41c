// Package lattice generates synthetic document graphs laid out on the edges
// of a cubic voxel lattice.
package lattice

import (
	"errors"
	"fmt"
)

// Point3 is a point in normalized 3D space.
type Point3 [3]float64

// RGB is a color with each channel in [0,1].
type RGB [3]float64

// Node size tiers.
const (
	SizeSmall  = 0.05
	SizeMedium = 0.10
	SizeLarge  = 0.15
)

// Default generation parameters.
const (
	DefaultCells = 6
	DefaultDocs  = 900
	DefaultSeed  = 137
	DefaultScale = 1.05
)

// DocNode is one synthetic document placed on a lattice slot.
type DocNode struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Cluster int     `json:"cluster"` // Always 0; no semantic clustering
	Pos     Point3  `json:"pos"`
	Size    float64 `json:"size"`
	Color   RGB     `json:"color"`
}

// DocEdge is an undirected edge between two nodes, referenced by index.
// A is always less than B.
type DocEdge struct {
	A int     `json:"a"`
	B int     `json:"b"`
	W float64 `json:"w"`
}

// Config holds the inputs to Generate.
type Config struct {
	Cells int     `json:"cells"`
	Docs  int     `json:"docs"`
	Seed  int64   `json:"seed"`
	Scale float64 `json:"scale"` // Wireframe scale; 0 means DefaultScale
}

// DefaultConfig returns the parameters used by the graph page.
func DefaultConfig() Config {
	return Config{
		Cells: DefaultCells,
		Docs:  DefaultDocs,
		Seed:  DefaultSeed,
		Scale: DefaultScale,
	}
}

// Graph is the output of Generate. It is never mutated after creation.
type Graph struct {
	Config  Config    `json:"config"`
	Nodes   []DocNode `json:"nodes"`
	Edges   []DocEdge `json:"edges"`
	Lattice []Point3  `json:"latticeSegments"` // Consumed pairwise as segment endpoints
}

// IsEmpty returns true if the graph has no nodes.
func (g *Graph) IsEmpty() bool {
	return len(g.Nodes) == 0
}

// Configuration errors.
var (
	ErrInvalidCells = errors.New("cells must be at least 1")
	ErrInvalidScale = errors.New("scale must be a finite non-negative number")
	ErrNodeIndex    = errors.New("node index out of range")
)

// ConfigError reports which Config field was rejected.
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
