package lattice

import (
	"fmt"
	"math"
)

const (
	maxEdgeTries   = 12  // Pick attempts per node before giving up
	maxConnections = 3   // Edges per node are drawn from 1..maxConnections
	weightHorizon  = 1.2 // Distance beyond which proximity weight is zero
	colorJitter    = 0.05
)

// starPalette holds the base node colors, bluish to reddish.
var starPalette = [...]RGB{
	{0.61, 0.70, 1.0},
	{0.76, 0.82, 1.0},
	{0.95, 0.97, 1.0},
	{1.0, 1.0, 0.94},
	{1.0, 0.98, 0.82},
	{1.0, 0.91, 0.67},
	{1.0, 0.76, 0.47},
	{1.0, 0.65, 0.38},
	{1.0, 0.55, 0.35},
}

// Generate builds a graph for cfg. The same Config always yields the same
// graph, bit for bit.
//
// Docs <= 0 yields no nodes. Docs above the slot count uses every slot once.
func Generate(cfg Config) (*Graph, error) {
	cfg, err := cfg.normalized()
	if err != nil {
		return nil, err
	}

	rng := NewRand(cfg.Seed)
	slots := EdgeSlots(cfg.Cells)
	chosen := chooseSlots(rng, len(slots), cfg.Docs)
	nodes := placeNodes(rng, slots, chosen)
	edges := connectNeighbors(rng, nodes, cfg.Cells)

	return &Graph{
		Config:  cfg,
		Nodes:   nodes,
		Edges:   edges,
		Lattice: Wireframe(cfg.Cells, cfg.Scale),
	}, nil
}

// normalized validates cfg and fills defaults.
func (c Config) normalized() (Config, error) {
	if c.Cells <= 0 {
		return c, &ConfigError{Field: "cells", Value: c.Cells, Err: ErrInvalidCells}
	}
	if err := ValidateScale(c.Scale); err != nil {
		return c, err
	}
	if c.Scale == 0 {
		c.Scale = DefaultScale
	}
	if c.Docs < 0 {
		c.Docs = 0
	}
	// Only the low 32 bits seed the generator.
	c.Seed = int64(uint32(c.Seed))
	return c, nil
}

// ValidateScale returns a *ConfigError unless scale is finite and
// non-negative. Zero is accepted and stands for DefaultScale.
func ValidateScale(scale float64) error {
	if scale < 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return &ConfigError{Field: "scale", Value: scale, Err: ErrInvalidScale}
	}
	return nil
}

// chooseSlots draws distinct slot indices with reject-and-retry, preserving
// first-draw order.
func chooseSlots(rng *Rand, slotCount, docs int) []int {
	target := min(docs, slotCount)
	chosen := make([]int, 0, target)
	seen := make(map[int]struct{}, target)
	for len(chosen) < target {
		idx := rng.Intn(slotCount)
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		chosen = append(chosen, idx)
	}
	return chosen
}

// placeNodes creates one node per chosen slot. Draw order per node is
// size, palette, jitter, then r, g, b.
func placeNodes(rng *Rand, slots []Point3, chosen []int) []DocNode {
	nodes := make([]DocNode, len(chosen))
	for i, slotIdx := range chosen {
		size := sizeForRoll(rng.Float64())

		base := starPalette[rng.Intn(len(starPalette))]
		jitter := float64(rng.Float64() * colorJitter)
		var color RGB
		for c := range color {
			color[c] = clamp01(base[c] + float64((rng.Float64()-0.5)*jitter))
		}

		nodes[i] = DocNode{
			ID:    fmt.Sprintf("DOC-%d", i),
			Label: fmt.Sprintf("Paper %d", i),
			Pos:   slots[slotIdx],
			Size:  size,
			Color: color,
		}
	}
	return nodes
}

// sizeForRoll maps a uniform roll to the 70/25/5 size tiers.
func sizeForRoll(roll float64) float64 {
	switch {
	case roll < 0.7:
		return SizeSmall
	case roll < 0.95:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// connectNeighbors gives each node, in order, up to 1-3 edges to random nodes
// in the surrounding 27 buckets. A node that runs out of tries keeps whatever
// it got.
func connectNeighbors(rng *Rand, nodes []DocNode, cells int) []DocEdge {
	edges := []DocEdge{}
	if len(nodes) == 0 {
		return edges
	}

	index := newBucketIndex(nodes, cells)
	seen := make(map[[2]int]struct{})

	for i := range nodes {
		cand := index.candidates(nodes[i].Pos)
		connections := 1 + rng.Intn(maxConnections)

		made, tries := 0, 0
		for made < connections && tries < maxEdgeTries {
			tries++
			j := cand[rng.Intn(len(cand))]
			if j == i {
				continue
			}
			key := [2]int{min(i, j), max(i, j)}
			if _, dup := seen[key]; dup {
				continue
			}

			d := distance(nodes[i].Pos, nodes[j].Pos)
			w := math.Max(0, 1-d/weightHorizon) * (0.5 + float64(rng.Float64()*0.5))

			seen[key] = struct{}{}
			edges = append(edges, DocEdge{A: key[0], B: key[1], W: w})
			made++
		}
	}
	return edges
}

// distance is the Euclidean distance, summed in x, y, z order.
func distance(a, b Point3) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return math.Sqrt(float64(dx*dx) + float64(dy*dy) + float64(dz*dz))
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
