package lattice

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGenerate(t *testing.T, cfg Config) *Graph {
	t.Helper()
	g, err := Generate(cfg)
	require.NoError(t, err)
	return g
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := Config{Cells: 6, Docs: 900, Seed: 137}
	a, err := json.Marshal(mustGenerate(t, cfg))
	require.NoError(t, err)
	b, err := json.Marshal(mustGenerate(t, cfg))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestGenerate_SeedsDiffer(t *testing.T) {
	a := mustGenerate(t, Config{Cells: 6, Docs: 300, Seed: 1})
	b := mustGenerate(t, Config{Cells: 6, Docs: 300, Seed: 2})
	assert.NotEqual(t, a.Nodes, b.Nodes)
}

func TestGenerate_NodeCount(t *testing.T) {
	tests := []struct {
		cells, docs int
	}{
		{1, 0},
		{1, 5},
		{1, 12},
		{1, 100},
		{2, 4},
		{3, 50},
		{6, 900},
		{6, 1200},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("cells=%d/docs=%d", tt.cells, tt.docs), func(t *testing.T) {
			g := mustGenerate(t, Config{Cells: tt.cells, Docs: tt.docs, Seed: 11})
			assert.Len(t, g.Nodes, min(tt.docs, SlotCount(tt.cells)))
		})
	}
}

func TestGenerate_Invariants(t *testing.T) {
	for _, seed := range []int64{1, 123, 137, 2024} {
		g := mustGenerate(t, Config{Cells: 6, Docs: 600, Seed: seed})

		positions := make(map[Point3]bool, len(g.Nodes))
		for i, n := range g.Nodes {
			require.Equal(t, fmt.Sprintf("DOC-%d", i), n.ID)
			require.Equal(t, fmt.Sprintf("Paper %d", i), n.Label)
			require.Zero(t, n.Cluster)
			require.False(t, positions[n.Pos], "two nodes share position %v", n.Pos)
			positions[n.Pos] = true
			require.Contains(t, []float64{SizeSmall, SizeMedium, SizeLarge}, n.Size)
			for _, c := range n.Color {
				require.GreaterOrEqual(t, c, 0.0)
				require.LessOrEqual(t, c, 1.0)
			}
		}

		pairs := make(map[[2]int]bool, len(g.Edges))
		for _, e := range g.Edges {
			require.GreaterOrEqual(t, e.A, 0)
			require.Less(t, e.A, e.B)
			require.Less(t, e.B, len(g.Nodes))
			require.False(t, pairs[[2]int{e.A, e.B}], "duplicate edge %d-%d", e.A, e.B)
			pairs[[2]int{e.A, e.B}] = true
			require.GreaterOrEqual(t, e.W, 0.0)
			require.LessOrEqual(t, e.W, 1.0)
		}
	}
}

func TestGenerate_EdgesStayNearby(t *testing.T) {
	const cells = 6
	g := mustGenerate(t, Config{Cells: cells, Docs: 500, Seed: 3})
	idx := newBucketIndex(g.Nodes, cells)
	for _, e := range g.Edges {
		ka, kb := idx.keyFor(g.Nodes[e.A].Pos), idx.keyFor(g.Nodes[e.B].Pos)
		assert.LessOrEqual(t, abs(ka.X-kb.X), 1)
		assert.LessOrEqual(t, abs(ka.Y-kb.Y), 1)
		assert.LessOrEqual(t, abs(ka.Z-kb.Z), 1)
	}
}

func TestGenerate_EdgesPerNodeBounded(t *testing.T) {
	// Each node opens at most maxConnections edges on its own turn, so the
	// edge count is bounded by three per node.
	g := mustGenerate(t, Config{Cells: 6, Docs: 882, Seed: 137})
	assert.LessOrEqual(t, len(g.Edges), maxConnections*len(g.Nodes))
	assert.NotEmpty(t, g.Edges)
}

func TestGenerate_SizeDistribution(t *testing.T) {
	g := mustGenerate(t, Config{Cells: 20, Docs: 10000, Seed: 42})
	require.Len(t, g.Nodes, 10000)

	h := SizeTiers(g.Nodes)
	total := float64(h.Total())
	assert.InDelta(t, 0.70, float64(h.Small)/total, 0.02)
	assert.InDelta(t, 0.25, float64(h.Medium)/total, 0.02)
	assert.InDelta(t, 0.05, float64(h.Large)/total, 0.01)
}

func TestGenerate_LatticeSegmentCount(t *testing.T) {
	for _, cells := range []int{1, 2, 3, 6} {
		g := mustGenerate(t, Config{Cells: cells, Docs: 10, Seed: 1})
		side := cells + 1
		assert.Len(t, g.Lattice, 2*3*side*side*cells, "cells=%d", cells)
	}
}

func TestGenerate_SmallScenario(t *testing.T) {
	cfg := Config{Cells: 2, Docs: 4, Seed: 1}
	g := mustGenerate(t, cfg)
	again := mustGenerate(t, cfg)
	require.Equal(t, g, again)

	wantPos := []Point3{
		{-0.5, 1, -1},
		{-1, 0.5, -1},
		{0, 0.5, 0},
		{-1, 0, -0.5},
	}
	require.Len(t, g.Nodes, 4)
	for i, n := range g.Nodes {
		assert.Equal(t, wantPos[i], n.Pos, "node %d", i)
		assert.Contains(t, EdgeSlots(2), n.Pos)
	}
	assert.Equal(t, []float64{SizeSmall, SizeSmall, SizeMedium, SizeSmall},
		[]float64{g.Nodes[0].Size, g.Nodes[1].Size, g.Nodes[2].Size, g.Nodes[3].Size})
	assert.InDelta(t, 0.9812698433461821, g.Nodes[0].Color[1], 1e-15)

	wantEdges := []DocEdge{
		{A: 0, B: 2, W: 0},
		{A: 1, B: 3, W: 0.4073026311126525},
		{A: 2, B: 3, W: 0},
		{A: 1, B: 2, W: 0},
		{A: 0, B: 3, W: 0},
	}
	require.Len(t, g.Edges, len(wantEdges))
	for i, e := range g.Edges {
		assert.Equal(t, wantEdges[i].A, e.A, "edge %d", i)
		assert.Equal(t, wantEdges[i].B, e.B, "edge %d", i)
		assert.InDelta(t, wantEdges[i].W, e.W, 1e-12, "edge %d", i)
	}
}

func TestGenerate_PageDefaults(t *testing.T) {
	g := mustGenerate(t, DefaultConfig())
	assert.Len(t, g.Nodes, 882, "900 docs saturate the 882 slots of a 6-cell lattice")
	assert.Len(t, g.Edges, 1743)
	assert.Equal(t, Point3{0.16666666666666674, 1, -1}, g.Nodes[0].Pos)
	assert.Equal(t, 0, g.Edges[0].A)
	assert.Equal(t, 646, g.Edges[0].B)
	assert.InDelta(t, 0.44840234126720846, g.Edges[0].W, 1e-12)
}

func TestGenerate_ZeroDocs(t *testing.T) {
	g := mustGenerate(t, Config{Cells: 3, Docs: 0, Seed: 5})
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)
	assert.NotEmpty(t, g.Lattice)
	assert.True(t, g.IsEmpty())

	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"nodes":[]`)
	assert.Contains(t, string(data), `"edges":[]`)
}

func TestGenerate_NegativeDocs(t *testing.T) {
	g := mustGenerate(t, Config{Cells: 2, Docs: -10, Seed: 5})
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)
	assert.Equal(t, 0, g.Config.Docs)
}

func TestGenerate_SaturatedSlots(t *testing.T) {
	g := mustGenerate(t, Config{Cells: 1, Docs: 1000, Seed: 9})
	require.Len(t, g.Nodes, 12)
	got := make(map[Point3]bool)
	for _, n := range g.Nodes {
		got[n.Pos] = true
	}
	for _, s := range EdgeSlots(1) {
		assert.True(t, got[s], "slot %v unused", s)
	}
}

func TestGenerate_SingleNode(t *testing.T) {
	g := mustGenerate(t, Config{Cells: 4, Docs: 1, Seed: 8})
	assert.Len(t, g.Nodes, 1)
	assert.Empty(t, g.Edges)
}

func TestGenerate_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
		field   string
	}{
		{"zero cells", Config{Cells: 0, Docs: 10}, ErrInvalidCells, "cells"},
		{"negative cells", Config{Cells: -2, Docs: 10}, ErrInvalidCells, "cells"},
		{"negative scale", Config{Cells: 2, Docs: 10, Scale: -1}, ErrInvalidScale, "scale"},
		{"nan scale", Config{Cells: 2, Docs: 10, Scale: math.NaN()}, ErrInvalidScale, "scale"},
		{"infinite scale", Config{Cells: 2, Docs: 10, Scale: math.Inf(1)}, ErrInvalidScale, "scale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Generate(tt.cfg)
			assert.Nil(t, g)
			require.ErrorIs(t, err, tt.wantErr)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestValidateScale(t *testing.T) {
	for _, scale := range []float64{0, 0.5, DefaultScale, 100} {
		assert.NoError(t, ValidateScale(scale), "scale %g", scale)
	}
	for _, scale := range []float64{-0.1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.ErrorIs(t, ValidateScale(scale), ErrInvalidScale, "scale %g", scale)
	}
}

func TestGenerate_SeedUsesLowBits(t *testing.T) {
	a := mustGenerate(t, Config{Cells: 4, Docs: 60, Seed: -1})
	b := mustGenerate(t, Config{Cells: 4, Docs: 60, Seed: 4294967295})
	assert.Equal(t, a.Nodes, b.Nodes)
	assert.Equal(t, a.Edges, b.Edges)
	assert.Equal(t, a.Config, b.Config)
}

func TestGenerate_DefaultScale(t *testing.T) {
	g := mustGenerate(t, Config{Cells: 2, Docs: 1, Seed: 1})
	assert.Equal(t, DefaultScale, g.Config.Scale)
	assert.Equal(t, Point3{-DefaultScale, -DefaultScale, -DefaultScale}, g.Lattice[0])
}

func TestGenerate_ScaleOnlyAffectsLattice(t *testing.T) {
	a := mustGenerate(t, Config{Cells: 3, Docs: 40, Seed: 6, Scale: 1})
	b := mustGenerate(t, Config{Cells: 3, Docs: 40, Seed: 6, Scale: 2})
	assert.Equal(t, a.Nodes, b.Nodes)
	assert.Equal(t, a.Edges, b.Edges)
	assert.Equal(t, Point3{2, 2, 2}, b.Lattice[len(b.Lattice)-1])
}

func TestWireframe_UnitSegments(t *testing.T) {
	const cells = 3
	points := Wireframe(cells, 1)
	require.Equal(t, 0, len(points)%2)
	step := 2.0 / cells
	for i := 0; i < len(points); i += 2 {
		a, b := points[i], points[i+1]
		assert.InDelta(t, step, distance(a, b), 1e-12, "segment %d", i/2)
	}
}

func TestWireframe_InvalidCells(t *testing.T) {
	assert.Empty(t, Wireframe(0, 1))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
