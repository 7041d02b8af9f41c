package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotCount(t *testing.T) {
	tests := []struct {
		cells int
		want  int
	}{
		{-1, 0},
		{0, 0},
		{1, 12},
		{2, 54},
		{6, 882},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SlotCount(tt.cells), "cells=%d", tt.cells)
		assert.Len(t, EdgeSlots(tt.cells), tt.want, "cells=%d", tt.cells)
	}
}

func TestEdgeSlots_Order(t *testing.T) {
	slots := EdgeSlots(2)

	// First x-parallel edge at grid (0.5, 0, 0).
	assert.Equal(t, Point3{-0.5, -1, -1}, slots[0])
	// First y-parallel edge at grid (0, 0.5, 0), after 2*3*3 x-edges.
	assert.Equal(t, Point3{-1, -0.5, -1}, slots[18])
	// First z-parallel edge at grid (0, 0, 0.5).
	assert.Equal(t, Point3{-1, -1, -0.5}, slots[36])
	// Last slot at grid (2, 2, 1.5).
	assert.Equal(t, Point3{1, 1, 0.5}, slots[53])
}

func TestEdgeSlots_Unique(t *testing.T) {
	slots := EdgeSlots(4)
	seen := make(map[Point3]bool, len(slots))
	for _, s := range slots {
		require.False(t, seen[s], "duplicate slot %v", s)
		seen[s] = true
		for _, v := range s {
			require.GreaterOrEqual(t, v, -1.0)
			require.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestEdgeSlots_MidpointOnOneAxis(t *testing.T) {
	// Exactly one coordinate of every slot sits halfway between grid lines.
	const cells = 3
	for _, s := range EdgeSlots(cells) {
		half := 0
		for _, v := range s {
			grid := (v + 1) / 2 * cells
			if frac := grid - float64(int(grid+1e-9)); frac > 0.25 {
				half++
			}
		}
		require.Equal(t, 1, half, "slot %v", s)
	}
}

func TestBucketIndex_Bin(t *testing.T) {
	idx := &bucketIndex{cells: 6}
	assert.Equal(t, 0, idx.bin(-1))
	assert.Equal(t, 3, idx.bin(0))
	assert.Equal(t, 6, idx.bin(1), "upper boundary maps to its own bin")
}

func TestBucketIndex_CandidatesIncludeSelf(t *testing.T) {
	nodes := []DocNode{
		{Pos: Point3{-1, -1, -0.5}},
		{Pos: Point3{1, 1, 0.5}},
	}
	idx := newBucketIndex(nodes, 6)
	assert.Equal(t, []int{0}, idx.candidates(nodes[0].Pos))
	assert.Equal(t, []int{1}, idx.candidates(nodes[1].Pos))
}
