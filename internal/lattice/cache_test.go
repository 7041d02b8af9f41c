package lattice

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_HitReturnsSameGraph(t *testing.T) {
	c := NewCache(4)
	cfg := Config{Cells: 3, Docs: 50, Seed: 1}

	first, hit, err := c.Get(cfg)
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := c.Get(cfg)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Same(t, first, second)

	hits, misses := c.Counts()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestCache_KeyIsNormalized(t *testing.T) {
	c := NewCache(4)
	_, _, err := c.Get(Config{Cells: 3, Docs: 10, Seed: 1})
	require.NoError(t, err)

	// Zero scale and explicit default scale describe the same graph.
	_, hit, err := c.Get(Config{Cells: 3, Docs: 10, Seed: 1, Scale: DefaultScale})
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestCache_SeedsSharingLowBits(t *testing.T) {
	c := NewCache(4)
	first, _, err := c.Get(Config{Cells: 2, Docs: 4, Seed: -1})
	require.NoError(t, err)

	second, hit, err := c.Get(Config{Cells: 2, Docs: 4, Seed: 4294967295})
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Same(t, first, second)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, int64(4294967295), second.Config.Seed)
}

func TestCache_EvictsOldest(t *testing.T) {
	c := NewCache(2)
	for seed := int64(1); seed <= 3; seed++ {
		_, _, err := c.Get(Config{Cells: 2, Docs: 5, Seed: seed})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, c.Len())

	_, hit, err := c.Get(Config{Cells: 2, Docs: 5, Seed: 1})
	require.NoError(t, err)
	assert.False(t, hit, "seed 1 should have been evicted")

	_, hit, err = c.Get(Config{Cells: 2, Docs: 5, Seed: 3})
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestCache_InvalidConfig(t *testing.T) {
	c := NewCache(0)
	_, _, err := c.Get(Config{Cells: 0})
	assert.ErrorIs(t, err, ErrInvalidCells)
	_, _, err = c.Get(Config{Cells: 1, Scale: math.Inf(1)})
	assert.ErrorIs(t, err, ErrInvalidScale)
	assert.Equal(t, 0, c.Len())
}

func TestCache_Concurrent(t *testing.T) {
	c := NewCache(8)
	cfg := Config{Cells: 4, Docs: 100, Seed: 77}
	want, err := Generate(cfg)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, _, err := c.Get(cfg)
			assert.NoError(t, err)
			assert.Equal(t, want.Edges, g.Edges)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, c.Len())
}
