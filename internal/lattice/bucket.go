package lattice

import "math"

// bucketKey is an integer grid cell.
type bucketKey struct {
	X, Y, Z int
}

// bucketIndex groups node indices by grid cell so neighbor search only looks
// at the 27 cells around a node.
type bucketIndex struct {
	cells   int
	buckets map[bucketKey][]int
}

// newBucketIndex buckets nodes in node order.
func newBucketIndex(nodes []DocNode, cells int) *bucketIndex {
	idx := &bucketIndex{
		cells:   cells,
		buckets: make(map[bucketKey][]int),
	}
	for i, n := range nodes {
		key := idx.keyFor(n.Pos)
		idx.buckets[key] = append(idx.buckets[key], i)
	}
	return idx
}

// bin inverts normalization back to an integer grid coordinate.
func (b *bucketIndex) bin(v float64) int {
	return int(math.Floor(((v + 1) / 2) * float64(b.cells)))
}

func (b *bucketIndex) keyFor(p Point3) bucketKey {
	return bucketKey{X: b.bin(p[0]), Y: b.bin(p[1]), Z: b.bin(p[2])}
}

// candidates concatenates the buckets of the 3×3×3 block around p. The
// result includes the querying node itself.
func (b *bucketIndex) candidates(p Point3) []int {
	center := b.keyFor(p)
	var cand []int
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				key := bucketKey{X: center.X + dx, Y: center.Y + dy, Z: center.Z + dz}
				cand = append(cand, b.buckets[key]...)
			}
		}
	}
	return cand
}
