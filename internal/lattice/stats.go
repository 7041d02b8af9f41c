package lattice

import (
	"fmt"
	"sort"
)

// DefaultEdgeThreshold is the minimum weight of an edge shown by default.
const DefaultEdgeThreshold = 0.35

// DefaultNeighborLimit is how many connections TopNeighbors returns by default.
const DefaultNeighborLimit = 8

// Neighbor is one connection of a node, seen from that node.
type Neighbor struct {
	Index  int     `json:"index"`
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

// SizeHistogram counts nodes per size tier.
type SizeHistogram struct {
	Small  int `json:"small"`
	Medium int `json:"medium"`
	Large  int `json:"large"`
}

// Total returns the number of nodes counted.
func (h SizeHistogram) Total() int {
	return h.Small + h.Medium + h.Large
}

// DegreeSummary describes how many edges touch each node.
type DegreeSummary struct {
	Min      int     `json:"min"`
	Max      int     `json:"max"`
	Mean     float64 `json:"mean"`
	Isolated int     `json:"isolated"` // Nodes with no edges
}

// Stats is the summary shown next to the graph.
type Stats struct {
	Config        Config        `json:"config"`
	Documents     int           `json:"documents"`
	Edges         int           `json:"edges"`
	VisibleEdges  int           `json:"visible_edges"`
	AverageWeight float64       `json:"average_weight"` // Over visible edges
	Threshold     float64       `json:"threshold"`
	Sizes         SizeHistogram `json:"sizes"`
	Degrees       DegreeSummary `json:"degrees"`
}

// ComputeStats summarizes g with edges below threshold hidden.
func ComputeStats(g *Graph, threshold float64) Stats {
	visible := VisibleEdges(g.Edges, threshold)
	return Stats{
		Config:        g.Config,
		Documents:     len(g.Nodes),
		Edges:         len(g.Edges),
		VisibleEdges:  len(visible),
		AverageWeight: AverageWeight(visible),
		Threshold:     threshold,
		Sizes:         SizeTiers(g.Nodes),
		Degrees:       Degrees(g),
	}
}

// ValidThreshold reports whether t is a usable edge threshold: a finite
// weight in [0,1].
func ValidThreshold(t float64) bool {
	return t >= 0 && t <= 1
}

// VisibleEdges returns the edges with weight at least threshold.
func VisibleEdges(edges []DocEdge, threshold float64) []DocEdge {
	visible := make([]DocEdge, 0, len(edges))
	for _, e := range edges {
		if e.W >= threshold {
			visible = append(visible, e)
		}
	}
	return visible
}

// AverageWeight returns the mean edge weight, or 0 for no edges.
func AverageWeight(edges []DocEdge) float64 {
	if len(edges) == 0 {
		return 0
	}
	var sum float64
	for _, e := range edges {
		sum += e.W
	}
	return sum / float64(len(edges))
}

// TopNeighbors returns the strongest connections of the node at index,
// heaviest first. A non-positive limit means DefaultNeighborLimit.
func TopNeighbors(g *Graph, index, limit int) ([]Neighbor, error) {
	if index < 0 || index >= len(g.Nodes) {
		return nil, fmt.Errorf("%w: %d (graph has %d nodes)", ErrNodeIndex, index, len(g.Nodes))
	}
	if limit <= 0 {
		limit = DefaultNeighborLimit
	}

	neighbors := []Neighbor{}
	for _, e := range g.Edges {
		var other int
		switch index {
		case e.A:
			other = e.B
		case e.B:
			other = e.A
		default:
			continue
		}
		n := g.Nodes[other]
		neighbors = append(neighbors, Neighbor{Index: other, ID: n.ID, Label: n.Label, Weight: e.W})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		if neighbors[i].Weight != neighbors[j].Weight {
			return neighbors[i].Weight > neighbors[j].Weight
		}
		return neighbors[i].Index < neighbors[j].Index
	})

	if len(neighbors) > limit {
		neighbors = neighbors[:limit]
	}
	return neighbors, nil
}

// SizeTiers counts nodes per size tier.
func SizeTiers(nodes []DocNode) SizeHistogram {
	var h SizeHistogram
	for _, n := range nodes {
		switch n.Size {
		case SizeSmall:
			h.Small++
		case SizeMedium:
			h.Medium++
		default:
			h.Large++
		}
	}
	return h
}

// Degrees computes the degree summary of g.
func Degrees(g *Graph) DegreeSummary {
	if len(g.Nodes) == 0 {
		return DegreeSummary{}
	}

	degree := make([]int, len(g.Nodes))
	for _, e := range g.Edges {
		degree[e.A]++
		degree[e.B]++
	}

	s := DegreeSummary{Min: degree[0], Max: degree[0]}
	for _, d := range degree {
		s.Min = min(s.Min, d)
		s.Max = max(s.Max, d)
		if d == 0 {
			s.Isolated++
		}
	}
	s.Mean = float64(2*len(g.Edges)) / float64(len(g.Nodes))
	return s
}
