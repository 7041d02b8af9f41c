package viz

import (
	"encoding/json"
	"testing"
)

func TestToCytoscape(t *testing.T) {
	g := smallGraph(t)
	elements := ToCytoscape(g, 0.35)

	if len(elements.Nodes) != len(g.Nodes) {
		t.Fatalf("nodes = %d, want %d", len(elements.Nodes), len(g.Nodes))
	}
	if len(elements.Edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(elements.Edges))
	}

	// Node 0 sits at (-0.5, 1, -1).
	n := elements.Nodes[0]
	if n.Data.ID != g.Nodes[0].ID {
		t.Errorf("node id = %q, want %q", n.Data.ID, g.Nodes[0].ID)
	}
	if n.Position.X != -200 || n.Position.Y != -400 {
		t.Errorf("position = (%g, %g), want (-200, -400)", n.Position.X, n.Position.Y)
	}
	if n.Data.Z != -1 {
		t.Errorf("z = %g, want -1", n.Data.Z)
	}

	e := elements.Edges[0].Data
	if e.Source != g.Nodes[1].ID || e.Target != g.Nodes[3].ID {
		t.Errorf("edge = %s -> %s, want %s -> %s", e.Source, e.Target, g.Nodes[1].ID, g.Nodes[3].ID)
	}
	if e.ID != e.Source+"-"+e.Target {
		t.Errorf("edge id = %q", e.ID)
	}
}

func TestToCytoscapeJSON(t *testing.T) {
	g := smallGraph(t)
	out, err := ToCytoscapeJSON(g, 0)
	if err != nil {
		t.Fatalf("ToCytoscapeJSON() error = %v", err)
	}

	var decoded CytoscapeElements
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Edges) != len(g.Edges) {
		t.Errorf("edges = %d, want %d", len(decoded.Edges), len(g.Edges))
	}
}
