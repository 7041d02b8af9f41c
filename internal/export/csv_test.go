package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/matsen/docgraph/internal/lattice"
)

func sampleGraph() *lattice.Graph {
	return &lattice.Graph{
		Nodes: []lattice.DocNode{
			{ID: "DOC-0", Label: "Paper 0", Pos: lattice.Point3{-0.5, 1, -1}, Size: 0.05, Color: lattice.RGB{1, 0.5, 0.25}},
			{ID: "DOC-1", Label: "Paper 1", Pos: lattice.Point3{0, 0.5, 0}, Size: 0.1, Color: lattice.RGB{0, 0, 1}},
			{ID: "DOC-2", Label: "Paper 2", Pos: lattice.Point3{1, 0, 0.5}, Size: 0.15, Color: lattice.RGB{0.2, 0.4, 0.6}},
		},
		Edges: []lattice.DocEdge{
			{A: 0, B: 1, W: 0.8},
			{A: 1, B: 2, W: 0.1},
		},
	}
}

func readAll(t *testing.T, s string) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(s)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	return records
}

func TestWriteNodesCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteNodesCSV(&buf, sampleGraph().Nodes); err != nil {
		t.Fatalf("WriteNodesCSV() error = %v", err)
	}

	records := readAll(t, buf.String())
	if len(records) != 4 {
		t.Fatalf("rows = %d, want 4", len(records))
	}
	if strings.Join(records[0], ",") != "index,id,label,cluster,x,y,z,size,r,g,b" {
		t.Errorf("header = %v", records[0])
	}

	want := "0,DOC-0,Paper 0,0,-0.5,1,-1,0.05,1,0.5,0.25"
	if got := strings.Join(records[1], ","); got != want {
		t.Errorf("row 0 = %q, want %q", got, want)
	}
}

func TestWriteNodesCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteNodesCSV(&buf, nil); err != nil {
		t.Fatalf("WriteNodesCSV() error = %v", err)
	}
	if records := readAll(t, buf.String()); len(records) != 1 {
		t.Errorf("rows = %d, want header only", len(records))
	}
}

func TestWriteEdgesCSV(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		wantRows  []string
	}{
		{
			name:      "all edges",
			threshold: 0,
			wantRows:  []string{"0,1,DOC-0,DOC-1,0.8", "1,2,DOC-1,DOC-2,0.1"},
		},
		{
			name:      "light edges filtered",
			threshold: 0.35,
			wantRows:  []string{"0,1,DOC-0,DOC-1,0.8"},
		},
		{
			name:      "threshold is inclusive",
			threshold: 0.8,
			wantRows:  []string{"0,1,DOC-0,DOC-1,0.8"},
		},
		{
			name:      "nothing visible",
			threshold: 1,
			wantRows:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteEdgesCSV(&buf, sampleGraph(), tt.threshold); err != nil {
				t.Fatalf("WriteEdgesCSV() error = %v", err)
			}

			records := readAll(t, buf.String())
			if strings.Join(records[0], ",") != "a,b,source_id,target_id,w" {
				t.Errorf("header = %v", records[0])
			}
			if len(records)-1 != len(tt.wantRows) {
				t.Fatalf("rows = %d, want %d", len(records)-1, len(tt.wantRows))
			}
			for i, want := range tt.wantRows {
				if got := strings.Join(records[i+1], ","); got != want {
					t.Errorf("row %d = %q, want %q", i, got, want)
				}
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteCSV_WriterError(t *testing.T) {
	if err := WriteNodesCSV(failingWriter{}, sampleGraph().Nodes); err == nil {
		t.Error("WriteNodesCSV() should report writer errors")
	}
	if err := WriteEdgesCSV(failingWriter{}, sampleGraph(), 0); err == nil {
		t.Error("WriteEdgesCSV() should report writer errors")
	}
}
