package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/matsen/docgraph/internal/lattice"
	"github.com/matsen/docgraph/internal/viz"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NeighborsResponse lists the strongest connections of one node.
type NeighborsResponse struct {
	Index     int                `json:"index"`
	Node      lattice.DocNode    `json:"node"`
	Neighbors []lattice.Neighbor `json:"neighbors"`
}

// LatticeResponse holds wireframe points, consumed pairwise.
type LatticeResponse struct {
	Cells  int              `json:"cells"`
	Scale  float64          `json:"scale"`
	Points []lattice.Point3 `json:"points"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	g, _, ok := s.graphFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	g, p, ok := s.graphFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, lattice.ComputeStats(g, p.Threshold))
}

func (s *Server) handleNeighbors(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return
	}

	g, p, ok := s.graphFor(w, r)
	if !ok {
		return
	}

	neighbors, err := lattice.TopNeighbors(g, index, p.Limit)
	if errors.Is(err, lattice.ErrNodeIndex) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, NeighborsResponse{
		Index:     index,
		Node:      g.Nodes[index],
		Neighbors: neighbors,
	})
}

func (s *Server) handleLattice(w http.ResponseWriter, r *http.Request) {
	p, err := parseGraphParams(r.URL.Query(), s.cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := lattice.ValidateScale(p.Scale); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	scale := p.Scale
	if scale == 0 {
		scale = lattice.DefaultScale
	}
	writeJSON(w, http.StatusOK, LatticeResponse{
		Cells:  p.Cells,
		Scale:  scale,
		Points: lattice.Wireframe(p.Cells, scale),
	})
}

func (s *Server) handleViz(w http.ResponseWriter, r *http.Request) {
	g, p, ok := s.graphFor(w, r)
	if !ok {
		return
	}

	html, err := viz.GenerateHTML(g, viz.HTMLOptions{
		EdgeThreshold: p.Threshold,
		ShowEdges:     p.ShowEdges,
		ShowLattice:   p.ShowLattice,
	})
	if err != nil {
		s.internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// graphFor parses the request and fetches its graph. On failure it has
// already written the response.
func (s *Server) graphFor(w http.ResponseWriter, r *http.Request) (*lattice.Graph, graphParams, bool) {
	p, err := parseGraphParams(r.URL.Query(), s.cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, p, false
	}

	g, err := s.graph(p)
	var cfgErr *lattice.ConfigError
	if errors.As(err, &cfgErr) {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, p, false
	}
	if err != nil {
		s.internalError(w, err)
		return nil, p, false
	}
	return g, p, true
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

// writeJSON marshals v before writing the header. Encode failures become a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorResponse{Error: "encoding response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
