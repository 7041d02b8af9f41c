package server

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matsen/docgraph/internal/config"
	"github.com/matsen/docgraph/internal/lattice"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their query parameter name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("query")
	})
	return v
}

// graphParams is the query string accepted by the graph endpoints.
type graphParams struct {
	Cells       int     `query:"cells" validate:"min=1,max=32"`
	Docs        int     `query:"docs" validate:"min=0,max=200000"`
	Seed        int64   `query:"seed"`
	Scale       float64 `query:"scale" validate:"min=0"`
	Threshold   float64 `query:"threshold" validate:"min=0,max=1"`
	Limit       int     `query:"limit" validate:"min=1,max=100"`
	ShowEdges   bool    `query:"show_edges"`
	ShowLattice bool    `query:"show_lattice"`
}

func (p graphParams) lattice() lattice.Config {
	return lattice.Config{Cells: p.Cells, Docs: p.Docs, Seed: p.Seed, Scale: p.Scale}
}

// parseGraphParams reads q over the configured defaults and validates the
// result.
func parseGraphParams(q url.Values, cfg *config.Config) (graphParams, error) {
	p := graphParams{
		Cells:       cfg.Graph.Cells,
		Docs:        cfg.Graph.Docs,
		Seed:        cfg.Graph.Seed,
		Scale:       cfg.Graph.Scale,
		Threshold:   cfg.Viz.EdgeThreshold,
		Limit:       lattice.DefaultNeighborLimit,
		ShowEdges:   cfg.Viz.ShowEdges,
		ShowLattice: cfg.Viz.ShowLattice,
	}

	var err error
	if p.Cells, err = intParam(q, "cells", p.Cells); err != nil {
		return p, err
	}
	if p.Docs, err = intParam(q, "docs", p.Docs); err != nil {
		return p, err
	}
	if p.Seed, err = int64Param(q, "seed", p.Seed); err != nil {
		return p, err
	}
	if p.Scale, err = floatParam(q, "scale", p.Scale); err != nil {
		return p, err
	}
	if p.Threshold, err = floatParam(q, "threshold", p.Threshold); err != nil {
		return p, err
	}
	if p.Limit, err = intParam(q, "limit", p.Limit); err != nil {
		return p, err
	}
	if p.ShowEdges, err = boolParam(q, "show_edges", p.ShowEdges); err != nil {
		return p, err
	}
	if p.ShowLattice, err = boolParam(q, "show_lattice", p.ShowLattice); err != nil {
		return p, err
	}

	if err := validate.Struct(p); err != nil {
		return p, formatValidationError(err)
	}
	return p, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	s := q.Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

func int64Param(q url.Values, name string, def int64) (int64, error) {
	s := q.Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

func floatParam(q url.Values, name string, def float64) (float64, error) {
	s := q.Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return v, nil
}

func boolParam(q url.Values, name string, def bool) (bool, error) {
	s := q.Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false", name)
	}
	return v, nil
}

// formatValidationError formats validation errors into readable messages.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, formatFieldError(e))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return err
}

// formatFieldError formats a single field validation error.
func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
