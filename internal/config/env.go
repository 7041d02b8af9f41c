package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvCells     = "DOCGRAPH_CELLS"
	EnvDocs      = "DOCGRAPH_DOCS"
	EnvSeed      = "DOCGRAPH_SEED"
	EnvScale     = "DOCGRAPH_SCALE"
	EnvThreshold = "DOCGRAPH_THRESHOLD"
	EnvAddr      = "DOCGRAPH_ADDR"
	EnvOrigins   = "DOCGRAPH_ALLOWED_ORIGINS" // Comma-separated
)

// LoadDotEnv loads .env from the working directory into the process
// environment. Variables already set are left alone; a missing file is
// not an error.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// ApplyEnv overrides c with any DOCGRAPH_* variables that lookup finds.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvCells); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvCells, err)
		}
		c.Graph.Cells = n
	}
	if v, ok := lookup(EnvDocs); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvDocs, err)
		}
		c.Graph.Docs = n
	}
	if v, ok := lookup(EnvSeed); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvSeed, err)
		}
		c.Graph.Seed = n
	}
	if v, ok := lookup(EnvScale); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvScale, err)
		}
		c.Graph.Scale = f
	}
	if v, ok := lookup(EnvThreshold); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvThreshold, err)
		}
		c.Viz.EdgeThreshold = f
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := lookup(EnvOrigins); ok && v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.AllowedOrigins = origins
	}
	return nil
}
