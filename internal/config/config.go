// Package config handles project, global, and environment configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/docgraph/internal/lattice"
	"gopkg.in/yaml.v3"
)

// Config is the effective configuration for the dg CLI and server.
type Config struct {
	Graph  GraphConfig  `yaml:"graph" json:"graph"`
	Viz    VizConfig    `yaml:"viz" json:"viz"`
	Server ServerConfig `yaml:"server" json:"server"`
}

// GraphConfig holds generator parameters.
type GraphConfig struct {
	Cells int     `yaml:"cells" json:"cells"`
	Docs  int     `yaml:"docs" json:"docs"`
	Seed  int64   `yaml:"seed" json:"seed"`
	Scale float64 `yaml:"scale" json:"scale"` // Lattice display scale
}

// VizConfig holds display defaults for the visualization page.
type VizConfig struct {
	EdgeThreshold float64 `yaml:"edge_threshold" json:"edge_threshold"`
	ShowEdges     bool    `yaml:"show_edges" json:"show_edges"`
	ShowLattice   bool    `yaml:"show_lattice" json:"show_lattice"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr           string   `yaml:"addr" json:"addr"`
	RateLimit      float64  `yaml:"rate_limit" json:"rate_limit"` // Requests per second; 0 disables throttling
	Burst          int      `yaml:"burst" json:"burst"`
	CacheSize      int      `yaml:"cache_size" json:"cache_size"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty" json:"allowed_origins,omitempty"`
}

const (
	// ProjectFile is the per-project config file name.
	ProjectFile = "docgraph.yml"
)

// ErrProjectConfigNotFound is returned when no docgraph.yml exists in the
// start directory or any parent.
var ErrProjectConfigNotFound = errors.New("no docgraph.yml found")

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Graph: GraphConfig{
			Cells: lattice.DefaultCells,
			Docs:  lattice.DefaultDocs,
			Seed:  lattice.DefaultSeed,
			Scale: lattice.DefaultScale,
		},
		Viz: VizConfig{
			EdgeThreshold: lattice.DefaultEdgeThreshold,
			ShowEdges:     true,
			ShowLattice:   false,
		},
		Server: ServerConfig{
			Addr:      ":8080",
			RateLimit: 20,
			Burst:     40,
			CacheSize: lattice.DefaultCacheSize,
		},
	}
}

// Lattice returns the generator config.
func (c *Config) Lattice() lattice.Config {
	return lattice.Config{
		Cells: c.Graph.Cells,
		Docs:  c.Graph.Docs,
		Seed:  c.Graph.Seed,
		Scale: c.Graph.Scale,
	}
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if c.Graph.Cells < 1 {
		return fmt.Errorf("graph.cells must be at least 1, got %d", c.Graph.Cells)
	}
	if c.Graph.Docs < 0 {
		return fmt.Errorf("graph.docs must not be negative, got %d", c.Graph.Docs)
	}
	if err := lattice.ValidateScale(c.Graph.Scale); err != nil {
		return fmt.Errorf("graph.scale must be a finite non-negative number, got %g", c.Graph.Scale)
	}
	if !lattice.ValidThreshold(c.Viz.EdgeThreshold) {
		return fmt.Errorf("viz.edge_threshold must be between 0 and 1, got %g", c.Viz.EdgeThreshold)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative, got %g", c.Server.RateLimit)
	}
	if c.Server.Burst < 0 {
		return fmt.Errorf("server.burst must not be negative, got %d", c.Server.Burst)
	}
	if c.Server.CacheSize < 0 {
		return fmt.Errorf("server.cache_size must not be negative, got %d", c.Server.CacheSize)
	}
	return nil
}

// LoadFile overlays the YAML file at path onto c. Keys missing from the file
// keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// Save writes c as YAML to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// FindProjectConfig walks up from start looking for docgraph.yml.
func FindProjectConfig(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		candidate := filepath.Join(abs, ProjectFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrProjectConfigNotFound
		}
		abs = parent
	}
}

// Sources records which files contributed to a loaded Config.
type Sources struct {
	Global  string `json:"global,omitempty"`
	Project string `json:"project,omitempty"`
}

// Load builds the effective configuration: defaults, then the global config,
// then the project config, then environment variables. If explicit is
// non-empty it names the project config instead of searching from start.
func Load(start, explicit string) (*Config, Sources, error) {
	cfg := Default()
	var src Sources

	if path := GlobalConfigPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cfg.LoadFile(path); err != nil {
				return nil, src, err
			}
			src.Global = path
		}
	}

	projectPath := ExpandPath(explicit)
	if projectPath == "" {
		found, err := FindProjectConfig(start)
		if err != nil && !errors.Is(err, ErrProjectConfigNotFound) {
			return nil, src, err
		}
		projectPath = found
	}
	if projectPath != "" {
		if err := cfg.LoadFile(projectPath); err != nil {
			return nil, src, err
		}
		src.Project = projectPath
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, src, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, src, err
	}
	return cfg, src, nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
