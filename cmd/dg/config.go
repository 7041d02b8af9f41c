package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matsen/docgraph/internal/config"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing docgraph.yml")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration after merging, in order: built-in defaults,
the global config (~/.config/docgraph/config.yml), the project docgraph.yml,
and DOCGRAPH_* environment variables (a .env file is read too).

Usage:
  dg config          # Show effective config and its sources
  dg config init     # Write docgraph.yml with defaults`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a docgraph.yml with default values",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

// ConfigResult is the JSON response for dg config.
type ConfigResult struct {
	Config  *config.Config `json:"config"`
	Sources config.Sources `json:"sources"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, src := mustLoadConfig()

	if !humanOutput {
		return outputJSON(ConfigResult{Config: cfg, Sources: src})
	}

	headingColor.Println("graph")
	printField("cells", cfg.Graph.Cells)
	printField("docs", cfg.Graph.Docs)
	printField("seed", cfg.Graph.Seed)
	printField("scale", cfg.Graph.Scale)
	headingColor.Println("viz")
	printField("edge_threshold", cfg.Viz.EdgeThreshold)
	printField("show_edges", cfg.Viz.ShowEdges)
	printField("show_lattice", cfg.Viz.ShowLattice)
	headingColor.Println("server")
	printField("addr", cfg.Server.Addr)
	printField("rate_limit", cfg.Server.RateLimit)
	printField("burst", cfg.Server.Burst)
	printField("cache_size", cfg.Server.CacheSize)
	printField("allowed_origins", cfg.Server.AllowedOrigins)
	headingColor.Println("sources")
	printField("global", orNone(src.Global))
	printField("project", orNone(src.Project))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}
	path := filepath.Join(cwd, config.ProjectFile)

	if _, err := os.Stat(path); err == nil && !configInitForce {
		exitWithError(ExitConfigError, "%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		exitWithError(ExitError, "checking %s: %v", path, err)
	}

	if err := config.Default().Save(path); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		goodColor.Printf("Wrote %s\n", path)
		return nil
	}
	return outputJSON(StatusResponse{Status: "created", Path: path})
}

func orNone(s string) string {
	if s == "" {
		return subtleColor.Sprint("(none)")
	}
	return s
}
