// Package main provides the dg CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/docgraph/internal/config"
	"github.com/matsen/docgraph/internal/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	verbose     bool
	configPath  string

	logger = zap.NewNop()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dg",
	Short: "Deterministic document lattice generator",
	Long: `dg generates synthetic document graphs laid out on the edges of a cubic
lattice. The same cells, docs, and seed always produce the same graph.

Core features:
  - Graph generation with spatially local weighted edges
  - Sidebar statistics and per-node neighbor lookups
  - CSV and Cytoscape export, SQL queries over an in-memory index
  - A three.js visualization page and an HTTP API

Parameters come from docgraph.yml, DOCGRAPH_* environment variables, and
command flags. All commands output JSON by default for scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadDotEnv()
		logger = logging.New(verbose)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Project config file (default: search for docgraph.yml)")
	rootCmd.Version = Version
}

// mustLoadConfig loads the effective configuration, exits on error.
func mustLoadConfig() (*config.Config, config.Sources) {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	cfg, src, err := config.Load(cwd, configPath)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	logger.Debug("config loaded",
		zap.String("global", src.Global),
		zap.String("project", src.Project),
	)
	return cfg, src
}
