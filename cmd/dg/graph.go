package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/docgraph/internal/config"
	"github.com/matsen/docgraph/internal/lattice"
)

// graphFlags are the generator parameters shared by graph commands.
// Flags left unset fall back to the loaded config.
type graphFlags struct {
	cells int
	docs  int
	seed  int64
	scale float64
}

func (f *graphFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.cells, "cells", lattice.DefaultCells, "Lattice cells per axis")
	cmd.Flags().IntVar(&f.docs, "docs", lattice.DefaultDocs, "Number of documents to place")
	cmd.Flags().Int64Var(&f.seed, "seed", lattice.DefaultSeed, "Random seed")
	cmd.Flags().Float64Var(&f.scale, "scale", lattice.DefaultScale, "Lattice wireframe scale")
}

// resolve overlays explicitly set flags onto the configured parameters.
func (f *graphFlags) resolve(cmd *cobra.Command, cfg *config.Config) lattice.Config {
	lc := cfg.Lattice()
	if cmd.Flags().Changed("cells") {
		lc.Cells = f.cells
	}
	if cmd.Flags().Changed("docs") {
		lc.Docs = f.docs
	}
	if cmd.Flags().Changed("seed") {
		lc.Seed = f.seed
	}
	if cmd.Flags().Changed("scale") {
		lc.Scale = f.scale
	}
	return lc
}

// mustGenerate loads config, applies flags, and generates the graph,
// exits on error.
func mustGenerate(cmd *cobra.Command, f *graphFlags) (*lattice.Graph, *config.Config) {
	cfg, _ := mustLoadConfig()
	lc := f.resolve(cmd, cfg)

	start := time.Now()
	g, err := lattice.Generate(lc)
	if err != nil {
		var cfgErr *lattice.ConfigError
		if errors.As(err, &cfgErr) {
			exitWithError(ExitConfigError, "%v", err)
		}
		exitWithError(ExitError, "generating graph: %v", err)
	}

	logger.Debug("graph generated",
		zap.Int("cells", g.Config.Cells),
		zap.Int("docs", g.Config.Docs),
		zap.Int64("seed", g.Config.Seed),
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("edges", len(g.Edges)),
		zap.Duration("duration", time.Since(start)),
	)
	return g, cfg
}

// thresholdFor returns the flag value when set, otherwise the configured one.
func thresholdFor(cmd *cobra.Command, flag float64, cfg *config.Config) float64 {
	if cmd.Flags().Changed("threshold") {
		return flag
	}
	return cfg.Viz.EdgeThreshold
}

// mustValidThreshold exits unless t is a weight in [0,1].
func mustValidThreshold(t float64) {
	if !lattice.ValidThreshold(t) {
		exitWithError(ExitConfigError, "threshold must be between 0 and 1, got %g", t)
	}
}
