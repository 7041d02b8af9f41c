package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/docgraph/internal/lattice"
	"github.com/matsen/docgraph/internal/viz"
)

var (
	vizFlags       graphFlags
	vizOutput      string
	vizThreshold   float64
	vizShowLattice bool
	vizHideEdges   bool
)

func init() {
	vizFlags.register(vizCmd)
	vizCmd.Flags().StringVarP(&vizOutput, "output", "o", "", "Output file path (default: stdout)")
	vizCmd.Flags().Float64VarP(&vizThreshold, "threshold", "t", lattice.DefaultEdgeThreshold, "Minimum weight of a drawn edge")
	vizCmd.Flags().BoolVar(&vizShowLattice, "show-lattice", false, "Draw the lattice wireframe")
	vizCmd.Flags().BoolVar(&vizHideEdges, "hide-edges", false, "Draw nodes only")
	rootCmd.AddCommand(vizCmd)
}

var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Generate graph visualization",
	Long: `Generate an interactive three.js page showing the document graph.

Nodes are drawn as points in their palette colors. Edges at or above the
threshold are drawn as faint lines. Hovering or clicking a node lists its
strongest visible connections next to the sidebar statistics.

Examples:
  # Generate HTML to stdout
  dg viz > graph.html

  # Generate to file with the lattice drawn
  dg viz --show-lattice --output graph.html

  # Only heavy edges
  dg viz --threshold 0.6 -o graph.html`,
	Args: cobra.NoArgs,
	RunE: runViz,
}

func runViz(cmd *cobra.Command, args []string) error {
	g, cfg := mustGenerate(cmd, &vizFlags)

	// Generate HTML (validates options internally)
	opts := viz.HTMLOptions{
		EdgeThreshold: thresholdFor(cmd, vizThreshold, cfg),
		ShowEdges:     cfg.Viz.ShowEdges,
		ShowLattice:   cfg.Viz.ShowLattice,
	}
	if cmd.Flags().Changed("hide-edges") {
		opts.ShowEdges = !vizHideEdges
	}
	if cmd.Flags().Changed("show-lattice") {
		opts.ShowLattice = vizShowLattice
	}

	html, err := viz.GenerateHTML(g, opts)
	if err != nil {
		exitWithError(ExitConfigError, "generating HTML: %v", err)
	}

	w, err := openOutput(vizOutput)
	if err != nil {
		return err
	}
	defer w.Close()

	if _, err := fmt.Fprint(w, html); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	reportOutput(vizOutput, "Visualization")
	return nil
}
