package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/docgraph/internal/lattice"
)

var (
	statsFlags     graphFlags
	statsThreshold float64
)

func init() {
	statsFlags.register(statsCmd)
	statsCmd.Flags().Float64VarP(&statsThreshold, "threshold", "t", lattice.DefaultEdgeThreshold, "Minimum weight of a visible edge")
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show graph statistics",
	Long: `Show the statistics displayed next to the graph: document and edge
counts, edges visible at the threshold, their mean weight, node size tiers,
and degree summary.

Examples:
  dg stats
  dg stats --threshold 0.5 --human`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	g, cfg := mustGenerate(cmd, &statsFlags)
	threshold := thresholdFor(cmd, statsThreshold, cfg)
	mustValidThreshold(threshold)

	stats := lattice.ComputeStats(g, threshold)
	if !humanOutput {
		return outputJSON(stats)
	}

	headingColor.Println("Graph statistics")
	printField("documents", stats.Documents)
	printField("edges", stats.Edges)
	printField("visible edges", fmt.Sprintf("%d (w >= %.2f)", stats.VisibleEdges, stats.Threshold))
	printField("mean weight", fmt.Sprintf("%.2f", stats.AverageWeight))

	fmt.Println()
	headingColor.Println("Size tiers")
	printField("small", stats.Sizes.Small)
	printField("medium", stats.Sizes.Medium)
	printField("large", stats.Sizes.Large)

	fmt.Println()
	headingColor.Println("Degrees")
	printField("min / max", fmt.Sprintf("%d / %d", stats.Degrees.Min, stats.Degrees.Max))
	printField("mean", fmt.Sprintf("%.2f", stats.Degrees.Mean))
	printField("isolated", stats.Degrees.Isolated)
	return nil
}
