package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/docgraph/internal/lattice"
)

var (
	latticeCells int
	latticeScale float64
)

func init() {
	latticeCmd.Flags().IntVar(&latticeCells, "cells", lattice.DefaultCells, "Lattice cells per axis")
	latticeCmd.Flags().Float64Var(&latticeScale, "scale", lattice.DefaultScale, "Wireframe scale")
	rootCmd.AddCommand(latticeCmd)

	slotsCmd.Flags().IntVar(&latticeCells, "cells", lattice.DefaultCells, "Lattice cells per axis")
	rootCmd.AddCommand(slotsCmd)
}

var latticeCmd = &cobra.Command{
	Use:   "lattice",
	Short: "Print the lattice wireframe",
	Long: `Print the grid lines of the cube as segment endpoints. Consecutive
points form one unit segment.`,
	Args: cobra.NoArgs,
	RunE: runLattice,
}

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Print every edge-midpoint slot",
	Long: `Print the midpoints of every unit edge of the lattice, the positions
documents can occupy, in x, y, z family order.`,
	Args: cobra.NoArgs,
	RunE: runSlots,
}

// PointsResult is the JSON response for dg lattice and dg slots.
type PointsResult struct {
	Cells  int              `json:"cells"`
	Scale  float64          `json:"scale,omitempty"`
	Count  int              `json:"count"`
	Points []lattice.Point3 `json:"points"`
}

// cellsAndScale resolves the cells and scale flags against config.
func cellsAndScale(cmd *cobra.Command) (int, float64) {
	cfg, _ := mustLoadConfig()
	cells, scale := cfg.Graph.Cells, cfg.Graph.Scale
	if cmd.Flags().Changed("cells") {
		cells = latticeCells
	}
	if cmd.Flags().Changed("scale") {
		scale = latticeScale
	}
	if cells < 1 {
		exitWithError(ExitConfigError, "cells must be at least 1, got %d", cells)
	}
	if err := lattice.ValidateScale(scale); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if scale == 0 {
		scale = lattice.DefaultScale
	}
	return cells, scale
}

func runLattice(cmd *cobra.Command, args []string) error {
	cells, scale := cellsAndScale(cmd)
	points := lattice.Wireframe(cells, scale)

	if humanOutput {
		headingColor.Println("Lattice wireframe")
		printField("cells", cells)
		printField("scale", scale)
		printField("segments", len(points)/2)
		printField("points", len(points))
		return nil
	}
	return outputJSON(PointsResult{Cells: cells, Scale: scale, Count: len(points), Points: points})
}

func runSlots(cmd *cobra.Command, args []string) error {
	cells, _ := cellsAndScale(cmd)
	slots := lattice.EdgeSlots(cells)

	if humanOutput {
		headingColor.Println("Lattice slots")
		printField("cells", cells)
		printField("slots", len(slots))
		return nil
	}
	return outputJSON(PointsResult{Cells: cells, Count: len(slots), Points: slots})
}
