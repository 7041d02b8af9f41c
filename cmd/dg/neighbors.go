package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matsen/docgraph/internal/lattice"
)

var (
	neighborsFlags graphFlags
	neighborsLimit int
)

func init() {
	neighborsFlags.register(neighborsCmd)
	neighborsCmd.Flags().IntVarP(&neighborsLimit, "limit", "n", lattice.DefaultNeighborLimit, "Maximum neighbors to show")
	rootCmd.AddCommand(neighborsCmd)
}

var neighborsCmd = &cobra.Command{
	Use:   "neighbors <index>",
	Short: "Show the strongest connections of a node",
	Long: `Show the connections of the node at index, heaviest edge first.

Examples:
  dg neighbors 0
  dg neighbors 42 --limit 3 --human`,
	Args: cobra.ExactArgs(1),
	RunE: runNeighbors,
}

// NeighborsResult is the JSON response for dg neighbors.
type NeighborsResult struct {
	Node      lattice.DocNode    `json:"node"`
	Neighbors []lattice.Neighbor `json:"neighbors"`
}

func runNeighbors(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		exitWithError(ExitError, "index must be an integer, got %q", args[0])
	}

	g, _ := mustGenerate(cmd, &neighborsFlags)

	neighbors, err := lattice.TopNeighbors(g, index, neighborsLimit)
	if errors.Is(err, lattice.ErrNodeIndex) {
		exitWithError(ExitDataError, "%v", err)
	}
	if err != nil {
		return err
	}

	node := g.Nodes[index]
	if !humanOutput {
		return outputJSON(NeighborsResult{Node: node, Neighbors: neighbors})
	}

	headingColor.Printf("%s ", node.Label)
	subtleColor.Printf("(%s, size %.2f)\n", node.ID, node.Size)
	rows := make([][]string, 0, len(neighbors))
	for _, n := range neighbors {
		rows = append(rows, []string{strconv.Itoa(n.Index), n.ID, n.Label, fmt.Sprintf("%.3f", n.Weight)})
	}
	printTable([]string{"INDEX", "ID", "LABEL", "WEIGHT"}, rows)
	return nil
}
