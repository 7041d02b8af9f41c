package main

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/docgraph/internal/query"
)

// QueryCellMaxLen bounds cell width in table output.
const QueryCellMaxLen = 40

var (
	queryFlags graphFlags
	queryCSV   bool
	queryJSONL bool
)

func init() {
	queryFlags.register(queryCmd)
	queryCmd.Flags().BoolVar(&queryCSV, "csv", false, "Output CSV")
	queryCmd.Flags().BoolVar(&queryJSONL, "jsonl", false, "Output JSONL")
	queryCmd.MarkFlagsMutuallyExclusive("csv", "jsonl")
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Query the graph using SQL",
	Long: `Execute a read-only SQL query against the generated graph, loaded into
an in-memory SQLite database.

Tables:
  nodes(idx, id, label, cluster, x, y, z, size, r, g, b)
  edges(a, b, w)    a and b reference nodes.idx

Examples:
  # Size tiers
  dg query "SELECT size, COUNT(*) FROM nodes GROUP BY size"

  # Heaviest edges with labels
  dg query "SELECT s.label, t.label, e.w FROM edges e
            JOIN nodes s ON s.idx = e.a JOIN nodes t ON t.idx = e.b
            ORDER BY e.w DESC LIMIT 5" --human

  # Output formats
  dg query "SELECT * FROM edges" --csv
  dg query "SELECT * FROM edges" --jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	g, _ := mustGenerate(cmd, &queryFlags)

	db, err := query.Open(g)
	if err != nil {
		exitWithError(ExitError, "loading graph: %v", err)
	}
	defer db.Close()

	result, err := db.Query(args[0])
	if err != nil {
		exitWithError(ExitDataError, "SQL error: %v", err)
	}

	switch {
	case queryCSV:
		return outputCSV(result)
	case queryJSONL:
		return outputJSONL(result)
	case humanOutput:
		outputTable(result)
		return nil
	default:
		return outputJSON(result)
	}
}

// outputCSV writes a result as CSV with a header row.
func outputCSV(result *query.Result) error {
	w := csv.NewWriter(os.Stdout)
	w.Write(result.Columns)
	for _, row := range result.Rows {
		w.Write(formatRow(row))
	}
	w.Flush()
	return w.Error()
}

// outputJSONL writes one JSON object per row.
func outputJSONL(result *query.Result) error {
	for _, row := range result.Rows {
		record := make(map[string]any, len(result.Columns))
		for i, col := range result.Columns {
			record[col] = row[i]
		}
		if err := outputJSONCompact(record); err != nil {
			return err
		}
	}
	return nil
}

// outputTable writes a result as an aligned table.
func outputTable(result *query.Result) {
	rows := make([][]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		cells := formatRow(row)
		for i := range cells {
			cells[i] = truncateString(cells[i], QueryCellMaxLen)
		}
		rows = append(rows, cells)
	}
	printTable(result.Columns, rows)
	subtleColor.Printf("  %d row(s)\n", len(result.Rows))
}

func formatRow(row []any) []string {
	cells := make([]string, len(row))
	for i, v := range row {
		if v == nil {
			cells[i] = ""
			continue
		}
		cells[i] = fmt.Sprintf("%v", v)
	}
	return cells
}
