// Package query loads a generated graph into an in-memory SQLite database
// and runs read-only SQL against it.
package query

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/matsen/docgraph/internal/lattice"
	_ "modernc.org/sqlite"
)

// ErrNotReadOnly is returned for statements other than SELECT and WITH.
var ErrNotReadOnly = errors.New("only SELECT and WITH statements are allowed")

// DB wraps an in-memory SQLite database holding one graph.
type DB struct {
	db *sql.DB
}

// Result holds query output with columns in select order.
type Result struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Open creates an in-memory database and loads g into it.
func Open(g *lattice.Graph) (*DB, error) {
	db, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Each connection gets its own in-memory database
	db.SetMaxOpenConns(1)

	d := &DB{db: db}
	if err := d.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	if err := d.load(g); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA query_only = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("locking database: %w", err)
	}
	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) createSchema() error {
	schema := `
		CREATE TABLE nodes (
			idx INTEGER PRIMARY KEY,
			id TEXT NOT NULL,
			label TEXT NOT NULL,
			cluster INTEGER NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			z REAL NOT NULL,
			size REAL NOT NULL,
			r REAL NOT NULL,
			g REAL NOT NULL,
			b REAL NOT NULL
		);

		CREATE TABLE edges (
			a INTEGER NOT NULL,
			b INTEGER NOT NULL,
			w REAL NOT NULL,
			PRIMARY KEY (a, b)
		);

		CREATE INDEX idx_edges_b ON edges(b);
	`
	_, err := d.db.Exec(schema)
	return err
}

// load inserts every node and edge in a single transaction.
func (d *DB) load(g *lattice.Graph) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load: %w", err)
	}
	defer tx.Rollback()

	nodeStmt, err := tx.Prepare(`
		INSERT INTO nodes (idx, id, label, cluster, x, y, z, size, r, g, b)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing nodes insert: %w", err)
	}
	defer nodeStmt.Close()

	for i, n := range g.Nodes {
		_, err := nodeStmt.Exec(i, n.ID, n.Label, n.Cluster,
			n.Pos[0], n.Pos[1], n.Pos[2], n.Size,
			n.Color[0], n.Color[1], n.Color[2])
		if err != nil {
			return fmt.Errorf("inserting node %d: %w", i, err)
		}
	}

	edgeStmt, err := tx.Prepare(`INSERT INTO edges (a, b, w) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing edges insert: %w", err)
	}
	defer edgeStmt.Close()

	for _, e := range g.Edges {
		if _, err := edgeStmt.Exec(e.A, e.B, e.W); err != nil {
			return fmt.Errorf("inserting edge %d-%d: %w", e.A, e.B, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load: %w", err)
	}
	return nil
}

// Query runs a read-only statement and returns all rows.
func (d *DB) Query(stmt string) (*Result, error) {
	if !isReadOnly(stmt) {
		return nil, ErrNotReadOnly
	}

	rows, err := d.db.Query(stmt)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	return scanResult(rows)
}

// isReadOnly reports whether the first keyword, after comments, is SELECT
// or WITH.
func isReadOnly(stmt string) bool {
	s := stripLeadingComments(stmt)
	end := strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	})
	if end >= 0 {
		s = s[:end]
	}
	switch strings.ToUpper(s) {
	case "SELECT", "WITH":
		return true
	default:
		return false
	}
}

func stripLeadingComments(s string) string {
	for {
		s = strings.TrimSpace(s)
		switch {
		case strings.HasPrefix(s, "--"):
			nl := strings.IndexByte(s, '\n')
			if nl < 0 {
				return ""
			}
			s = s[nl+1:]
		case strings.HasPrefix(s, "/*"):
			end := strings.Index(s, "*/")
			if end < 0 {
				return ""
			}
			s = s[end+2:]
		default:
			return s
		}
	}
}

func scanResult(rows *sql.Rows) (*Result, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &Result{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		// Text may come back as bytes; keep it printable
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}

	return result, rows.Err()
}
