package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"wfsort/internal/logging"
)

// DB represents the run-ledger database connection
type DB struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// Open opens or creates the SQLite ledger at .wfsort/wfsort.db under root,
// creating the schema on first use.
func Open(root string, logger *logging.Logger) (*DB, error) {
	dir := filepath.Join(root, ".wfsort")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .wfsort directory: %w", err)
	}

	dbPath := filepath.Join(dir, "wfsort.db")

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Pragmas for reliability; the ledger is tiny, so the heavy cache/mmap
	// tuning a query store would use is unnecessary.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	db := &DB{
		conn:   conn,
		logger: logger,
		dbPath: dbPath,
	}

	if err := db.initializeSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	db.logger.Debug("Run ledger ready", map[string]interface{}{
		"path": dbPath,
	})

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// initializeSchema creates the runs table if it does not exist yet.
func (db *DB) initializeSchema() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			input_path TEXT NOT NULL,
			output_path TEXT NOT NULL,
			input_sha256 TEXT NOT NULL,
			output_sha256 TEXT NOT NULL,
			group_count INTEGER NOT NULL,
			output_zstd BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}
	return nil
}
