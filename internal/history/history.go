// Package history keeps a small local ledger of normalization runs so a
// previously written output can be inspected or recovered without re-running
// the tool. Recorded outputs are stored zstd-compressed.
package history

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// Run is one recorded normalization.
type Run struct {
	ID           string
	StartedAt    time.Time
	Duration     time.Duration
	InputPath    string
	OutputPath   string
	InputSHA256  string
	OutputSHA256 string
	GroupCount   int
}

// Record stores a completed run and prunes the ledger down to keep entries.
// The output bytes are compressed before insert; input/output fingerprints
// are computed here so callers only hand over raw bytes.
func (db *DB) Record(run Run, input, output []byte, keep int) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	compressed, err := compress(output)
	if err != nil {
		return "", fmt.Errorf("failed to compress output: %w", err)
	}

	_, err = db.conn.Exec(`
		INSERT INTO runs (id, started_at, duration_ms, input_path, output_path,
			input_sha256, output_sha256, group_count, output_zstd)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.StartedAt.Format(time.RFC3339Nano),
		run.Duration.Milliseconds(),
		run.InputPath,
		run.OutputPath,
		fingerprint(input),
		fingerprint(output),
		run.GroupCount,
		compressed,
	)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}

	if keep > 0 {
		if err := db.prune(keep); err != nil {
			return "", err
		}
	}
	return run.ID, nil
}

// List returns the most recent runs, newest first.
func (db *DB) List(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT id, started_at, duration_ms, input_path, output_path,
			input_sha256, output_sha256, group_count
		FROM runs
		ORDER BY started_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedAt string
		var durationMs int64
		if err := rows.Scan(&run.ID, &startedAt, &durationMs, &run.InputPath,
			&run.OutputPath, &run.InputSHA256, &run.OutputSHA256, &run.GroupCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			run.StartedAt = ts
		}
		run.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Output returns the recorded (decompressed) output of a run. Short id
// prefixes are accepted as long as they are unambiguous.
func (db *DB) Output(id string) ([]byte, error) {
	var compressed []byte
	err := db.conn.QueryRow(`
		SELECT output_zstd FROM runs WHERE id = ? OR id LIKE ? || '%'
	`, id, id).Scan(&compressed)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}
	return decompress(compressed)
}

// prune deletes everything but the newest keep runs.
func (db *DB) prune(keep int) error {
	_, err := db.conn.Exec(`
		DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC, id LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("failed to prune runs: %w", err)
	}
	return nil
}

func fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}
