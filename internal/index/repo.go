package index

import (
	"database/sql"
	"fmt"
	"time"
)

// RunRecord is one logged pipeline invocation.
type RunRecord struct {
	ID        int64
	Pipeline  string
	Target    string
	Status    string
	Detail    string
	StartedAt time.Time
}

// MarkProcessed records that a source file was handled, storing its content
// checksum so unchanged files can be skipped on later passes.
func (db *DB) MarkProcessed(path, checksum, kind string) error {
	_, err := db.conn.Exec(`
		INSERT INTO processed_sources (path, checksum, kind, processed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			checksum     = excluded.checksum,
			kind         = excluded.kind,
			processed_at = excluded.processed_at
	`, path, checksum, kind, time.Now())
	if err != nil {
		return fmt.Errorf("index: mark processed: %w", err)
	}
	return nil
}

// IsProcessed reports whether path was already handled with this exact
// content. A changed checksum counts as unprocessed.
func (db *DB) IsProcessed(path, checksum string) (bool, error) {
	var stored string
	err := db.conn.QueryRow(`SELECT checksum FROM processed_sources WHERE path = ?`, path).Scan(&stored)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("index: is processed: %w", err)
	}
	return stored == checksum, nil
}

// AllProcessed returns path → checksum for every recorded source of the
// given kind (empty kind matches all).
func (db *DB) AllProcessed(kind string) (map[string]string, error) {
	query := `SELECT path, checksum FROM processed_sources`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("index: all processed: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// ForgetProcessed drops the record for path so it will be handled again.
func (db *DB) ForgetProcessed(path string) error {
	if _, err := db.conn.Exec(`DELETE FROM processed_sources WHERE path = ?`, path); err != nil {
		return fmt.Errorf("index: forget processed: %w", err)
	}
	return nil
}

// LogRun appends a pipeline invocation to the run history.
func (db *DB) LogRun(pipeline, target, status, detail string) error {
	_, err := db.conn.Exec(`
		INSERT INTO runs (pipeline, target, status, detail, started_at)
		VALUES (?, ?, ?, ?, ?)
	`, pipeline, target, status, detail, time.Now())
	if err != nil {
		return fmt.Errorf("index: log run: %w", err)
	}
	return nil
}

// RecentRuns returns the newest run records, most recent first.
func (db *DB) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT id, pipeline, target, status, detail, started_at
		FROM runs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("index: recent runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.Pipeline, &r.Target, &r.Status, &r.Detail, &r.StartedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
