package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ArciniegaPatriot/DopeReport/internal/model"
)

// AppendSnapshot appends one snapshot, deduplicating by content hash.
// Returns false when an identical snapshot already exists. Rows are never
// updated after insert.
func (s *Store) AppendSnapshot(snap *model.Snapshot) (bool, error) {
	data, err := json.Marshal(snap.Result)
	if err != nil {
		return false, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	res, err := s.db.Exec(`
		INSERT INTO snapshots (id, content_hash, source, created_at, result_json)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(content_hash) DO NOTHING
	`, snap.ID, snap.ContentHash, snap.Source, snap.CreatedAt.UTC(), string(data))
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListSnapshots newest-first snapshot listing; limit <= 0 means all
func (s *Store) ListSnapshots(limit int) ([]model.Snapshot, error) {
	query := "SELECT id, content_hash, source, created_at, result_json FROM snapshots ORDER BY created_at DESC, id DESC"
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Snapshot{}
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// LatestSnapshot newest snapshot, or nil when the store is empty
func (s *Store) LatestSnapshot() (*model.Snapshot, error) {
	snaps, err := s.ListSnapshots(1)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, nil
	}
	return &snaps[0], nil
}

// CountSnapshots total snapshots in the store
func (s *Store) CountSnapshots() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&n)
	return n, err
}

// LastImportTime timestamp of the newest snapshot; zero when none
func (s *Store) LastImportTime() (time.Time, error) {
	var ts time.Time
	err := s.db.QueryRow("SELECT created_at FROM snapshots ORDER BY created_at DESC LIMIT 1").Scan(&ts)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return ts, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSnapshot(r rowScanner) (model.Snapshot, error) {
	var snap model.Snapshot
	var resultJSON string
	if err := r.Scan(&snap.ID, &snap.ContentHash, &snap.Source, &snap.CreatedAt, &resultJSON); err != nil {
		return model.Snapshot{}, err
	}
	if err := json.Unmarshal([]byte(resultJSON), &snap.Result); err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to decode snapshot %s: %w", snap.ID, err)
	}
	return snap, nil
}
