package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/jsxcorpus"
	"github.com/google/uuid"
)

// DefaultDataset is the dataset name used when none is given.
const DefaultDataset = "default"

// Compile-time interface verification.
var _ jsxcorpus.RecordStore = (*RecordStore)(nil)

// RecordStore implements jsxcorpus.RecordStore using SQLite.
// Records are grouped into named datasets and ordered by position.
type RecordStore struct {
	db      *DB
	dataset string
}

// NewRecordStore creates a new RecordStore for the named dataset.
func NewRecordStore(db *DB, dataset string) *RecordStore {
	if dataset == "" {
		dataset = DefaultDataset
	}
	return &RecordStore{db: db, dataset: dataset}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// AppendRecord stores rec after the last record of the dataset.
func (s *RecordStore) AppendRecord(ctx context.Context, rec *jsxcorpus.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (id, dataset, position, title, url, html, content_hash, fetched_at)
		SELECT ?, ?, COALESCE(MAX(position), 0) + 1, ?, ?, ?, ?, ?
		FROM records WHERE dataset = ?
	`, uuid.New().String(), s.dataset, rec.Title, rec.URL, rec.HTML, hashContent(rec.HTML),
		time.Now().UTC().Format(time.RFC3339), s.dataset)

	return err
}

// WalkRecords calls fn for every record of the dataset in append order.
func (s *RecordStore) WalkRecords(ctx context.Context, fn func(*jsxcorpus.Record) error) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, url, html
		FROM records
		WHERE dataset = ?
		ORDER BY position ASC
	`, s.dataset)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var rec jsxcorpus.Record
		if err := rows.Scan(&rec.Title, &rec.URL, &rec.HTML); err != nil {
			return err
		}
		if err := fn(&rec); err != nil {
			return err
		}
	}

	return rows.Err()
}

// CountRecords returns the number of records in the dataset.
func (s *RecordStore) CountRecords(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records WHERE dataset = ?", s.dataset).Scan(&n)
	return n, err
}
