package jsxcorpus

import (
	"bytes"
	"context"
	"encoding/json"
)

// Record represents one crawled page as handed over by the crawler.
// Records are immutable once stored.
type Record struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	HTML  string `json:"html"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "record URL required")
	}
	return nil
}

// Canonical returns the compact JSON form of the record used for budget
// accounting. HTML characters are not escaped so the byte size reflects
// the markup as written.
func (r *Record) Canonical() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// RecordWriter appends records to an ordered store.
type RecordWriter interface {
	AppendRecord(ctx context.Context, rec *Record) error
}

// RecordSource yields stored records in append order.
type RecordSource interface {
	// WalkRecords calls fn for every record in append order.
	// Iteration stops at the first error returned by fn or by the store.
	WalkRecords(ctx context.Context, fn func(*Record) error) error
}

// RecordStore is an ordered, append-only record store.
type RecordStore interface {
	RecordWriter
	RecordSource

	// CountRecords returns the number of stored records.
	CountRecords(ctx context.Context) (int, error)
}
