package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/fwojciec/jsxcorpus"
)

// DefaultRecordDir is where the crawler stores records by default.
var DefaultRecordDir = filepath.Join("storage", "datasets", "default")

// Ensure RecordStore implements jsxcorpus.RecordStore at compile time.
var _ jsxcorpus.RecordStore = (*RecordStore)(nil)

// RecordStore stores one JSON file per record in a directory:
// 000000001.json, 000000002.json, ... Append order is the numeric order
// of the file names.
type RecordStore struct {
	dir string

	mu   sync.Mutex
	next int // 0 until the directory has been scanned
}

// NewRecordStore creates a new RecordStore over dir. The directory is
// created on the first append.
func NewRecordStore(dir string) *RecordStore {
	return &RecordStore{dir: dir}
}

// AppendRecord writes rec as the next numbered file.
func (s *RecordStore) AppendRecord(ctx context.Context, rec *jsxcorpus.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := rec.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next == 0 {
		entries, err := s.entries()
		if err != nil {
			return err
		}
		s.next = 1
		if len(entries) > 0 {
			s.next = entries[len(entries)-1].n + 1
		}
	}

	path := filepath.Join(s.dir, recordFileName(s.next))
	if err := WriteFileAtomic(path, func(w io.Writer) error {
		_, err := w.Write(buf.Bytes())
		return err
	}); err != nil {
		return err
	}
	s.next++
	return nil
}

// WalkRecords calls fn for every stored record in append order.
// A missing directory holds no records. A file that cannot be decoded
// stops the walk with EINVALID.
func (s *RecordStore) WalkRecords(ctx context.Context, fn func(*jsxcorpus.Record) error) error {
	entries, err := s.entries()
	if err != nil {
		return err
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := os.ReadFile(filepath.Join(s.dir, e.name))
		if err != nil {
			return err
		}
		var rec jsxcorpus.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return jsxcorpus.Errorf(jsxcorpus.EINVALID, "decode record %s: %v", e.name, err)
		}
		if err := fn(&rec); err != nil {
			return err
		}
	}
	return nil
}

// CountRecords returns the number of stored records.
func (s *RecordStore) CountRecords(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	entries, err := s.entries()
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

type recordEntry struct {
	name string
	n    int
}

// entries lists the numbered record files sorted by number.
func (s *RecordStore) entries() ([]recordEntry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []recordEntry
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		stem, ok := strings.CutSuffix(de.Name(), ".json")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(stem)
		if err != nil || n <= 0 {
			continue
		}
		out = append(out, recordEntry{name: de.Name(), n: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].n < out[j].n })
	return out, nil
}

func recordFileName(n int) string {
	return fmt.Sprintf("%09d.json", n)
}
