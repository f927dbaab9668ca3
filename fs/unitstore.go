// Package fs provides file-based storage for records, output units and
// datasets.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/jsxcorpus"
)

// Ensure UnitStore implements jsxcorpus.UnitStore at compile time.
var _ jsxcorpus.UnitStore = (*UnitStore)(nil)

// UnitStore allocates numbered unit directories under a parent directory:
// <dir>/<base>-1, <dir>/<base>-2, and so on. An existing directory with
// the same name is replaced when the new unit is committed.
type UnitStore struct {
	dir  string
	base string

	mu   sync.Mutex
	next int
}

// NewUnitStore creates a new UnitStore.
func NewUnitStore(dir, base string) *UnitStore {
	return &UnitStore{dir: dir, base: base}
}

// CreateUnit allocates the next unit and creates its temp directory.
func (s *UnitStore) CreateUnit(ctx context.Context) (jsxcorpus.UnitWriter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.next++
	n := s.next
	s.mu.Unlock()

	u := &Unit{
		dir:  s.dir,
		name: fmt.Sprintf("%s-%d", s.base, n),
	}
	if err := os.MkdirAll(u.tempDir(), 0755); err != nil {
		return nil, err
	}
	return u, nil
}

// Ensure Unit implements jsxcorpus.UnitWriter at compile time.
var _ jsxcorpus.UnitWriter = (*Unit)(nil)

// Unit is one output directory with atomic update semantics.
// Files are written to <name>.tmp and moved to <name> on Commit.
type Unit struct {
	dir  string
	name string
}

func (u *Unit) tempDir() string {
	return filepath.Join(u.dir, u.name+".tmp")
}

func (u *Unit) finalDir() string {
	return filepath.Join(u.dir, u.name)
}

// Name returns the unit's directory name.
func (u *Unit) Name() string {
	return u.name
}

// Path returns the directory the unit is committed to.
func (u *Unit) Path() string {
	return u.finalDir()
}

// WriteFile writes a file into the unit's temp directory.
// Returns EINVALID if name is not a plain file name.
func (u *Unit) WriteFile(ctx context.Context, name string, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return jsxcorpus.Errorf(jsxcorpus.EINVALID, "invalid unit file name %q", name)
	}
	return os.WriteFile(filepath.Join(u.tempDir(), name), []byte(content), 0644)
}

// Commit moves the unit from its temp directory to <dir>/<base>-<n>,
// replacing any directory already there.
func (u *Unit) Commit() error {
	if err := os.RemoveAll(u.finalDir()); err != nil {
		return err
	}
	return os.Rename(u.tempDir(), u.finalDir())
}

// Abort discards the unit's temp directory. The unit number is not reused.
func (u *Unit) Abort() error {
	return os.RemoveAll(u.tempDir())
}
