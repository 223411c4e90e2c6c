package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tuannm99/novacol/internal/alias/util"
)

var ErrBlobNotFound = errors.New("storage: blob not found")

// FileSet locates the on-disk file of one stored column.
type FileSet interface {
	Open(create bool) (*os.File, error)
	Path() string
}

var _ FileSet = (*LocalFileSet)(nil)

// LocalFileSet represents a local directory + base file name.
type LocalFileSet struct {
	Dir  string
	Base string
}

func (lfs LocalFileSet) Path() string {
	return filepath.Join(lfs.Dir, lfs.Base)
}

func (lfs LocalFileSet) Open(create bool) (*os.File, error) {
	if !create {
		return os.Open(lfs.Path())
	}
	if err := os.MkdirAll(lfs.Dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(lfs.Path(), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
}

// Manager reads and writes whole column blobs. Columns are immutable
// once written, so there is no page granularity here; a write replaces
// the file.
type Manager struct{}

func NewManager() *Manager { return &Manager{} }

func (m *Manager) WriteBlob(fs FileSet, data []byte) error {
	f, err := fs.Open(true)
	if err != nil {
		return fmt.Errorf("open %s: %w", fs.Path(), err)
	}
	defer util.CloseFileFunc(f)

	n, err := f.Write(data)
	if err != nil {
		return err
	}
	if n != len(data) {
		return io.ErrShortWrite
	}
	return nil
}

func (m *Manager) ReadBlob(fs FileSet) ([]byte, error) {
	f, err := fs.Open(false)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, fs.Path())
		}
		return nil, err
	}
	defer util.CloseFileFunc(f)

	return io.ReadAll(f)
}

func (m *Manager) Remove(fs FileSet) error {
	err := os.Remove(fs.Path())
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrBlobNotFound, fs.Path())
	}
	return err
}
