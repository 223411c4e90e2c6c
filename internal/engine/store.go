package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tuannm99/novacol/internal/column"
	"github.com/tuannm99/novacol/internal/record"
	"github.com/tuannm99/novacol/internal/serde"
	"github.com/tuannm99/novacol/internal/storage"
	"github.com/tuannm99/novacol/internal/subcolumn"
	"github.com/tuannm99/novacol/internal/types"
)

var (
	ErrColumnNotFound = errors.New("novacol: column not found")
	ErrColumnExists   = errors.New("novacol: column already exists")
	ErrBadColumnName  = errors.New("novacol: invalid column name")
)

// ColumnMeta describes one stored dynamic column.
type ColumnMeta struct {
	Name      string    `json:"name"`
	TypeName  string    `json:"type"`
	Rows      int       `json:"rows"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store manages named dynamic columns in a data directory: a JSON meta
// file plus a binary column blob per column.
type Store struct {
	DataDir string
	SM      *storage.Manager

	reg *types.Registry
}

// NewStore creates a store handle without touching the filesystem.
func NewStore(dataDir string) *Store {
	return &Store{
		DataDir: dataDir,
		SM:      storage.NewManager(),
		reg:     types.NewRegistry(),
	}
}

func (s *Store) Registry() *types.Registry { return s.reg }

func (s *Store) columnDir() string {
	return filepath.Join(s.DataDir, "columns")
}

func (s *Store) metaPath(name string) string {
	return filepath.Join(s.columnDir(), name+".meta.json")
}

func (s *Store) fileSet(name string) storage.FileSet {
	return storage.LocalFileSet{
		Dir:  s.columnDir(),
		Base: name + ".col",
	}
}

func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, "/\\.")
}

// writeMeta overwrites the meta file for a given column.
func (s *Store) writeMeta(meta *ColumnMeta) error {
	if err := os.MkdirAll(s.columnDir(), 0o755); err != nil {
		return err
	}
	meta.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.metaPath(meta.Name), data, 0o644)
}

func (s *Store) readMeta(name string) (*ColumnMeta, error) {
	data, err := os.ReadFile(s.metaPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
		}
		return nil, err
	}
	var meta ColumnMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// CreateColumn registers an empty dynamic column with the given bound.
func (s *Store) CreateColumn(name string, maxTypes int) (*column.Dynamic, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: %q", ErrBadColumnName, name)
	}
	if _, err := os.Stat(s.metaPath(name)); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrColumnExists, name)
	}

	d, err := column.NewDynamic(maxTypes)
	if err != nil {
		return nil, err
	}
	meta := &ColumnMeta{
		Name:      name,
		TypeName:  d.Type().Name(),
		CreatedAt: time.Now(),
	}
	if err := s.flush(d, meta); err != nil {
		return nil, err
	}
	slog.Info("create column", "name", name, "type", meta.TypeName)
	return d, nil
}

// OpenColumn loads a stored column back into memory.
func (s *Store) OpenColumn(name string) (*column.Dynamic, *ColumnMeta, error) {
	if !validName(name) {
		return nil, nil, fmt.Errorf("%w: %q", ErrBadColumnName, name)
	}
	meta, err := s.readMeta(name)
	if err != nil {
		return nil, nil, err
	}
	t, err := s.reg.Get(meta.TypeName)
	if err != nil {
		return nil, nil, fmt.Errorf("column %s: %w", name, err)
	}

	blob, err := s.SM.ReadBlob(s.fileSet(name))
	if err != nil {
		return nil, nil, err
	}
	col, err := serde.For(t).Decode(bytes.NewReader(blob), meta.Rows)
	if err != nil {
		return nil, nil, fmt.Errorf("column %s: %w", name, err)
	}
	d, ok := col.(*column.Dynamic)
	if !ok {
		return nil, nil, fmt.Errorf("column %s: stored type %s is not dynamic", name, meta.TypeName)
	}
	return d, meta, nil
}

// AppendRows opens the column, appends the given values and writes it
// back.
func (s *Store) AppendRows(name string, rows []any) (int, error) {
	d, meta, err := s.OpenColumn(name)
	if err != nil {
		return 0, err
	}
	if err := record.AppendRows(d, rows); err != nil {
		return 0, err
	}
	if err := s.flush(d, meta); err != nil {
		return 0, err
	}
	slog.Info("append rows", "name", name, "appended", len(rows), "total", d.Len())
	return d.Len(), nil
}

func (s *Store) flush(d *column.Dynamic, meta *ColumnMeta) error {
	var buf bytes.Buffer
	if err := serde.For(d.Type()).Encode(&buf, d); err != nil {
		return err
	}
	if err := s.SM.WriteBlob(s.fileSet(meta.Name), buf.Bytes()); err != nil {
		return err
	}
	meta.Rows = d.Len()
	return s.writeMeta(meta)
}

// Resolve materializes a virtual subcolumn of a stored column.
func (s *Store) Resolve(name, path string, strict bool) (*subcolumn.Resolved, error) {
	d, _, err := s.OpenColumn(name)
	if err != nil {
		return nil, err
	}
	return subcolumn.Resolve(path, s.reg, d, strict)
}

// ListColumns returns the meta of every stored column, sorted by name.
func (s *Store) ListColumns() ([]ColumnMeta, error) {
	entries, err := os.ReadDir(s.columnDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var metas []ColumnMeta
	for _, e := range entries {
		base, ok := strings.CutSuffix(e.Name(), ".meta.json")
		if !ok {
			continue
		}
		meta, err := s.readMeta(base)
		if err != nil {
			slog.Warn("list columns: skip unreadable meta", "file", e.Name(), "err", err)
			continue
		}
		metas = append(metas, *meta)
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].Name < metas[j].Name })
	return metas, nil
}

func (s *Store) DropColumn(name string) error {
	if !validName(name) {
		return fmt.Errorf("%w: %q", ErrBadColumnName, name)
	}
	if _, err := s.readMeta(name); err != nil {
		return err
	}
	if err := os.Remove(s.metaPath(name)); err != nil {
		return err
	}
	if err := s.SM.Remove(s.fileSet(name)); err != nil && !errors.Is(err, storage.ErrBlobNotFound) {
		return err
	}
	slog.Info("drop column", "name", name)
	return nil
}
