package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore_CreateIngestReopen(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	_, err := s.CreateColumn("events", 16)
	require.NoError(t, err)

	_, err = s.CreateColumn("events", 16)
	require.ErrorIs(t, err, ErrColumnExists)

	total, err := s.AppendRows("events", []any{int64(1), "a", nil, 2.5})
	require.NoError(t, err)
	require.Equal(t, 4, total)

	// a fresh handle must see the data from disk
	s2 := NewStore(dir)
	d, meta, err := s2.OpenColumn("events")
	require.NoError(t, err)
	require.Equal(t, "Dynamic(max_types=16)", meta.TypeName)
	require.Equal(t, 4, meta.Rows)
	require.Equal(t, int64(1), d.Get(0))
	require.Equal(t, "a", d.Get(1))
	require.Nil(t, d.Get(2))
	require.Equal(t, 2.5, d.Get(3))
}

func TestStore_Resolve(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.CreateColumn("c", 8)
	require.NoError(t, err)
	_, err = s.AppendRows("c", []any{int64(1), "a", int64(2)})
	require.NoError(t, err)

	res, err := s.Resolve("c", "Int64", false)
	require.NoError(t, err)
	require.Equal(t, "Nullable(Int64)", res.Type.Name())
	require.Equal(t, 3, res.Column.Len())
	require.Equal(t, int64(1), res.Column.Get(0))
	require.Nil(t, res.Column.Get(1))
	require.Equal(t, int64(2), res.Column.Get(2))

	res, err = s.Resolve("c", "Float64", false)
	require.NoError(t, err)
	require.Equal(t, 3, res.Column.Len(), "absent type still spans every row")

	res, err = s.Resolve("c", "Bogus!", false)
	require.NoError(t, err)
	require.Nil(t, res)
}

func TestStore_ListAndDrop(t *testing.T) {
	s := NewStore(t.TempDir())
	for _, name := range []string{"b", "a"} {
		_, err := s.CreateColumn(name, 4)
		require.NoError(t, err)
	}

	metas, err := s.ListColumns()
	require.NoError(t, err)
	require.Len(t, metas, 2)
	require.Equal(t, "a", metas[0].Name)
	require.Equal(t, "b", metas[1].Name)

	require.NoError(t, s.DropColumn("a"))
	require.ErrorIs(t, s.DropColumn("a"), ErrColumnNotFound)

	metas, err = s.ListColumns()
	require.NoError(t, err)
	require.Len(t, metas, 1)
}

func TestStore_BadNames(t *testing.T) {
	s := NewStore(t.TempDir())
	for _, name := range []string{"", "a/b", "..", "x.y"} {
		_, err := s.CreateColumn(name, 4)
		require.ErrorIs(t, err, ErrBadColumnName, name)
	}
	_, _, err := s.OpenColumn("missing")
	require.ErrorIs(t, err, ErrColumnNotFound)
}
