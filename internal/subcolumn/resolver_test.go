package subcolumn

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novacol/internal/column"
	"github.com/tuannm99/novacol/internal/serde"
	"github.com/tuannm99/novacol/internal/types"
)

// buildDynamic fills a fresh dynamic column with the given values (nil
// becomes a null row).
func buildDynamic(t *testing.T, maxTypes int, values ...any) *column.Dynamic {
	t.Helper()
	d, err := column.NewDynamic(maxTypes)
	require.NoError(t, err)
	for _, v := range values {
		require.NoError(t, d.Append(v))
	}
	return d
}

func flagsOf(t *testing.T, col column.Column) []uint8 {
	t.Helper()
	flags, ok := col.(*column.Vec[uint8])
	require.True(t, ok, "expected a UInt8 flags column, got %T", col)
	return flags.Values()
}

func TestResolve_DataLeafPresent(t *testing.T) {
	reg := types.NewRegistry()
	d := buildDynamic(t, 8, int64(1), "a", int64(2), nil, int64(3))

	res, err := Resolve("Int64", reg, d, false)
	require.NoError(t, err)
	require.NotNil(t, res)

	// Int64 is nullable-embeddable, so the subcolumn is promoted.
	require.Equal(t, "Nullable(Int64)", res.Type.Name())
	require.Equal(t, 5, res.Column.Len())
	require.Equal(t, int64(1), res.Column.Get(0))
	require.Nil(t, res.Column.Get(1))
	require.Equal(t, int64(2), res.Column.Get(2))
	require.Nil(t, res.Column.Get(3))
	require.Equal(t, int64(3), res.Column.Get(4))
}

func TestResolve_NullMapPresent(t *testing.T) {
	reg := types.NewRegistry()
	// 3 of 5 rows tagged Int64
	d := buildDynamic(t, 8, int64(1), "a", int64(2), "b", int64(3))

	res, err := Resolve("Int64.null", reg, d, false)
	require.NoError(t, err)
	require.NotNil(t, res)

	// the null-map leaf is a plain UInt8 flag column, never promoted
	require.Equal(t, "UInt8", res.Type.Name())
	require.Equal(t, []uint8{0, 1, 0, 1, 0}, flagsOf(t, res.Column))
}

func TestResolve_AbsentType(t *testing.T) {
	reg := types.NewRegistry()
	d := buildDynamic(t, 8, "a", "b", 1.5)

	t.Run("null map is all ones", func(t *testing.T) {
		res, err := Resolve("Int64.null", reg, d, false)
		require.NoError(t, err)
		require.Equal(t, []uint8{1, 1, 1}, flagsOf(t, res.Column))
	})

	t.Run("data leaf is all null", func(t *testing.T) {
		res, err := Resolve("Int64", reg, d, false)
		require.NoError(t, err)
		require.Equal(t, "Nullable(Int64)", res.Type.Name())
		require.Equal(t, 3, res.Column.Len())
		for i := 0; i < 3; i++ {
			require.Nil(t, res.Column.Get(i))
		}
	})

	t.Run("non promotable type is default filled", func(t *testing.T) {
		res, err := Resolve("Array(Int64)", reg, d, false)
		require.NoError(t, err)
		require.Equal(t, "Array(Int64)", res.Type.Name())
		require.Equal(t, 3, res.Column.Len())
		for i := 0; i < 3; i++ {
			require.Equal(t, []any{}, res.Column.Get(i))
		}
	})
}

func TestResolve_UnknownSubcolumn(t *testing.T) {
	reg := types.NewRegistry()
	d := buildDynamic(t, 8, int64(1))

	t.Run("probing returns clean absence", func(t *testing.T) {
		res, err := Resolve("Unknown(Type)", reg, d, false)
		require.NoError(t, err)
		require.Nil(t, res)
	})

	t.Run("strict mode fails naming the segment", func(t *testing.T) {
		_, err := Resolve("Unknown(Type)", reg, d, true)
		require.ErrorIs(t, err, ErrUnknownSubcolumn)
		require.Contains(t, err.Error(), "Unknown(Type)")
	})

	t.Run("invalid nested remainder", func(t *testing.T) {
		res, err := Resolve("Int64.foo", reg, d, false)
		require.NoError(t, err)
		require.Nil(t, res)

		_, err = Resolve("Int64.foo", reg, d, true)
		require.ErrorIs(t, err, ErrUnknownSubcolumn)
	})
}

func TestResolve_DryResolution(t *testing.T) {
	reg := types.NewRegistry()

	res, err := Resolve("Int64", reg, nil, false)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Equal(t, "Nullable(Int64)", res.Type.Name())
	require.Nil(t, res.Column)

	elem, ok := res.Serialization.(*serde.DynamicElement)
	require.True(t, ok)
	require.Equal(t, "Int64", elem.TypeName)
	require.False(t, elem.IsNullMap)

	res, err = Resolve("Int64.null", reg, nil, false)
	require.NoError(t, err)
	require.Equal(t, "UInt8", res.Type.Name())
	elem, ok = res.Serialization.(*serde.DynamicElement)
	require.True(t, ok)
	require.True(t, elem.IsNullMap)
}

func TestResolve_PromotionIndependentOfContents(t *testing.T) {
	reg := types.NewRegistry()
	empty := buildDynamic(t, 8)
	populated := buildDynamic(t, 8, int64(1))

	for _, d := range []*column.Dynamic{nil, empty, populated} {
		res, err := Resolve("Int64", reg, d, false)
		require.NoError(t, err)
		require.Equal(t, "Nullable(Int64)", res.Type.Name())
	}

	// dictionary-coded types promote to the nullable-dictionary form
	res, err := Resolve("LowCardinality(String)", reg, nil, false)
	require.NoError(t, err)
	require.Equal(t, "LowCardinality(Nullable(String))", res.Type.Name())
}

func TestResolve_LowCardinalityMaterialized(t *testing.T) {
	reg := types.NewRegistry()
	lcType, err := types.ParseType("LowCardinality(String)")
	require.NoError(t, err)

	d, err := column.NewDynamic(8)
	require.NoError(t, err)
	require.NoError(t, d.AppendTyped(lcType, "x"))
	require.NoError(t, d.Append(int64(1)))
	require.NoError(t, d.AppendTyped(lcType, "x"))

	res, err := Resolve("LowCardinality(String)", reg, d, false)
	require.NoError(t, err)
	require.Equal(t, "LowCardinality(Nullable(String))", res.Type.Name())
	require.Equal(t, 3, res.Column.Len())
	require.Equal(t, "x", res.Column.Get(0))
	require.Nil(t, res.Column.Get(1))
	require.Equal(t, "x", res.Column.Get(2))
}

func TestResolve_Idempotent(t *testing.T) {
	reg := types.NewRegistry()
	d := buildDynamic(t, 8, int64(1), "a", nil, int64(2))

	first, err := Resolve("Int64", reg, d, false)
	require.NoError(t, err)
	second, err := Resolve("Int64", reg, d, false)
	require.NoError(t, err)

	require.Equal(t, first.Type, second.Type)
	require.Equal(t, first.Column.Len(), second.Column.Len())
	for i := 0; i < first.Column.Len(); i++ {
		require.Equal(t, first.Column.Get(i), second.Column.Get(i))
	}
}

func TestResolve_NestedArraySizes(t *testing.T) {
	reg := types.NewRegistry()
	d := buildDynamic(t, 8,
		[]any{int64(1), int64(2)},
		"skip",
		[]any{int64(3)},
	)

	res, err := Resolve("Array(Int64).size0", reg, d, false)
	require.NoError(t, err)
	require.Equal(t, "UInt64", res.Type.Name())

	sizes := res.Column.(*column.Vec[uint64]).Values()
	require.Equal(t, []uint64{2, 0, 1}, sizes)
}

func TestResolve_NestedTupleField(t *testing.T) {
	reg := types.NewRegistry()
	tupType, err := types.ParseType("Tuple(a Int64, b String)")
	require.NoError(t, err)

	d, err := column.NewDynamic(8)
	require.NoError(t, err)
	require.NoError(t, d.AppendTyped(tupType, []any{int64(10), "x"}))
	require.NoError(t, d.Append("plain"))
	require.NoError(t, d.AppendTyped(tupType, []any{int64(20), "y"}))

	t.Run("by name", func(t *testing.T) {
		res, err := Resolve("Tuple(a Int64, b String).a", reg, d, false)
		require.NoError(t, err)
		// tuples are not promotable, absent rows carry the default
		require.Equal(t, "Int64", res.Type.Name())
		require.Equal(t, []int64{10, 0, 20}, res.Column.(*column.Vec[int64]).Values())
	})

	t.Run("by position", func(t *testing.T) {
		res, err := Resolve("Tuple(a Int64, b String).2", reg, d, false)
		require.NoError(t, err)
		require.Equal(t, "String", res.Type.Name())
		require.Equal(t, []string{"x", "", "y"}, res.Column.(*column.Vec[string]).Values())
	})

	t.Run("missing field", func(t *testing.T) {
		res, err := Resolve("Tuple(a Int64, b String).c", reg, d, false)
		require.NoError(t, err)
		require.Nil(t, res)
	})
}

func TestResolve_NestedDynamic(t *testing.T) {
	reg := types.NewRegistry()
	dynType, err := types.ParseType("Dynamic")
	require.NoError(t, err)

	d, err := column.NewDynamic(8)
	require.NoError(t, err)
	require.NoError(t, d.AppendTyped(dynType, int64(5)))
	require.NoError(t, d.Append("outer"))
	require.NoError(t, d.AppendTyped(dynType, "inner"))

	res, err := Resolve("Dynamic.Int64", reg, d, false)
	require.NoError(t, err)
	require.Equal(t, "Nullable(Int64)", res.Type.Name())
	require.Equal(t, 3, res.Column.Len())
	require.Equal(t, int64(5), res.Column.Get(0))
	require.Nil(t, res.Column.Get(1))
	require.Nil(t, res.Column.Get(2))
}

func TestResolve_EmptyBacking(t *testing.T) {
	reg := types.NewRegistry()
	d := buildDynamic(t, 8)

	res, err := Resolve("Int64", reg, d, false)
	require.NoError(t, err)
	require.Equal(t, 0, res.Column.Len())

	res, err = Resolve("Int64.null", reg, d, false)
	require.NoError(t, err)
	require.Equal(t, 0, res.Column.Len())
}

func TestResolve_DictionaryOverCompoundPath(t *testing.T) {
	reg := types.NewRegistry()
	d := buildDynamic(t, 8, int64(1))

	// LowCardinality over a non-scalar element is not a valid type, so
	// the path is absent rather than a default-filled dictionary.
	res, err := Resolve("LowCardinality(Array(Int64))", reg, d, false)
	require.NoError(t, err)
	require.Nil(t, res)

	_, err = Resolve("LowCardinality(Array(Int64))", reg, d, true)
	require.ErrorIs(t, err, ErrUnknownSubcolumn)

	// scalar dictionaries still default-fill across every row
	res, err = Resolve("LowCardinality(String)", reg, d, false)
	require.NoError(t, err)
	require.Equal(t, "LowCardinality(Nullable(String))", res.Type.Name())
	require.Equal(t, 1, res.Column.Len())
	require.Nil(t, res.Column.Get(0))
}
