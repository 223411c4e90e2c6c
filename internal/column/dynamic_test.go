package column

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novacol/internal/types"
)

func TestDynamic_AppendAndGet(t *testing.T) {
	d, err := NewDynamic(8)
	require.NoError(t, err)

	require.NoError(t, d.Append(int64(42)))
	require.NoError(t, d.Append("hello"))
	require.NoError(t, d.Append(nil))
	require.NoError(t, d.Append(int64(7)))
	require.NoError(t, d.Append(true))

	require.Equal(t, 5, d.Len())
	require.Equal(t, int64(42), d.Get(0))
	require.Equal(t, "hello", d.Get(1))
	require.Nil(t, d.Get(2))
	require.Equal(t, int64(7), d.Get(3))
	require.Equal(t, true, d.Get(4))
}

func TestDynamic_CatalogStableGlobals(t *testing.T) {
	d, err := NewDynamic(8)
	require.NoError(t, err)

	// String first, then Int64: slot order is by name (Int64 < String),
	// so introducing Int64 must reassign locals without touching globals.
	require.NoError(t, d.Append("a"))
	gStr, ok := d.GlobalDiscriminatorOf("String")
	require.True(t, ok)
	require.Equal(t, uint8(0), gStr)

	require.NoError(t, d.Append(int64(1)))
	gInt, ok := d.GlobalDiscriminatorOf("Int64")
	require.True(t, ok)
	require.Equal(t, uint8(1), gInt)

	// globals unchanged
	gStr2, _ := d.GlobalDiscriminatorOf("String")
	require.Equal(t, gStr, gStr2)

	v := d.Variant()
	lInt, ok := v.GlobalToLocal(gInt)
	require.True(t, ok)
	lStr, ok := v.GlobalToLocal(gStr)
	require.True(t, ok)
	require.Equal(t, uint8(0), lInt, "Int64 sorts before String")
	require.Equal(t, uint8(1), lStr)

	// row tags were remapped to the new local ids
	require.Equal(t, []uint8{lStr, lInt}, v.LocalDiscriminators())
	require.Equal(t, "a", d.Get(0))
	require.Equal(t, int64(1), d.Get(1))
}

func TestDynamic_TooManyTypes(t *testing.T) {
	d, err := NewDynamic(2)
	require.NoError(t, err)

	require.NoError(t, d.Append(int64(1)))
	require.NoError(t, d.Append("x"))
	err = d.Append(1.5)
	require.ErrorIs(t, err, ErrTooManyTypes)

	// existing types still accept values
	require.NoError(t, d.Append(int64(2)))
	require.Equal(t, 3, d.Len())
}

func TestDynamic_BadBound(t *testing.T) {
	_, err := NewDynamic(0)
	require.ErrorIs(t, err, types.ErrInvalidTypeDescriptor)
	_, err = NewDynamic(256)
	require.ErrorIs(t, err, types.ErrInvalidTypeDescriptor)
}

func TestDynamic_ArrayValues(t *testing.T) {
	d, err := NewDynamic(4)
	require.NoError(t, err)

	require.NoError(t, d.Append([]any{int64(1), int64(2)}))
	require.NoError(t, d.Append([]any{"a"}))

	_, ok := d.GlobalDiscriminatorOf("Array(Int64)")
	require.True(t, ok)
	_, ok = d.GlobalDiscriminatorOf("Array(String)")
	require.True(t, ok)

	require.Equal(t, []any{int64(1), int64(2)}, d.Get(0))
	require.Equal(t, []any{"a"}, d.Get(1))

	err = d.Append([]any{int64(1), "mixed"})
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestInferType(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{int64(1), "Int64"},
		{int(1), "Int64"},
		{uint8(1), "UInt8"},
		{1.5, "Float64"},
		{"s", "String"},
		{true, "Bool"},
		{[]any{int64(1)}, "Array(Int64)"},
		{[]any{}, "Array(String)"},
	}
	for _, c := range cases {
		typ, err := InferType(NormalizeValue(c.in))
		require.NoError(t, err)
		require.Equal(t, c.want, typ.Name())
	}

	_, err := InferType(map[string]any{})
	require.Error(t, err)
}

func TestTuple_FailedAppendKeepsAlignment(t *testing.T) {
	tupType, err := types.ParseType("Tuple(a Int64, b String)")
	require.NoError(t, err)
	d, err := NewDynamic(4)
	require.NoError(t, err)

	// second field mismatches; the first must not be left appended
	err = d.AppendTyped(tupType, []any{int64(1), int64(2)})
	require.ErrorIs(t, err, ErrTypeMismatch)
	require.Equal(t, 0, d.Len())

	require.NoError(t, d.AppendTyped(tupType, []any{int64(1), "b"}))
	require.Equal(t, 1, d.Len())
	require.Equal(t, []any{int64(1), "b"}, d.Get(0))
}

func TestArray_FailedAppendKeepsAlignment(t *testing.T) {
	typ, err := types.ParseType("Array(Int64)")
	require.NoError(t, err)
	col, err := ForType(typ)
	require.NoError(t, err)
	arr := col.(*Array)

	require.ErrorIs(t, arr.Append([]any{int64(1), "x"}), ErrTypeMismatch)
	require.Equal(t, 0, arr.Len())
	require.Equal(t, 0, arr.Elems().Len())

	require.NoError(t, arr.Append([]any{int64(7)}))
	require.Equal(t, []any{int64(7)}, arr.Get(0))
}

func TestForType_Shapes(t *testing.T) {
	for _, name := range []string{
		"Int64", "String", "Nullable(Int64)", "Array(String)",
		"Tuple(a Int64, b String)", "Map(String, Int64)",
		"LowCardinality(String)", "LowCardinality(Nullable(String))",
	} {
		t.Run(name, func(t *testing.T) {
			typ, err := types.ParseType(name)
			require.NoError(t, err)
			col, err := ForType(typ)
			require.NoError(t, err)
			col.AppendDefault(3)
			require.Equal(t, 3, col.Len())
		})
	}
}

func TestNullable_Defaults(t *testing.T) {
	n := NewNullable(&Vec[int64]{})
	n.AppendDefault(2)
	require.NoError(t, n.Append(int64(5)))
	require.NoError(t, n.Append(nil))

	require.Equal(t, 4, n.Len())
	require.Nil(t, n.Get(0))
	require.Equal(t, int64(5), n.Get(2))
	require.Nil(t, n.Get(3))
	require.Equal(t, []uint8{1, 1, 0, 1}, n.NullMap())
}

func TestLowCardinality_Interning(t *testing.T) {
	typ, err := types.ParseType("LowCardinality(String)")
	require.NoError(t, err)
	col, err := ForType(typ)
	require.NoError(t, err)
	lc := col.(*LowCardinality)

	for _, v := range []string{"a", "b", "a", "a", "b"} {
		require.NoError(t, lc.Append(v))
	}
	require.Equal(t, 5, lc.Len())
	require.Equal(t, 2, lc.Dict().Len())
	require.Equal(t, "a", lc.Get(0))
	require.Equal(t, "b", lc.Get(4))
}
