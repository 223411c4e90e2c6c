package subcolumn

import (
	"fmt"
	"strconv"

	"github.com/tuannm99/novacol/internal/column"
	"github.com/tuannm99/novacol/internal/serde"
	"github.com/tuannm99/novacol/internal/types"
)

// resolveNested drills a remainder path into compound structure, given an
// already resolved (type, column, serialization) context. The column in
// ctx may be nil (dry resolution or absent type); the result then carries
// type and serialization only. Absence and strictness semantics are the
// same as Resolve's.
func resolveNested(path string, ctx *Resolved, reg *types.Registry, strict bool) (*Resolved, error) {
	head, rest := types.SplitPath(path)

	switch ctx.Type.Kind {
	case types.KindNullable:
		if head != "null" || rest != "" {
			return absent(strict, ctx.Type, path)
		}
		out := &Resolved{
			Type:          types.Type{Kind: types.KindUInt8},
			Serialization: serde.For(types.Type{Kind: types.KindUInt8}),
		}
		if ctx.Column != nil {
			c := ctx.Column.(*column.Nullable)
			nulls := c.NullMap()
			flags := column.NewFlags(len(nulls), 0)
			copy(flags.Values(), nulls)
			out.Column = flags
		}
		return out, nil

	case types.KindArray:
		if head != "size0" || rest != "" {
			return absent(strict, ctx.Type, path)
		}
		out := &Resolved{
			Type:          types.Type{Kind: types.KindUInt64},
			Serialization: serde.For(types.Type{Kind: types.KindUInt64}),
		}
		if ctx.Column != nil {
			c := ctx.Column.(*column.Array)
			sizes := &column.Vec[uint64]{}
			for i := 0; i < c.Len(); i++ {
				sizes.Push(c.Size(i))
			}
			out.Column = sizes
		}
		return out, nil

	case types.KindMap:
		var side *types.Type
		var field int
		switch head {
		case "keys":
			side, field = ctx.Type.Key, 0
		case "values":
			side, field = ctx.Type.Value, 1
		default:
			return absent(strict, ctx.Type, path)
		}
		arrType := types.Type{Kind: types.KindArray, Elem: side}
		out := &Resolved{Type: arrType, Serialization: serde.For(arrType)}
		if ctx.Column != nil {
			// Maps are stored as Array(Tuple(key, value)); slice out one
			// tuple field under the same offsets.
			c := ctx.Column.(*column.Array)
			kv := c.Elems().(*column.Tuple)
			out.Column = column.RestoreArray(*side, kv.Field(field), c.Offsets())
		}
		if rest != "" {
			return resolveNested(rest, out, reg, strict)
		}
		return out, nil

	case types.KindTuple:
		idx := -1
		for i, f := range ctx.Type.Fields {
			if f.Name != "" && f.Name == head {
				idx = i
				break
			}
		}
		if idx < 0 {
			// Positional access: 1-based, matching the display form.
			if n, err := strconv.Atoi(head); err == nil && n >= 1 && n <= len(ctx.Type.Fields) {
				idx = n - 1
			}
		}
		if idx < 0 {
			return absent(strict, ctx.Type, path)
		}
		ft := ctx.Type.Fields[idx].Type
		out := &Resolved{Type: ft, Serialization: serde.For(ft)}
		if ctx.Column != nil {
			out.Column = ctx.Column.(*column.Tuple).Field(idx)
		}
		if rest != "" {
			return resolveNested(rest, out, reg, strict)
		}
		return out, nil

	case types.KindDynamic:
		// A nested dynamic member resolves with the full dynamic rules,
		// including its own promotion and default-fill regimes.
		var backing *column.Dynamic
		if ctx.Column != nil {
			backing = ctx.Column.(*column.Dynamic)
		}
		return Resolve(path, reg, backing, strict)

	default:
		return absent(strict, ctx.Type, path)
	}
}

func absent(strict bool, t types.Type, path string) (*Resolved, error) {
	if strict {
		return nil, fmt.Errorf("%w: type %s has no subcolumn %q", ErrUnknownSubcolumn, t.Name(), path)
	}
	return nil, nil
}
