package column

import (
	"fmt"

	"github.com/tuannm99/novacol/internal/types"
)

// InferType maps a Go value to the canonical type a Dynamic column stores
// it under. Arrays infer from their elements and require a homogeneous
// element type.
func InferType(v any) (types.Type, error) {
	switch tv := v.(type) {
	case int8:
		return types.Type{Kind: types.KindInt8}, nil
	case int16:
		return types.Type{Kind: types.KindInt16}, nil
	case int32:
		return types.Type{Kind: types.KindInt32}, nil
	case int64, int:
		return types.Type{Kind: types.KindInt64}, nil
	case uint8:
		return types.Type{Kind: types.KindUInt8}, nil
	case uint16:
		return types.Type{Kind: types.KindUInt16}, nil
	case uint32:
		return types.Type{Kind: types.KindUInt32}, nil
	case uint64, uint:
		return types.Type{Kind: types.KindUInt64}, nil
	case float32:
		return types.Type{Kind: types.KindFloat32}, nil
	case float64:
		return types.Type{Kind: types.KindFloat64}, nil
	case bool:
		return types.Type{Kind: types.KindBool}, nil
	case string:
		return types.Type{Kind: types.KindString}, nil
	case []any:
		if len(tv) == 0 {
			// No element to look at; store empty arrays as Array(String).
			elem := types.Type{Kind: types.KindString}
			return types.Type{Kind: types.KindArray, Elem: &elem}, nil
		}
		elem, err := InferType(tv[0])
		if err != nil {
			return types.Type{}, err
		}
		want := elem.Name()
		for _, ev := range tv[1:] {
			et, err := InferType(ev)
			if err != nil {
				return types.Type{}, err
			}
			if et.Name() != want {
				return types.Type{}, fmt.Errorf("%w: mixed array element types %s and %s", ErrTypeMismatch, want, et.Name())
			}
		}
		return types.Type{Kind: types.KindArray, Elem: &elem}, nil
	default:
		return types.Type{}, fmt.Errorf("%w: cannot infer type of %T", ErrTypeMismatch, v)
	}
}

// NormalizeValue rewrites platform-width ints to the fixed-width
// representation the vectors store (int -> int64, uint -> uint64),
// recursing into arrays.
func NormalizeValue(v any) any {
	switch tv := v.(type) {
	case int:
		return int64(tv)
	case uint:
		return uint64(tv)
	case []any:
		out := make([]any, len(tv))
		for i, ev := range tv {
			out[i] = NormalizeValue(ev)
		}
		return out
	default:
		return v
	}
}
