package column

import (
	"fmt"

	"github.com/tuannm99/novacol/internal/types"
)

// checkValue verifies that v is storable under t without mutating anything.
// Compound appenders run it over the whole row up front so a mismatch in a
// later field or element cannot leave sibling columns misaligned.
func checkValue(t types.Type, v any) error {
	switch t.Kind {
	case types.KindNullable:
		if v == nil {
			return nil
		}
		return checkValue(*t.Elem, v)
	case types.KindLowCardinality:
		return checkValue(*t.Elem, v)
	case types.KindArray:
		vals, ok := v.([]any)
		if !ok {
			return fmt.Errorf("%w: got %T, want []any", ErrTypeMismatch, v)
		}
		for _, ev := range vals {
			if err := checkValue(*t.Elem, ev); err != nil {
				return err
			}
		}
		return nil
	case types.KindMap:
		kv := types.Type{Kind: types.KindTuple, Fields: []types.TupleField{
			{Type: *t.Key}, {Type: *t.Value},
		}}
		return checkValue(types.Type{Kind: types.KindArray, Elem: &kv}, v)
	case types.KindTuple:
		vals, ok := v.([]any)
		if !ok {
			return fmt.Errorf("%w: got %T, want []any", ErrTypeMismatch, v)
		}
		if len(vals) != len(t.Fields) {
			return fmt.Errorf("%w: tuple arity %d, got %d values", ErrTypeMismatch, len(t.Fields), len(vals))
		}
		for j, f := range t.Fields {
			if err := checkValue(f.Type, vals[j]); err != nil {
				return err
			}
		}
		return nil
	case types.KindDynamic:
		if v == nil {
			return nil
		}
		_, err := InferType(NormalizeValue(v))
		return err
	default:
		return checkScalar(t, v)
	}
}

func checkScalar(t types.Type, v any) error {
	var ok bool
	switch t.Kind {
	case types.KindInt8:
		_, ok = v.(int8)
	case types.KindInt16:
		_, ok = v.(int16)
	case types.KindInt32:
		_, ok = v.(int32)
	case types.KindInt64:
		_, ok = v.(int64)
	case types.KindUInt8:
		_, ok = v.(uint8)
	case types.KindUInt16:
		_, ok = v.(uint16)
	case types.KindUInt32:
		_, ok = v.(uint32)
	case types.KindUInt64:
		_, ok = v.(uint64)
	case types.KindFloat32:
		_, ok = v.(float32)
	case types.KindFloat64:
		_, ok = v.(float64)
	case types.KindBool:
		_, ok = v.(bool)
	case types.KindString:
		_, ok = v.(string)
	}
	if !ok {
		return fmt.Errorf("%w: got %T for %s", ErrTypeMismatch, v, t.Name())
	}
	return nil
}
