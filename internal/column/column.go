package column

import (
	"errors"
	"fmt"

	"github.com/tuannm99/novacol/internal/types"
)

var (
	ErrTypeMismatch = errors.New("novacol: value does not match column type")
	ErrTooManyTypes = errors.New("novacol: dynamic column holds too many types")
)

// Column is a read/grow view over a dense vector of values. Get returns
// the Go representation of row i (nil for a null). Implementations are not
// safe for concurrent mutation; concurrent reads are fine.
type Column interface {
	Len() int
	Get(i int) any
	// AppendDefault appends n logical defaults (null for nullable shapes).
	AppendDefault(n int)
}

// Appender is implemented by columns that accept dynamically typed values.
type Appender interface {
	Append(v any) error
}

// NullAppender is implemented by columns that can represent a value-level
// null (Nullable, LowCardinality over Nullable, Dynamic).
type NullAppender interface {
	AppendNull()
}

// ForType builds an empty column able to hold values of t.
func ForType(t types.Type) (Column, error) {
	switch t.Kind {
	case types.KindInt8:
		return &Vec[int8]{}, nil
	case types.KindInt16:
		return &Vec[int16]{}, nil
	case types.KindInt32:
		return &Vec[int32]{}, nil
	case types.KindInt64:
		return &Vec[int64]{}, nil
	case types.KindUInt8:
		return &Vec[uint8]{}, nil
	case types.KindUInt16:
		return &Vec[uint16]{}, nil
	case types.KindUInt32:
		return &Vec[uint32]{}, nil
	case types.KindUInt64:
		return &Vec[uint64]{}, nil
	case types.KindFloat32:
		return &Vec[float32]{}, nil
	case types.KindFloat64:
		return &Vec[float64]{}, nil
	case types.KindBool:
		return &Vec[bool]{}, nil
	case types.KindString:
		return &Vec[string]{}, nil
	case types.KindNullable:
		inner, err := ForType(*t.Elem)
		if err != nil {
			return nil, err
		}
		return NewNullable(inner), nil
	case types.KindArray:
		elems, err := ForType(*t.Elem)
		if err != nil {
			return nil, err
		}
		return NewArray(*t.Elem, elems), nil
	case types.KindTuple:
		fields := make([]Column, len(t.Fields))
		for i, f := range t.Fields {
			col, err := ForType(f.Type)
			if err != nil {
				return nil, err
			}
			fields[i] = col
		}
		return NewTuple(t, fields), nil
	case types.KindMap:
		// Maps are stored as Array(Tuple(key, value)).
		kv := types.Type{Kind: types.KindTuple, Fields: []types.TupleField{
			{Type: *t.Key}, {Type: *t.Value},
		}}
		elems, err := ForType(kv)
		if err != nil {
			return nil, err
		}
		return NewArray(kv, elems), nil
	case types.KindLowCardinality:
		return NewLowCardinality(*t.Elem)
	case types.KindDynamic:
		return NewDynamic(t.MaxTypes)
	default:
		return nil, fmt.Errorf("novacol: no column for type %q", t.Name())
	}
}
