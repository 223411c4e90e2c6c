package serde

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/tuannm99/novacol/internal/alias/bx"
	"github.com/tuannm99/novacol/internal/column"
	"github.com/tuannm99/novacol/internal/types"
)

// native is the default serialization for every non-Dynamic type. It
// recurses structurally: Nullable = null map + inner, Array = sizes +
// elements, Tuple = fields in order, LowCardinality = dict + keys.
type native struct {
	t types.Type
}

func (s *native) Type() types.Type { return s.t }

func (s *native) Encode(buf *bytes.Buffer, col column.Column) error {
	switch s.t.Kind {
	case types.KindInt8:
		return encodeVec(buf, col, func(b []byte, v int8) []byte { return append(b, byte(v)) })
	case types.KindInt16:
		return encodeVec(buf, col, bx.AppendI16)
	case types.KindInt32:
		return encodeVec(buf, col, bx.AppendI32)
	case types.KindInt64:
		return encodeVec(buf, col, bx.AppendI64)
	case types.KindUInt8:
		return encodeVec(buf, col, func(b []byte, v uint8) []byte { return append(b, v) })
	case types.KindUInt16:
		return encodeVec(buf, col, bx.AppendU16)
	case types.KindUInt32:
		return encodeVec(buf, col, bx.AppendU32)
	case types.KindUInt64:
		return encodeVec(buf, col, bx.AppendU64)
	case types.KindFloat32:
		return encodeVec(buf, col, bx.AppendF32)
	case types.KindFloat64:
		return encodeVec(buf, col, bx.AppendF64)
	case types.KindBool:
		return encodeVec(buf, col, func(b []byte, v bool) []byte {
			if v {
				return append(b, 1)
			}
			return append(b, 0)
		})
	case types.KindString:
		c, ok := col.(*column.Vec[string])
		if !ok {
			return fmt.Errorf("%w: %T for %s", ErrColumnShape, col, s.t.Name())
		}
		var scratch []byte
		for _, v := range c.Values() {
			scratch = bx.AppendUvarint(scratch[:0], uint64(len(v)))
			buf.Write(scratch)
			buf.WriteString(v)
		}
		return nil

	case types.KindNullable:
		c, ok := col.(*column.Nullable)
		if !ok {
			return fmt.Errorf("%w: %T for %s", ErrColumnShape, col, s.t.Name())
		}
		buf.Write(c.NullMap())
		return For(*s.t.Elem).Encode(buf, c.Inner())

	case types.KindArray, types.KindMap:
		c, ok := col.(*column.Array)
		if !ok {
			return fmt.Errorf("%w: %T for %s", ErrColumnShape, col, s.t.Name())
		}
		var scratch []byte
		for i := 0; i < c.Len(); i++ {
			scratch = bx.AppendUvarint(scratch[:0], c.Size(i))
			buf.Write(scratch)
		}
		return For(c.ElemType()).Encode(buf, c.Elems())

	case types.KindTuple:
		c, ok := col.(*column.Tuple)
		if !ok {
			return fmt.Errorf("%w: %T for %s", ErrColumnShape, col, s.t.Name())
		}
		for i, f := range s.t.Fields {
			if err := For(f.Type).Encode(buf, c.Field(i)); err != nil {
				return err
			}
		}
		return nil

	case types.KindLowCardinality:
		c, ok := col.(*column.LowCardinality)
		if !ok {
			return fmt.Errorf("%w: %T for %s", ErrColumnShape, col, s.t.Name())
		}
		var scratch []byte
		buf.Write(bx.AppendUvarint(scratch, uint64(c.Dict().Len())))
		if err := For(*s.t.Elem).Encode(buf, c.Dict()); err != nil {
			return err
		}
		for _, k := range c.Keys() {
			scratch = bx.AppendUvarint(scratch[:0], uint64(k))
			buf.Write(scratch)
		}
		return nil

	default:
		return fmt.Errorf("%w: no codec for %s", ErrColumnShape, s.t.Name())
	}
}

func (s *native) Decode(r *bytes.Reader, rows int) (column.Column, error) {
	switch s.t.Kind {
	case types.KindInt8:
		return decodeVec(r, rows, 1, func(b []byte) int8 { return int8(b[0]) })
	case types.KindInt16:
		return decodeVec(r, rows, 2, bx.I16)
	case types.KindInt32:
		return decodeVec(r, rows, 4, bx.I32)
	case types.KindInt64:
		return decodeVec(r, rows, 8, bx.I64)
	case types.KindUInt8:
		return decodeVec(r, rows, 1, func(b []byte) uint8 { return b[0] })
	case types.KindUInt16:
		return decodeVec(r, rows, 2, bx.U16)
	case types.KindUInt32:
		return decodeVec(r, rows, 4, bx.U32)
	case types.KindUInt64:
		return decodeVec(r, rows, 8, bx.U64)
	case types.KindFloat32:
		return decodeVec(r, rows, 4, bx.F32)
	case types.KindFloat64:
		return decodeVec(r, rows, 8, bx.F64)
	case types.KindBool:
		return decodeVec(r, rows, 1, func(b []byte) bool { return b[0] != 0 })
	case types.KindString:
		c := &column.Vec[string]{}
		for i := 0; i < rows; i++ {
			n, err := binary.ReadUvarint(r)
			if err != nil {
				return nil, fmt.Errorf("%w: string length: %v", ErrCorruptStream, err)
			}
			b := make([]byte, n)
			if _, err := io.ReadFull(r, b); err != nil {
				return nil, fmt.Errorf("%w: string body: %v", ErrCorruptStream, err)
			}
			c.Push(string(b))
		}
		return c, nil

	case types.KindNullable:
		nulls := make([]uint8, rows)
		if _, err := io.ReadFull(r, nulls); err != nil {
			return nil, fmt.Errorf("%w: null map: %v", ErrCorruptStream, err)
		}
		inner, err := For(*s.t.Elem).Decode(r, rows)
		if err != nil {
			return nil, err
		}
		return column.RestoreNullable(inner, nulls), nil

	case types.KindArray, types.KindMap:
		elemType := s.t.Elem
		if s.t.Kind == types.KindMap {
			kv := types.Type{Kind: types.KindTuple, Fields: []types.TupleField{
				{Type: *s.t.Key}, {Type: *s.t.Value},
			}}
			elemType = &kv
		}
		offsets := make([]int, rows)
		total := 0
		for i := 0; i < rows; i++ {
			n, err := binary.ReadUvarint(r)
			if err != nil {
				return nil, fmt.Errorf("%w: array size: %v", ErrCorruptStream, err)
			}
			total += int(n)
			offsets[i] = total
		}
		elems, err := For(*elemType).Decode(r, total)
		if err != nil {
			return nil, err
		}
		return column.RestoreArray(*elemType, elems, offsets), nil

	case types.KindTuple:
		fields := make([]column.Column, len(s.t.Fields))
		for i, f := range s.t.Fields {
			col, err := For(f.Type).Decode(r, rows)
			if err != nil {
				return nil, err
			}
			fields[i] = col
		}
		return column.NewTuple(s.t, fields), nil

	case types.KindLowCardinality:
		dictLen, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, fmt.Errorf("%w: dict size: %v", ErrCorruptStream, err)
		}
		dict, err := For(*s.t.Elem).Decode(r, int(dictLen))
		if err != nil {
			return nil, err
		}
		keys := make([]uint32, rows)
		for i := 0; i < rows; i++ {
			k, err := binary.ReadUvarint(r)
			if err != nil {
				return nil, fmt.Errorf("%w: dict key: %v", ErrCorruptStream, err)
			}
			if k >= dictLen {
				return nil, fmt.Errorf("%w: dict key %d out of range", ErrCorruptStream, k)
			}
			keys[i] = uint32(k)
		}
		return column.RestoreLowCardinality(*s.t.Elem, dict, keys), nil

	default:
		return nil, fmt.Errorf("%w: no codec for %s", ErrColumnShape, s.t.Name())
	}
}

func encodeVec[T any](buf *bytes.Buffer, col column.Column, appendOne func([]byte, T) []byte) error {
	c, ok := col.(*column.Vec[T])
	if !ok {
		return fmt.Errorf("%w: %T", ErrColumnShape, col)
	}
	var out []byte
	for _, v := range c.Values() {
		out = appendOne(out, v)
	}
	buf.Write(out)
	return nil
}

func decodeVec[T any](r *bytes.Reader, rows, width int, readOne func([]byte) T) (column.Column, error) {
	c := &column.Vec[T]{}
	scratch := make([]byte, width)
	for i := 0; i < rows; i++ {
		if _, err := io.ReadFull(r, scratch); err != nil {
			return nil, fmt.Errorf("%w: fixed value: %v", ErrCorruptStream, err)
		}
		c.Push(readOne(scratch))
	}
	return c, nil
}
