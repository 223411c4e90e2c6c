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

// Dynamic serializes a dynamic column: catalog header (bound + canonical
// type names in global order), one global discriminator byte per row,
// then each slot dense in global order.
type Dynamic struct {
	maxTypes int
}

func NewDynamic(maxTypes int) *Dynamic { return &Dynamic{maxTypes: maxTypes} }

func (s *Dynamic) Type() types.Type {
	return types.Type{Kind: types.KindDynamic, MaxTypes: s.maxTypes}
}

func (s *Dynamic) Encode(buf *bytes.Buffer, col column.Column) error {
	d, ok := col.(*column.Dynamic)
	if !ok {
		return fmt.Errorf("%w: %T for %s", ErrColumnShape, col, s.Type().Name())
	}

	var scratch []byte
	scratch = bx.AppendUvarint(scratch, uint64(d.MaxTypes()))
	names := d.TypeNames()
	scratch = bx.AppendUvarint(scratch, uint64(len(names)))
	for _, name := range names {
		scratch = bx.AppendUvarint(scratch, uint64(len(name)))
		scratch = append(scratch, name...)
	}
	buf.Write(scratch)

	v := d.Variant()
	for _, local := range v.LocalDiscriminators() {
		if local == column.NullDiscriminator {
			buf.WriteByte(column.NullDiscriminator)
		} else {
			buf.WriteByte(v.LocalToGlobal(local))
		}
	}

	for g := range names {
		slot, ok := v.SlotByGlobal(uint8(g))
		if !ok {
			return fmt.Errorf("%w: catalog entry %q has no slot", ErrColumnShape, names[g])
		}
		scratch = bx.AppendUvarint(scratch[:0], uint64(slot.Len()))
		buf.Write(scratch)
		if err := For(d.TypeByGlobal(uint8(g))).Encode(buf, slot); err != nil {
			return err
		}
	}
	return nil
}

func (s *Dynamic) Decode(r *bytes.Reader, rows int) (column.Column, error) {
	maxTypes, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("%w: dynamic bound: %v", ErrCorruptStream, err)
	}
	numTypes, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog size: %v", ErrCorruptStream, err)
	}
	if numTypes > maxTypes || maxTypes > types.MaxDynamicTypes {
		return nil, fmt.Errorf("%w: catalog of %d types with bound %d", ErrCorruptStream, numTypes, maxTypes)
	}

	names := make([]string, numTypes)
	typs := make([]types.Type, numTypes)
	for i := range names {
		n, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, fmt.Errorf("%w: type name length: %v", ErrCorruptStream, err)
		}
		b := make([]byte, n)
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, fmt.Errorf("%w: type name: %v", ErrCorruptStream, err)
		}
		names[i] = string(b)
		t, err := types.ParseType(names[i])
		if err != nil {
			return nil, fmt.Errorf("%w: catalog entry %q: %v", ErrCorruptStream, names[i], err)
		}
		typs[i] = t
	}

	globals := make([]uint8, rows)
	if _, err := io.ReadFull(r, globals); err != nil {
		return nil, fmt.Errorf("%w: discriminators: %v", ErrCorruptStream, err)
	}

	slots := make([]column.Column, numTypes)
	for g := range slots {
		slotRows, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, fmt.Errorf("%w: slot size: %v", ErrCorruptStream, err)
		}
		slot, err := For(typs[g]).Decode(r, int(slotRows))
		if err != nil {
			return nil, err
		}
		slots[g] = slot
	}

	return column.RestoreDynamic(int(maxTypes), names, globals, slots)
}
