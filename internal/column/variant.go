package column

import (
	"fmt"
	"sort"
)

// NullDiscriminator tags rows that hold no value at all.
const NullDiscriminator uint8 = 255

// Variant is the tagged-union storage: a compact list of dense per-type
// slots plus one local discriminator and one in-slot offset per row.
//
// Physical slots are kept ordered by canonical type name, so introducing a
// new type can reassign local ids. Global ids (assigned by the owning
// Dynamic in introduction order) stay stable; the two remap tables below
// translate between them.
type Variant struct {
	locals  []uint8 // per-row local discriminator
	offsets []int   // per-row position inside its slot
	slots   []Column
	names   []string // canonical name per local slot, sorted

	localToGlobal []uint8
	globalToLocal map[uint8]uint8
}

func NewVariant() *Variant {
	return &Variant{globalToLocal: make(map[uint8]uint8)}
}

func (v *Variant) NumRows() int  { return len(v.locals) }
func (v *Variant) NumSlots() int { return len(v.slots) }

// LocalDiscriminators returns the per-row tag array; callers must not
// mutate it.
func (v *Variant) LocalDiscriminators() []uint8 { return v.locals }

// GlobalToLocal resolves a global discriminator to its live physical
// slot, reporting false when no slot exists for it.
func (v *Variant) GlobalToLocal(g uint8) (uint8, bool) {
	l, ok := v.globalToLocal[g]
	return l, ok
}

func (v *Variant) LocalToGlobal(l uint8) uint8 { return v.localToGlobal[l] }

func (v *Variant) SlotByLocal(l uint8) Column { return v.slots[l] }

func (v *Variant) SlotByGlobal(g uint8) (Column, bool) {
	l, ok := v.globalToLocal[g]
	if !ok {
		return nil, false
	}
	return v.slots[l], true
}

func (v *Variant) SlotName(l uint8) string { return v.names[l] }

// OffsetAt returns row i's position inside its slot; undefined for null
// rows.
func (v *Variant) OffsetAt(i int) int { return v.offsets[i] }

// addSlot inserts a new physical slot for the given global discriminator,
// keeping slots sorted by canonical name. Existing local ids at or past
// the insertion point shift by one; the row tag array is remapped in
// place.
func (v *Variant) addSlot(name string, col Column, global uint8) uint8 {
	pos := sort.SearchStrings(v.names, name)

	v.names = append(v.names, "")
	copy(v.names[pos+1:], v.names[pos:])
	v.names[pos] = name

	v.slots = append(v.slots, nil)
	copy(v.slots[pos+1:], v.slots[pos:])
	v.slots[pos] = col

	v.localToGlobal = append(v.localToGlobal, 0)
	copy(v.localToGlobal[pos+1:], v.localToGlobal[pos:])
	v.localToGlobal[pos] = global

	for i, l := range v.locals {
		if l != NullDiscriminator && l >= uint8(pos) {
			v.locals[i] = l + 1
		}
	}
	for g, l := range v.globalToLocal {
		if l >= uint8(pos) {
			v.globalToLocal[g] = l + 1
		}
	}
	v.globalToLocal[global] = uint8(pos)
	return uint8(pos)
}

func (v *Variant) appendNullRow() {
	v.locals = append(v.locals, NullDiscriminator)
	v.offsets = append(v.offsets, 0)
}

func (v *Variant) appendRow(local uint8, val any) error {
	slot := v.slots[local]
	ap, ok := slot.(Appender)
	if !ok {
		return fmt.Errorf("%w: slot %q is not appendable", ErrTypeMismatch, v.names[local])
	}
	pos := slot.Len()
	if err := ap.Append(val); err != nil {
		return err
	}
	v.locals = append(v.locals, local)
	v.offsets = append(v.offsets, pos)
	return nil
}
