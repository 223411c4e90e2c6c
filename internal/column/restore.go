package column

import (
	"fmt"
	"sort"

	"github.com/tuannm99/novacol/internal/types"
)

// Restore constructors rebuild columns from decoded parts. They trust
// shapes the codec already validated and only re-check cross-part
// invariants.

func RestoreNullable(inner Column, nulls []uint8) *Nullable {
	return &Nullable{inner: inner, nulls: nulls}
}

func RestoreArray(elemType types.Type, elems Column, offsets []int) *Array {
	return &Array{elemType: elemType, elems: elems, offsets: offsets}
}

func RestoreLowCardinality(elemType types.Type, dict Column, keys []uint32) *LowCardinality {
	index := make(map[any]uint32, dict.Len())
	for i := 0; i < dict.Len(); i++ {
		index[dict.Get(i)] = uint32(i)
	}
	return &LowCardinality{elemType: elemType, dict: dict, keys: keys, index: index}
}

// RestoreDynamic rebuilds a dynamic column from its catalog (names and
// slots in global discriminator order) and the per-row global
// discriminators (NullDiscriminator for null rows).
func RestoreDynamic(maxTypes int, names []string, globals []uint8, slots []Column) (*Dynamic, error) {
	d, err := NewDynamic(maxTypes)
	if err != nil {
		return nil, err
	}
	if len(names) != len(slots) {
		return nil, fmt.Errorf("novacol: %d type names but %d slots", len(names), len(slots))
	}
	if len(names) > maxTypes {
		return nil, fmt.Errorf("%w: bound is %d, catalog has %d", ErrTooManyTypes, maxTypes, len(names))
	}

	for g, name := range names {
		t, err := types.ParseType(name)
		if err != nil {
			return nil, err
		}
		if _, dup := d.nameToGlobal[name]; dup {
			return nil, fmt.Errorf("novacol: duplicate catalog entry %q", name)
		}
		d.names = append(d.names, name)
		d.typeByGlobal = append(d.typeByGlobal, t)
		d.nameToGlobal[name] = uint8(g)
	}

	v := d.variant
	order := make([]int, len(names))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return names[order[a]] < names[order[b]] })

	v.names = make([]string, len(names))
	v.slots = make([]Column, len(names))
	v.localToGlobal = make([]uint8, len(names))
	for local, g := range order {
		v.names[local] = names[g]
		v.slots[local] = slots[g]
		v.localToGlobal[local] = uint8(g)
		v.globalToLocal[uint8(g)] = uint8(local)
	}

	counts := make([]int, len(names))
	v.locals = make([]uint8, len(globals))
	v.offsets = make([]int, len(globals))
	for i, g := range globals {
		if g == NullDiscriminator {
			v.locals[i] = NullDiscriminator
			continue
		}
		if int(g) >= len(names) {
			return nil, fmt.Errorf("novacol: discriminator %d out of range", g)
		}
		local := v.globalToLocal[g]
		v.locals[i] = local
		v.offsets[i] = counts[local]
		counts[local]++
	}
	for local, n := range counts {
		// counts is indexed by local here since we bumped per local id
		if v.slots[local].Len() != n {
			return nil, fmt.Errorf("novacol: slot %q has %d values, tags reference %d",
				v.names[local], v.slots[local].Len(), n)
		}
	}
	return d, nil
}
