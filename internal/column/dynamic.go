package column

import (
	"fmt"

	"github.com/tuannm99/novacol/internal/types"
)

// Dynamic is the self-describing heterogeneous column: variant storage
// plus the discriminator catalog mapping canonical type names to stable
// global discriminators, bounded by maxTypes distinct concrete types.
type Dynamic struct {
	maxTypes int
	variant  *Variant

	// catalog, indexed by global discriminator (introduction order)
	names        []string
	typeByGlobal []types.Type
	nameToGlobal map[string]uint8
}

func NewDynamic(maxTypes int) (*Dynamic, error) {
	if maxTypes < 1 || maxTypes > types.MaxDynamicTypes {
		return nil, fmt.Errorf("%w: max_types must be between 1 and %d", types.ErrInvalidTypeDescriptor, types.MaxDynamicTypes)
	}
	return &Dynamic{
		maxTypes:     maxTypes,
		variant:      NewVariant(),
		nameToGlobal: make(map[string]uint8),
	}, nil
}

func (d *Dynamic) Type() types.Type {
	return types.Type{Kind: types.KindDynamic, MaxTypes: d.maxTypes}
}

func (d *Dynamic) MaxTypes() int     { return d.maxTypes }
func (d *Dynamic) Variant() *Variant { return d.variant }
func (d *Dynamic) Len() int          { return d.variant.NumRows() }

func (d *Dynamic) Get(i int) any {
	local := d.variant.locals[i]
	if local == NullDiscriminator {
		return nil
	}
	return d.variant.slots[local].Get(d.variant.offsets[i])
}

// Append infers the concrete type of v and stores it; nil becomes a null
// row.
func (d *Dynamic) Append(v any) error {
	if v == nil {
		d.AppendNull()
		return nil
	}
	v = NormalizeValue(v)
	t, err := InferType(v)
	if err != nil {
		return err
	}
	return d.AppendTyped(t, v)
}

// AppendTyped stores v under concrete type t, growing the catalog when t
// was not seen before. Past the maxTypes bound it fails with
// ErrTooManyTypes.
func (d *Dynamic) AppendTyped(t types.Type, v any) error {
	name := t.Name()
	g, ok := d.nameToGlobal[name]
	if !ok {
		if len(d.names) >= d.maxTypes {
			return fmt.Errorf("%w: bound is %d", ErrTooManyTypes, d.maxTypes)
		}
		col, err := ForType(t)
		if err != nil {
			return err
		}
		g = uint8(len(d.names))
		d.names = append(d.names, name)
		d.typeByGlobal = append(d.typeByGlobal, t)
		d.nameToGlobal[name] = g
		d.variant.addSlot(name, col, g)
	}
	local, _ := d.variant.GlobalToLocal(g)
	return d.variant.appendRow(local, v)
}

func (d *Dynamic) AppendNull() { d.variant.appendNullRow() }

// AppendDefault appends nulls: the default value of Dynamic is null.
func (d *Dynamic) AppendDefault(n int) {
	for i := 0; i < n; i++ {
		d.AppendNull()
	}
}

// GlobalDiscriminatorOf looks up the catalog by exact canonical name.
// Absence means this column instance never stored a value of that type.
func (d *Dynamic) GlobalDiscriminatorOf(name string) (uint8, bool) {
	g, ok := d.nameToGlobal[name]
	return g, ok
}

// TypeNames returns the catalog's canonical names in global discriminator
// order; callers must not mutate it.
func (d *Dynamic) TypeNames() []string { return d.names }

func (d *Dynamic) TypeByGlobal(g uint8) types.Type { return d.typeByGlobal[g] }
