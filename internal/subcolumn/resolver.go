// Package subcolumn resolves virtual subcolumn paths of dynamic columns
// and materializes them into dense, row-aligned views.
package subcolumn

import (
	"errors"
	"fmt"

	"github.com/tuannm99/novacol/internal/column"
	"github.com/tuannm99/novacol/internal/serde"
	"github.com/tuannm99/novacol/internal/types"
)

var (
	ErrUnknownSubcolumn      = errors.New("novacol: unknown subcolumn")
	ErrDiscriminatorMismatch = errors.New("novacol: discriminator tags do not match stored value count")
)

// Resolved is the outcome of one subcolumn resolution. Column is nil for
// a dry resolution (no backing column supplied); when present its length
// always equals the backing column's row count.
type Resolved struct {
	Type          types.Type
	Serialization serde.Serialization
	Column        column.Column
}

// Resolve resolves a dotted virtual path (e.g. "Int64", "Array(String)",
// "Int64.null") against the dynamic type's contract and, when backing is
// non-nil, materializes the subcolumn from it.
//
// In strict mode an invalid path is an error naming the bad segment;
// otherwise it degrades to a clean (nil, nil) absence so callers can
// probe speculatively.
func Resolve(path string, reg *types.Registry, backing *column.Dynamic, strict bool) (*Resolved, error) {
	head, rest := types.SplitPath(path)

	t, ok := reg.Lookup(head)
	if !ok {
		if strict {
			return nil, fmt.Errorf("%w: dynamic type doesn't have subcolumn %q", ErrUnknownSubcolumn, head)
		}
		return nil, nil
	}

	res := &Resolved{Type: t, Serialization: serde.For(t)}

	// Exact-name catalog probe: the single source of truth for whether
	// this column instance ever stored rows of this concrete type.
	var global uint8
	var present bool
	if backing != nil {
		if g, ok := backing.GlobalDiscriminatorOf(t.Name()); ok {
			global, present = g, true
			if slot, ok := backing.Variant().SlotByGlobal(g); ok {
				res.Column = slot
			} else {
				present = false
			}
		}
	}

	isNullMap := rest == "null"
	switch {
	case isNullMap:
		res.Type = types.Type{Kind: types.KindUInt8}
		res.Serialization = serde.For(res.Type)
	case rest != "":
		nested, err := resolveNested(rest, res, reg, strict)
		if err != nil || nested == nil {
			return nil, err
		}
		res = nested
	}

	res.Serialization = serde.NewDynamicElement(res.Serialization, t.Name(), isNullMap)

	// Promote so "row is absent from this type" is representable as a
	// value-level null. Depends only on the declared capabilities of the
	// requested type, never on the backing column.
	promote := t.CanBeInsideNullable() || t.IsLowCardinality()
	if !isNullMap && promote {
		res.Type = types.MakeNullableSafe(res.Type)
	}

	if backing != nil {
		out, err := materialize(res, backing, global, present, isNullMap, promote)
		if err != nil {
			return nil, err
		}
		res.Column = out
	}
	return res, nil
}
