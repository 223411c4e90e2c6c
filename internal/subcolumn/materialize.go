package subcolumn

import (
	"fmt"

	"github.com/tuannm99/novacol/internal/column"
	"github.com/tuannm99/novacol/internal/types"
)

// materialize builds the dense output column of length backing.Len().
//
// When the requested type is present in the catalog (a global
// discriminator was found) it scatters the slot's values across the rows
// carrying its tag. Otherwise it synthesizes an all-default (or all-null)
// column without ever probing variant storage.
func materialize(res *Resolved, backing *column.Dynamic, global uint8, present, isNullMap, promoted bool) (column.Column, error) {
	rows := backing.Len()
	if !present {
		if isNullMap {
			return column.NewFlags(rows, 1), nil
		}
		out, err := column.ForType(res.Type)
		if err != nil {
			return nil, err
		}
		out.AppendDefault(rows)
		return out, nil
	}

	v := backing.Variant()
	local, ok := v.GlobalToLocal(global)
	if !ok {
		// Catalog retained a name whose slot is gone; same shape as an
		// absent type.
		return materialize(res, backing, 0, false, isNullMap, promoted)
	}

	if isNullMap {
		c := nullMapCreator{locals: v.LocalDiscriminators(), local: local}
		return c.create(), nil
	}
	c := variantCreator{
		locals:       v.LocalDiscriminators(),
		local:        local,
		outType:      res.Type,
		makeNullable: promoted,
	}
	return c.create(res.Column)
}

// nullMapCreator builds the synthetic validity flags of one variant slot:
// row i is 1 exactly when its tag differs from the slot.
type nullMapCreator struct {
	locals []uint8
	local  uint8
}

func (c nullMapCreator) create() column.Column {
	flags := column.NewFlags(len(c.locals), 0)
	data := flags.Values()
	for i, l := range c.locals {
		if l != c.local {
			data[i] = 1
		}
	}
	return flags
}

// variantCreator scatters a slot-dense source column across the parent
// rows: matching tags consume the next source value in order, the rest
// get a null (when the subcolumn was promoted nullable) or the type's
// default.
type variantCreator struct {
	locals       []uint8
	local        uint8
	outType      types.Type
	makeNullable bool
}

func (c variantCreator) create(src column.Column) (column.Column, error) {
	out, err := column.ForType(c.outType)
	if err != nil {
		return nil, err
	}
	ap, _ := out.(column.Appender)
	na, canNull := out.(column.NullAppender)

	next := 0
	for _, l := range c.locals {
		if l != c.local {
			if c.makeNullable && canNull {
				na.AppendNull()
			} else {
				out.AppendDefault(1)
			}
			continue
		}
		if next >= src.Len() {
			return nil, fmt.Errorf("%w: tags reference more than %d values", ErrDiscriminatorMismatch, src.Len())
		}
		if ap == nil {
			return nil, fmt.Errorf("%w: output for %s is not appendable", ErrDiscriminatorMismatch, c.outType.Name())
		}
		if err := ap.Append(src.Get(next)); err != nil {
			return nil, err
		}
		next++
	}
	if next != src.Len() {
		return nil, fmt.Errorf("%w: consumed %d of %d stored values", ErrDiscriminatorMismatch, next, src.Len())
	}
	return out, nil
}
