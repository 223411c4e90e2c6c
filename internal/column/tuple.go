package column

import (
	"fmt"

	"github.com/tuannm99/novacol/internal/types"
)

// Tuple stores one column per field; all field columns stay row-aligned.
type Tuple struct {
	typ    types.Type
	fields []Column
}

func NewTuple(typ types.Type, fields []Column) *Tuple {
	return &Tuple{typ: typ, fields: fields}
}

func (c *Tuple) Len() int {
	if len(c.fields) == 0 {
		return 0
	}
	return c.fields[0].Len()
}

func (c *Tuple) Get(i int) any {
	out := make([]any, len(c.fields))
	for j, f := range c.fields {
		out[j] = f.Get(i)
	}
	return out
}

func (c *Tuple) Append(v any) error {
	vals, ok := v.([]any)
	if !ok {
		return fmt.Errorf("%w: got %T, want []any", ErrTypeMismatch, v)
	}
	if len(vals) != len(c.fields) {
		return fmt.Errorf("%w: tuple arity %d, got %d values", ErrTypeMismatch, len(c.fields), len(vals))
	}
	// Check the whole row first so a mismatch in a later field cannot
	// leave the field columns misaligned.
	for j, f := range c.typ.Fields {
		if err := checkValue(f.Type, vals[j]); err != nil {
			return err
		}
	}
	for j, f := range c.fields {
		ap, ok := f.(Appender)
		if !ok {
			return ErrTypeMismatch
		}
		if err := ap.Append(vals[j]); err != nil {
			return err
		}
	}
	return nil
}

func (c *Tuple) AppendDefault(n int) {
	for _, f := range c.fields {
		f.AppendDefault(n)
	}
}

func (c *Tuple) NumFields() int     { return len(c.fields) }
func (c *Tuple) Field(i int) Column { return c.fields[i] }
func (c *Tuple) Type() types.Type   { return c.typ }
