package column

import (
	"fmt"

	"github.com/tuannm99/novacol/internal/types"
)

// Array stores variable-length rows as a flat element column plus
// cumulative end offsets, one per row.
type Array struct {
	elemType types.Type
	offsets  []int
	elems    Column
}

func NewArray(elemType types.Type, elems Column) *Array {
	return &Array{elemType: elemType, elems: elems}
}

func (c *Array) Len() int { return len(c.offsets) }

func (c *Array) Get(i int) any {
	start := 0
	if i > 0 {
		start = c.offsets[i-1]
	}
	end := c.offsets[i]
	out := make([]any, 0, end-start)
	for j := start; j < end; j++ {
		out = append(out, c.elems.Get(j))
	}
	return out
}

func (c *Array) Append(v any) error {
	vals, ok := v.([]any)
	if !ok {
		return fmt.Errorf("%w: got %T, want []any", ErrTypeMismatch, v)
	}
	// Check every element first so a mismatch mid-row cannot leave stray
	// elements below the next row's offset.
	for _, ev := range vals {
		if err := checkValue(c.elemType, ev); err != nil {
			return err
		}
	}
	ap, ok := c.elems.(Appender)
	if !ok {
		return ErrTypeMismatch
	}
	for _, ev := range vals {
		if err := ap.Append(ev); err != nil {
			return err
		}
	}
	c.offsets = append(c.offsets, c.elems.Len())
	return nil
}

// AppendDefault appends empty rows.
func (c *Array) AppendDefault(n int) {
	for i := 0; i < n; i++ {
		c.offsets = append(c.offsets, c.elems.Len())
	}
}

// Size of row i, used by the size0 subcolumn.
func (c *Array) Size(i int) uint64 {
	start := 0
	if i > 0 {
		start = c.offsets[i-1]
	}
	return uint64(c.offsets[i] - start)
}

func (c *Array) Elems() Column        { return c.elems }
func (c *Array) ElemType() types.Type { return c.elemType }
func (c *Array) Offsets() []int       { return c.offsets }
