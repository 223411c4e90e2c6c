package column

import (
	"fmt"

	"github.com/tuannm99/novacol/internal/types"
)

// LowCardinality dictionary-codes its values: the dict column holds each
// distinct value once, keys index into it per row. When the element type
// is Nullable, key 0 is reserved for null.
type LowCardinality struct {
	elemType types.Type
	dict     Column
	keys     []uint32
	index    map[any]uint32
}

func NewLowCardinality(elemType types.Type) (*LowCardinality, error) {
	dict, err := ForType(elemType)
	if err != nil {
		return nil, err
	}
	c := &LowCardinality{
		elemType: elemType,
		dict:     dict,
		index:    make(map[any]uint32),
	}
	if elemType.Kind == types.KindNullable {
		// Reserve the null entry up front so key 0 always means null.
		dict.AppendDefault(1)
		c.index[nil] = 0
	}
	return c, nil
}

func (c *LowCardinality) Len() int      { return len(c.keys) }
func (c *LowCardinality) Get(i int) any { return c.dict.Get(int(c.keys[i])) }

func (c *LowCardinality) Append(v any) error {
	if key, ok := c.index[v]; ok {
		c.keys = append(c.keys, key)
		return nil
	}
	ap, ok := c.dict.(Appender)
	if !ok {
		return ErrTypeMismatch
	}
	if err := ap.Append(v); err != nil {
		return err
	}
	key := uint32(c.dict.Len() - 1)
	c.index[v] = key
	c.keys = append(c.keys, key)
	return nil
}

func (c *LowCardinality) AppendDefault(n int) {
	def := c.elemType.DefaultValue()
	for i := 0; i < n; i++ {
		// Default of a comparable element is always interned.
		if err := c.Append(def); err != nil {
			panic(fmt.Sprintf("novacol: low cardinality default append: %v", err))
		}
	}
}

// AppendNull is only meaningful when the element type is Nullable; the
// subcolumn materializer calls it after promotion to
// LowCardinality(Nullable(...)).
func (c *LowCardinality) AppendNull() {
	c.keys = append(c.keys, c.index[nil])
}

func (c *LowCardinality) Dict() Column         { return c.dict }
func (c *LowCardinality) Keys() []uint32       { return c.keys }
func (c *LowCardinality) ElemType() types.Type { return c.elemType }
