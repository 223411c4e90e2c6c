package column

// Nullable pairs an inner column with a null map. The inner column holds a
// default at null positions so both stay row-aligned.
type Nullable struct {
	inner Column
	nulls []uint8
}

func NewNullable(inner Column) *Nullable {
	return &Nullable{inner: inner, nulls: make([]uint8, 0, inner.Len())}
}

func (c *Nullable) Len() int { return len(c.nulls) }

func (c *Nullable) Get(i int) any {
	if c.nulls[i] != 0 {
		return nil
	}
	return c.inner.Get(i)
}

func (c *Nullable) Append(v any) error {
	if v == nil {
		c.AppendNull()
		return nil
	}
	ap, ok := c.inner.(Appender)
	if !ok {
		return ErrTypeMismatch
	}
	if err := ap.Append(v); err != nil {
		return err
	}
	c.nulls = append(c.nulls, 0)
	return nil
}

// AppendDefault appends nulls: the default of a Nullable is null.
func (c *Nullable) AppendDefault(n int) {
	for i := 0; i < n; i++ {
		c.AppendNull()
	}
}

func (c *Nullable) AppendNull() {
	c.inner.AppendDefault(1)
	c.nulls = append(c.nulls, 1)
}

func (c *Nullable) Inner() Column { return c.inner }

// NullMap returns the 0/1 validity flags; callers must not mutate it.
func (c *Nullable) NullMap() []uint8 { return c.nulls }
