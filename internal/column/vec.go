package column

import "fmt"

// Vec is the dense vector backing every base type. T is the exact Go
// representation returned by Get; Append rejects anything else.
type Vec[T any] struct {
	data []T
}

func (c *Vec[T]) Len() int      { return len(c.data) }
func (c *Vec[T]) Get(i int) any { return c.data[i] }

func (c *Vec[T]) Append(v any) error {
	t, ok := v.(T)
	if !ok {
		return fmt.Errorf("%w: got %T", ErrTypeMismatch, v)
	}
	c.data = append(c.data, t)
	return nil
}

func (c *Vec[T]) AppendDefault(n int) {
	var zero T
	for i := 0; i < n; i++ {
		c.data = append(c.data, zero)
	}
}

// Push is the typed fast path used by codecs.
func (c *Vec[T]) Push(v T) { c.data = append(c.data, v) }

// Values exposes the backing slice; callers must not mutate it.
func (c *Vec[T]) Values() []T { return c.data }

// NewFlags builds the UInt8 validity-flag column used for null maps,
// prefilled with n copies of fill.
func NewFlags(n int, fill uint8) *Vec[uint8] {
	data := make([]uint8, n)
	for i := range data {
		data[i] = fill
	}
	return &Vec[uint8]{data: data}
}
