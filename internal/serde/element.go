package serde

import (
	"bytes"

	"github.com/tuannm99/novacol/internal/column"
	"github.com/tuannm99/novacol/internal/types"
)

// DynamicElement decorates the serialization of one virtual subcolumn of
// a dynamic column. It adds the addressing a codec needs to route reads
// and writes to the right variant slot (the type-name tag) or to the
// synthetic validity flags (the null-map flavor); the byte format itself
// is the inner serialization's.
type DynamicElement struct {
	inner Serialization

	// TypeName is the catalog key this element addresses.
	TypeName string
	// IsNullMap selects the validity-flag flavor over the data flavor.
	IsNullMap bool
}

func NewDynamicElement(inner Serialization, typeName string, isNullMap bool) *DynamicElement {
	return &DynamicElement{inner: inner, TypeName: typeName, IsNullMap: isNullMap}
}

func (s *DynamicElement) Type() types.Type     { return s.inner.Type() }
func (s *DynamicElement) Inner() Serialization { return s.inner }

func (s *DynamicElement) Encode(buf *bytes.Buffer, col column.Column) error {
	return s.inner.Encode(buf, col)
}

func (s *DynamicElement) Decode(r *bytes.Reader, rows int) (column.Column, error) {
	return s.inner.Decode(r, rows)
}
