// Package serde encodes columns to and from their binary stream form.
// All integers are little-endian; variable-length counts are uvarints.
package serde

import (
	"bytes"
	"errors"

	"github.com/tuannm99/novacol/internal/column"
	"github.com/tuannm99/novacol/internal/types"
)

var (
	ErrCorruptStream = errors.New("novacol: corrupt column stream")
	ErrColumnShape   = errors.New("novacol: column does not match serialization type")
)

// Serialization turns columns of one type into bytes and back. Decode is
// given the row count; everything else the stream describes itself.
type Serialization interface {
	Type() types.Type
	Encode(buf *bytes.Buffer, col column.Column) error
	Decode(r *bytes.Reader, rows int) (column.Column, error)
}

// For returns the default serialization of t.
func For(t types.Type) Serialization {
	if t.Kind == types.KindDynamic {
		return &Dynamic{maxTypes: t.MaxTypes}
	}
	return &native{t: t}
}
