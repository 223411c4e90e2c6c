package types

import "errors"

var (
	ErrUnknownType           = errors.New("novacol: unknown type")
	ErrInvalidTypeDescriptor = errors.New("novacol: invalid type descriptor")
)
