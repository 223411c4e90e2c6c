package types

// Kind identifies the shape of a Type. Base kinds carry no parameters;
// compound kinds are parametrized (element type, tuple fields, ...).
type Kind uint8

const (
	KindInt8 Kind = iota
	KindInt16
	KindInt32
	KindInt64
	KindUInt8
	KindUInt16
	KindUInt32
	KindUInt64
	KindFloat32
	KindFloat64
	KindBool
	KindString

	KindArray
	KindTuple
	KindMap
	KindNullable
	KindLowCardinality
	KindDynamic
)

// baseKindNames maps canonical spellings of parameterless types to kinds.
var baseKindNames = map[string]Kind{
	"Int8":    KindInt8,
	"Int16":   KindInt16,
	"Int32":   KindInt32,
	"Int64":   KindInt64,
	"UInt8":   KindUInt8,
	"UInt16":  KindUInt16,
	"UInt32":  KindUInt32,
	"UInt64":  KindUInt64,
	"Float32": KindFloat32,
	"Float64": KindFloat64,
	"Bool":    KindBool,
	"String":  KindString,
}

var baseKindSpellings = func() map[Kind]string {
	m := make(map[Kind]string, len(baseKindNames))
	for name, k := range baseKindNames {
		m[k] = name
	}
	return m
}()

// IsBase reports whether k is a parameterless scalar kind.
func (k Kind) IsBase() bool {
	_, ok := baseKindSpellings[k]
	return ok
}

// Capability is the enumerated capability set of a resolved type, checked
// by value at the call sites that decide nullability promotion.
type Capability uint8

const (
	// CapNullableEmbeddable: the type may be wrapped in Nullable(...).
	CapNullableEmbeddable Capability = 1 << iota
	// CapLowCardinality: the type is dictionary-coded.
	CapLowCardinality
)

func (c Capability) Has(want Capability) bool { return c&want == want }
