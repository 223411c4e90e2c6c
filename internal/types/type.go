package types

import (
	"strconv"
	"strings"
)

// DefaultMaxDynamicTypes is the bound a Dynamic type gets when the
// descriptor omits the max_types argument.
const DefaultMaxDynamicTypes = 32

// MaxDynamicTypes is the hard upper bound on distinct concrete types a
// dynamic column may hold. Discriminators are stored in a single byte and
// 255 is reserved for the null discriminator.
const MaxDynamicTypes = 255

// Type is an immutable description of a column type. Values are compared
// by canonical name, never structurally: Array(String) and
// Array(Nullable(String)) are distinct everywhere in this package.
type Type struct {
	Kind Kind

	// Elem is set for Array, Nullable and LowCardinality.
	Elem *Type
	// Key/Value are set for Map.
	Key   *Type
	Value *Type
	// Fields is set for Tuple.
	Fields []TupleField
	// MaxTypes is set for Dynamic.
	MaxTypes int
}

// TupleField is one positional (optionally named) member of a Tuple type.
type TupleField struct {
	Name string // empty for unnamed fields
	Type Type
}

// Name returns the canonical spelling of the type. Parsing the result
// with ParseType yields an equivalent Type.
func (t Type) Name() string {
	var sb strings.Builder
	t.writeName(&sb)
	return sb.String()
}

func (t Type) writeName(sb *strings.Builder) {
	switch t.Kind {
	case KindArray:
		sb.WriteString("Array(")
		t.Elem.writeName(sb)
		sb.WriteByte(')')
	case KindNullable:
		sb.WriteString("Nullable(")
		t.Elem.writeName(sb)
		sb.WriteByte(')')
	case KindLowCardinality:
		sb.WriteString("LowCardinality(")
		t.Elem.writeName(sb)
		sb.WriteByte(')')
	case KindMap:
		sb.WriteString("Map(")
		t.Key.writeName(sb)
		sb.WriteString(", ")
		t.Value.writeName(sb)
		sb.WriteByte(')')
	case KindTuple:
		sb.WriteString("Tuple(")
		for i, f := range t.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			if f.Name != "" {
				sb.WriteString(f.Name)
				sb.WriteByte(' ')
			}
			f.Type.writeName(sb)
		}
		sb.WriteByte(')')
	case KindDynamic:
		if t.MaxTypes == DefaultMaxDynamicTypes {
			sb.WriteString("Dynamic")
		} else {
			sb.WriteString("Dynamic(max_types=")
			sb.WriteString(strconv.Itoa(t.MaxTypes))
			sb.WriteByte(')')
		}
	default:
		sb.WriteString(baseKindSpellings[t.Kind])
	}
}

// Capabilities returns the declared capability set of the type. Promotion
// decisions depend only on this, never on column contents.
func (t Type) Capabilities() Capability {
	var c Capability
	if t.Kind.IsBase() {
		c |= CapNullableEmbeddable
	}
	if t.Kind == KindLowCardinality {
		c |= CapLowCardinality
	}
	return c
}

// CanBeInsideNullable reports whether Nullable(t) is a valid type.
func (t Type) CanBeInsideNullable() bool {
	return t.Capabilities().Has(CapNullableEmbeddable)
}

// IsLowCardinality reports whether the type is dictionary-coded.
func (t Type) IsLowCardinality() bool {
	return t.Capabilities().Has(CapLowCardinality)
}

// MakeNullableSafe wraps t so that "row absent" is representable as a
// value-level null, when the type allows it:
//   - Nullable(x) stays as is
//   - LowCardinality(x) becomes LowCardinality(Nullable(x)) to keep the
//     dictionary coding
//   - nullable-embeddable types become Nullable(t)
//   - everything else is returned unchanged and relies on default fill
func MakeNullableSafe(t Type) Type {
	switch {
	case t.Kind == KindNullable:
		return t
	case t.Kind == KindLowCardinality:
		if t.Elem.Kind == KindNullable {
			return t
		}
		inner := MakeNullableSafe(*t.Elem)
		return Type{Kind: KindLowCardinality, Elem: &inner}
	case t.CanBeInsideNullable():
		elem := t
		return Type{Kind: KindNullable, Elem: &elem}
	default:
		return t
	}
}

// DefaultValue returns the logical default of the type, as a Go value in
// the same representation Column.Get uses.
func (t Type) DefaultValue() any {
	switch t.Kind {
	case KindInt8:
		return int8(0)
	case KindInt16:
		return int16(0)
	case KindInt32:
		return int32(0)
	case KindInt64:
		return int64(0)
	case KindUInt8:
		return uint8(0)
	case KindUInt16:
		return uint16(0)
	case KindUInt32:
		return uint32(0)
	case KindUInt64:
		return uint64(0)
	case KindFloat32:
		return float32(0)
	case KindFloat64:
		return float64(0)
	case KindBool:
		return false
	case KindString:
		return ""
	case KindArray, KindMap:
		return []any{}
	case KindTuple:
		vals := make([]any, len(t.Fields))
		for i, f := range t.Fields {
			vals[i] = f.Type.DefaultValue()
		}
		return vals
	case KindNullable, KindDynamic:
		return nil
	case KindLowCardinality:
		return t.Elem.DefaultValue()
	default:
		return nil
	}
}
