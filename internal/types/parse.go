package types

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseType parses a canonical type spelling into a Type.
// Grammar (simple):
//   - base:     Int64, String, ...
//   - compound: Name(arg, arg, ...) with nesting
//   - dynamic:  Dynamic or Dynamic(max_types=N), 1 <= N <= 255
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Type{}, fmt.Errorf("%w: empty name", ErrUnknownType)
	}

	name, args, hasArgs, err := splitHead(s)
	if err != nil {
		return Type{}, err
	}

	if !hasArgs {
		if k, ok := baseKindNames[name]; ok {
			return Type{Kind: k}, nil
		}
		if name == "Dynamic" {
			return Type{Kind: KindDynamic, MaxTypes: DefaultMaxDynamicTypes}, nil
		}
		return Type{}, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}

	switch name {
	case "Array", "Nullable", "LowCardinality":
		if len(args) != 1 {
			return Type{}, fmt.Errorf("%w: %s expects one argument", ErrInvalidTypeDescriptor, name)
		}
		elem, err := ParseType(args[0])
		if err != nil {
			return Type{}, err
		}
		k := KindArray
		switch name {
		case "Nullable":
			k = KindNullable
			if !elem.CanBeInsideNullable() {
				return Type{}, fmt.Errorf("%w: %q cannot be inside Nullable", ErrInvalidTypeDescriptor, args[0])
			}
		case "LowCardinality":
			k = KindLowCardinality
			// Dictionary coding only supports scalar elements, optionally
			// Nullable. The Nullable branch above already vets its inner.
			if elem.Kind != KindNullable && !elem.CanBeInsideNullable() {
				return Type{}, fmt.Errorf("%w: %q cannot be inside LowCardinality", ErrInvalidTypeDescriptor, args[0])
			}
		}
		return Type{Kind: k, Elem: &elem}, nil

	case "Map":
		if len(args) != 2 {
			return Type{}, fmt.Errorf("%w: Map expects two arguments", ErrInvalidTypeDescriptor)
		}
		key, err := ParseType(args[0])
		if err != nil {
			return Type{}, err
		}
		val, err := ParseType(args[1])
		if err != nil {
			return Type{}, err
		}
		return Type{Kind: KindMap, Key: &key, Value: &val}, nil

	case "Tuple":
		if len(args) == 0 {
			return Type{}, fmt.Errorf("%w: Tuple expects at least one argument", ErrInvalidTypeDescriptor)
		}
		fields := make([]TupleField, 0, len(args))
		for _, arg := range args {
			f, err := parseTupleField(arg)
			if err != nil {
				return Type{}, err
			}
			fields = append(fields, f)
		}
		return Type{Kind: KindTuple, Fields: fields}, nil

	case "Dynamic":
		n, err := parseDynamicArgs(args)
		if err != nil {
			return Type{}, err
		}
		return Type{Kind: KindDynamic, MaxTypes: n}, nil

	default:
		return Type{}, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

// parseDynamicArgs validates the argument list of a Dynamic descriptor.
// The only accepted shape is a single 'max_types = <positive integer>'.
func parseDynamicArgs(args []string) (int, error) {
	if len(args) == 0 {
		return DefaultMaxDynamicTypes, nil
	}
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: Dynamic can have only one optional argument in a form 'max_types=N'", ErrInvalidTypeDescriptor)
	}
	key, val, ok := strings.Cut(args[0], "=")
	if !ok {
		return 0, fmt.Errorf("%w: Dynamic argument should be in a form 'max_types=N'", ErrInvalidTypeDescriptor)
	}
	if strings.TrimSpace(key) != "max_types" {
		return 0, fmt.Errorf("%w: unexpected identifier %q, Dynamic argument should be in a form 'max_types=N'", ErrInvalidTypeDescriptor, strings.TrimSpace(key))
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil || n < 1 || n > MaxDynamicTypes {
		return 0, fmt.Errorf("%w: 'max_types' should be a positive integer between 1 and %d", ErrInvalidTypeDescriptor, MaxDynamicTypes)
	}
	return n, nil
}

// parseTupleField parses "Type" or "name Type". The name, if present, is a
// single identifier separated from the type by a space.
func parseTupleField(s string) (TupleField, error) {
	s = strings.TrimSpace(s)
	if name, rest, ok := strings.Cut(s, " "); ok && isIdent(name) {
		t, err := ParseType(rest)
		if err != nil {
			return TupleField{}, err
		}
		return TupleField{Name: name, Type: t}, nil
	}
	t, err := ParseType(s)
	if err != nil {
		return TupleField{}, err
	}
	return TupleField{Type: t}, nil
}

// splitHead splits "Name(a, b)" into the head identifier and top-level
// comma separated arguments. hasArgs distinguishes "Name" from "Name()".
func splitHead(s string) (name string, args []string, hasArgs bool, err error) {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		if !isIdent(s) {
			return "", nil, false, fmt.Errorf("%w: %q", ErrUnknownType, s)
		}
		return s, nil, false, nil
	}
	if !strings.HasSuffix(s, ")") {
		return "", nil, false, fmt.Errorf("%w: unbalanced parentheses in %q", ErrInvalidTypeDescriptor, s)
	}
	name = strings.TrimSpace(s[:open])
	if !isIdent(name) {
		return "", nil, false, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
	inner := s[open+1 : len(s)-1]
	args, err = splitTopLevel(inner)
	if err != nil {
		return "", nil, false, fmt.Errorf("%w: %q", ErrInvalidTypeDescriptor, s)
	}
	return name, args, true, nil
}

// splitTopLevel splits on commas that are not nested inside parentheses.
func splitTopLevel(s string) ([]string, error) {
	var args []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parentheses")
			}
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses")
	}
	if tail := strings.TrimSpace(s[start:]); tail != "" {
		args = append(args, tail)
	}
	return args, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
