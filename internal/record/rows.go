// Package record converts external row values into the representation
// dynamic columns store.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tuannm99/novacol/internal/column"
)

var (
	ErrRowShape      = errors.New("novacol: rows must be a JSON array")
	ErrValueShape    = errors.New("novacol: unsupported row value")
	ErrNumberTooWide = errors.New("novacol: number does not fit a 64-bit value")
)

// DecodeJSONRows parses a JSON array of heterogeneous values into the Go
// representation a dynamic column stores: integral numbers become int64,
// other numbers float64, arrays stay []any. Objects are rejected; there
// is no canonical type to store them under.
func DecodeJSONRows(data []byte) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRowShape, err)
	}

	rows := make([]any, len(raw))
	for i, v := range raw {
		cv, err := convertValue(v)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows[i] = cv
	}
	return rows, nil
}

func convertValue(v any) (any, error) {
	switch tv := v.(type) {
	case nil, bool, string:
		return tv, nil
	case json.Number:
		if n, err := tv.Int64(); err == nil {
			return n, nil
		}
		if f, err := tv.Float64(); err == nil {
			return f, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrNumberTooWide, tv.String())
	case []any:
		out := make([]any, len(tv))
		for i, ev := range tv {
			cv, err := convertValue(ev)
			if err != nil {
				return nil, err
			}
			out[i] = cv
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrValueShape, v)
	}
}

// AppendRows stores the given values in order; each row's concrete type
// is inferred from the value itself.
func AppendRows(d *column.Dynamic, rows []any) error {
	for i, v := range rows {
		if err := d.Append(v); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}
