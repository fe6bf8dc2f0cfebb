package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/structpack/record"
	"github.com/arloliu/structpack/table"
)

// parseValue converts a command-line argument for a code of kind k.
func parseValue(k table.Kind, s string) (any, error) {
	switch k { //nolint:exhaustive
	case table.KindInt:
		v, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", s, err)
		}

		return v, nil
	case table.KindUint:
		if v, err := strconv.ParseUint(s, 0, 64); err == nil {
			return v, nil
		}
		v, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", s, err)
		}

		return v, nil
	case table.KindFloat32, table.KindFloat64:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float %q: %w", s, err)
		}

		return v, nil
	default:
		return s, nil
	}
}

// parseFieldValue converts a field assignment value. Repeated scalar fields take a
// comma-separated list.
func parseFieldValue(f *record.Field, s string) (any, error) {
	k := f.Kind()
	if f.Count() == 1 || k == table.KindString || k == table.KindPascalString {
		return parseValue(k, s)
	}

	parts := strings.Split(s, ",")
	if len(parts) != f.Count() {
		return nil, fmt.Errorf("field %q takes %d comma-separated values, got %d", f.Name(), f.Count(), len(parts))
	}
	values := make([]any, len(parts))
	for i, p := range parts {
		v, err := parseValue(k, strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	return values, nil
}

// assign applies name=value arguments to r.
func assign(r *record.Record, args []string) error {
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("invalid assignment %q, want name=value", arg)
		}
		f, err := r.Schema().Field(name)
		if err != nil {
			return err
		}
		v, err := parseFieldValue(f, value)
		if err != nil {
			return err
		}
		if err := r.Set(name, v); err != nil {
			return err
		}
	}

	return nil
}

// decodeHex accepts hex digits with optional whitespace between bytes.
func decodeHex(s string) ([]byte, error) {
	data, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}

	return data, nil
}

func encodeHex(data []byte) string {
	return fmt.Sprintf("% X", data)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case []byte:
		return strconv.Quote(string(x))
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = formatValue(e)
		}

		return "[" + strings.Join(parts, " ") + "]"
	default:
		return fmt.Sprint(v)
	}
}
