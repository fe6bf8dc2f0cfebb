package table

import (
	"fmt"
	"math"
	"reflect"

	"github.com/arloliu/structpack/errs"
)

// toInt64 coerces an integer value for a signed code.
//
// Any Go integer is accepted; unsigned values above math.MaxInt64 overflow. The value
// is truncated to the code width on write, as the legacy codec does.
func toInt64(v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() { //nolint:exhaustive
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d does not fit a signed integer", errs.ErrOverflow, u)
		}

		return int64(u), nil
	default:
		return 0, fmt.Errorf("%w: required argument is not an integer, got %T", errs.ErrTypeMismatch, v)
	}
}

// toUint64 coerces an integer value for an unsigned code. Negative values are stored
// in two's complement.
func toUint64(v any) (uint64, error) {
	switch x := v.(type) {
	case uint64:
		return x, nil
	case uint:
		return uint64(x), nil
	case int:
		return uint64(x), nil //nolint:gosec
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() { //nolint:exhaustive
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint64(rv.Int()), nil //nolint:gosec
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), nil
	default:
		return 0, fmt.Errorf("%w: required argument is not an integer, got %T", errs.ErrTypeMismatch, v)
	}
}

// toFloat64 coerces a float or integer value for a float code.
func toFloat64(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() { //nolint:exhaustive
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), nil
	default:
		return 0, fmt.Errorf("%w: required argument is not a float, got %T", errs.ErrTypeMismatch, v)
	}
}

func charByte(v any) (byte, bool) {
	switch x := v.(type) {
	case []byte:
		if len(x) == 1 {
			return x[0], true
		}
	case string:
		if len(x) == 1 {
			return x[0], true
		}
	}

	return 0, false
}

// Bytes returns the byte content of a string-kind value, which must be a []byte or a
// string.
func Bytes(v any) ([]byte, error) {
	switch x := v.(type) {
	case []byte:
		return x, nil
	case string:
		return []byte(x), nil
	default:
		return nil, fmt.Errorf("%w: required argument is not a string, got %T", errs.ErrTypeMismatch, v)
	}
}
