package codec

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/arloliu/structpack/errs"
	"github.com/arloliu/structpack/table"
)

// MaxPascalLength is the largest length a pascal string prefix byte can record.
const MaxPascalLength = 255

// PackFixed copies a string value into dst, zero-padding short input and silently
// truncating long input to len(dst).
func PackFixed(dst []byte, v any) error {
	b, err := table.Bytes(v)
	if err != nil {
		return err
	}

	n := copy(dst, b)
	clear(dst[n:])

	return nil
}

// PackPascal stores a string value as a length byte followed by up to len(dst)-1
// payload bytes and zero padding. The prefix saturates at MaxPascalLength.
func PackPascal(dst []byte, v any) error {
	b, err := table.Bytes(v)
	if err != nil {
		return err
	}

	if len(dst) == 0 {
		return nil
	}

	n := min(len(b), len(dst)-1)
	dst[0] = byte(min(n, MaxPascalLength))
	copy(dst[1:], b[:n])
	clear(dst[1+n:])

	return nil
}

// UnpackFixed returns a copy of src.
func UnpackFixed(src []byte) []byte {
	out := make([]byte, len(src))
	copy(out, src)

	return out
}

// UnpackPascal returns a copy of the payload of a pascal string field. A length byte
// larger than the field is clamped to the field's payload width.
func UnpackPascal(src []byte) []byte {
	if len(src) == 0 {
		return []byte{}
	}

	n := int(src[0])
	if n >= len(src) {
		n = len(src) - 1
	}

	return bytes.Clone(src[1 : 1+n])
}

// EncodeField writes a value for a field of count items of entry into dst, which must
// be at least count*entry.Size bytes.
//
// String kinds treat count as the byte width. Scalars with count 1 take a single
// value; larger counts take an ordered sequence ([]any or any slice or array) of
// exactly count elements, else errs.ErrFieldCountMismatch.
func EncodeField(entry *table.TypeEntry, count int, dst []byte, v any) error {
	switch entry.Kind { //nolint:exhaustive
	case table.KindString:
		return PackFixed(dst[:count], v)
	case table.KindPascalString:
		return PackPascal(dst[:count], v)
	case table.KindPad:
		return fmt.Errorf("%w: pad code carries no value", errs.ErrBadFormatChar)
	}

	if count == 1 {
		return entry.Encode(dst, v)
	}

	elems, ok := sequence(v)
	if !ok {
		return fmt.Errorf("%w: value for a field of %d items must be a sequence, got %T", errs.ErrTypeMismatch, count, v)
	}
	if len(elems) != count {
		return fmt.Errorf("%w: expected %d elements, got %d", errs.ErrFieldCountMismatch, count, len(elems))
	}

	for i, elem := range elems {
		if err := entry.Encode(dst[i*entry.Size:], elem); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}

	return nil
}

// DecodeField reads a field of count items of entry from src.
//
// String kinds return []byte, scalars with count 1 return a single value and larger
// counts return a []any of count values.
func DecodeField(entry *table.TypeEntry, count int, src []byte) any {
	switch entry.Kind { //nolint:exhaustive
	case table.KindString:
		return UnpackFixed(src[:count])
	case table.KindPascalString:
		return UnpackPascal(src[:count])
	}

	if count == 1 {
		return entry.Decode(src)
	}

	out := make([]any, count)
	for i := range out {
		out[i] = entry.Decode(src[i*entry.Size:])
	}

	return out
}

// sequence flattens a slice or array value into []any. Strings are not sequences.
func sequence(v any) ([]any, bool) {
	if elems, ok := v.([]any); ok {
		return elems, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	elems := make([]any, rv.Len())
	for i := range elems {
		elems[i] = rv.Index(i).Interface()
	}

	return elems, true
}
