package table

import (
	"fmt"

	"github.com/arloliu/structpack/endian"
	"github.com/arloliu/structpack/errs"
	"github.com/arloliu/structpack/format"
	"github.com/arloliu/structpack/ieee754"
)

// Kind is the value behaviour of a type code.
type Kind uint8

const (
	KindPad          Kind = iota + 1 // KindPad writes zero bytes and carries no value.
	KindChar                         // KindChar is a single byte carried as a length-1 []byte.
	KindInt                          // KindInt is a sign-extended integer decoded as int64.
	KindUint                         // KindUint is a zero-extended integer decoded as uint64.
	KindFloat32                      // KindFloat32 is an IEEE-754 single decoded as float64.
	KindFloat64                      // KindFloat64 is an IEEE-754 double decoded as float64.
	KindString                       // KindString is a fixed-width byte string.
	KindPascalString                 // KindPascalString is a length-prefixed byte string.
)

func (k Kind) String() string {
	switch k {
	case KindPad:
		return "Pad"
	case KindChar:
		return "Char"
	case KindInt:
		return "Int"
	case KindUint:
		return "Uint"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindString:
		return "String"
	case KindPascalString:
		return "PascalString"
	default:
		return "Unknown"
	}
}

// TypeEntry describes one type code understood by a Table.
//
// Size is the byte width of one item; for the string kinds it is the width of one
// byte of the string and the step count gives the field width. Align is the
// alignment requirement, 0 meaning unaligned.
type TypeEntry struct {
	Code  format.Code
	Kind  Kind
	Size  int
	Align int

	engine endian.EndianEngine
}

// IsString reports whether the entry is one of the string kinds, whose repeat count is
// a byte width rather than a number of values.
func (e *TypeEntry) IsString() bool {
	return e.Kind == KindString || e.Kind == KindPascalString
}

// AlignOffset rounds off up to the entry's alignment.
func (e *TypeEntry) AlignOffset(off int) int {
	if e.Align <= 1 {
		return off
	}

	return (off + e.Align - 1) / e.Align * e.Align
}

// Encode writes a single scalar value into dst[:e.Size].
//
// Integer kinds accept any Go integer value; float kinds accept integers and floats;
// the char kind accepts a length-1 []byte or string. Values that cannot be coerced
// return errs.ErrTypeMismatch, values outside the representable range return
// errs.ErrOverflow. The caller guarantees len(dst) >= e.Size.
func (e *TypeEntry) Encode(dst []byte, v any) error {
	switch e.Kind {
	case KindChar:
		b, ok := charByte(v)
		if !ok {
			return fmt.Errorf("%w: char format requires a byte string of length 1, got %T", errs.ErrTypeMismatch, v)
		}
		dst[0] = b

		return nil

	case KindInt:
		x, err := toInt64(v)
		if err != nil {
			return err
		}
		e.putUint(dst, uint64(x)) //nolint:gosec

		return nil

	case KindUint:
		x, err := toUint64(v)
		if err != nil {
			return err
		}
		e.putUint(dst, x)

		return nil

	case KindFloat32:
		x, err := toFloat64(v)
		if err != nil {
			return err
		}
		bits, err := ieee754.Float32Bits(x)
		if err != nil {
			return err
		}
		e.engine.PutUint32(dst, bits)

		return nil

	case KindFloat64:
		x, err := toFloat64(v)
		if err != nil {
			return err
		}
		bits, err := ieee754.Float64Bits(x)
		if err != nil {
			return err
		}
		e.engine.PutUint64(dst, bits)

		return nil

	default:
		return fmt.Errorf("%w: code %q has no scalar encoder", errs.ErrBadFormatChar, byte(e.Code))
	}
}

// Decode reads a single scalar value from src[:e.Size].
//
// Signed kinds return int64, unsigned kinds uint64, float kinds float64 and the char
// kind a fresh length-1 []byte. Pad and string kinds return nil.
func (e *TypeEntry) Decode(src []byte) any {
	switch e.Kind {
	case KindChar:
		return []byte{src[0]}
	case KindInt:
		return e.getInt(src)
	case KindUint:
		return e.getUint(src)
	case KindFloat32:
		return ieee754.Float32FromBits(e.engine.Uint32(src))
	case KindFloat64:
		return ieee754.Float64FromBits(e.engine.Uint64(src))
	default:
		return nil
	}
}

func (e *TypeEntry) putUint(dst []byte, x uint64) {
	switch e.Size {
	case 1:
		dst[0] = byte(x)
	case 2:
		e.engine.PutUint16(dst, uint16(x)) //nolint:gosec
	case 4:
		e.engine.PutUint32(dst, uint32(x)) //nolint:gosec
	case 8:
		e.engine.PutUint64(dst, x)
	}
}

func (e *TypeEntry) getUint(src []byte) uint64 {
	switch e.Size {
	case 1:
		return uint64(src[0])
	case 2:
		return uint64(e.engine.Uint16(src))
	case 4:
		return uint64(e.engine.Uint32(src))
	default:
		return e.engine.Uint64(src)
	}
}

func (e *TypeEntry) getInt(src []byte) int64 {
	x := e.getUint(src)
	switch e.Size {
	case 1:
		return int64(int8(x)) //nolint:gosec
	case 2:
		return int64(int16(x)) //nolint:gosec
	case 4:
		return int64(int32(x)) //nolint:gosec
	default:
		return int64(x) //nolint:gosec
	}
}
