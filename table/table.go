// Package table implements the per-byte-order format tables of the structpack codec.
//
// A Table maps each type code of the format-string grammar to a TypeEntry carrying the
// code's byte width, alignment and value behaviour (its Kind). Four tables exist, one
// per distinct byte order specifier:
//
//	'@' native    host widths and alignment, host byte order
//	'=' standard  fixed widths, no alignment, host byte order
//	'<' standard  fixed widths, no alignment, little-endian
//	'>' '!'       fixed widths, no alignment, big-endian
//
// Standard widths are 1 for b, B, c, s, p and x, 2 for h and H, 4 for i, I, l, L and f,
// and 8 for d. The pointer code P exists only in the native table.
//
// Tables are built once at package initialization and are immutable; they are safe for
// concurrent use.
package table

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/arloliu/structpack/endian"
	"github.com/arloliu/structpack/errs"
	"github.com/arloliu/structpack/format"
)

// Table is the set of type entries for one byte order specifier.
type Table struct {
	order   format.Order
	native  bool
	engine  endian.EndianEngine
	entries [256]*TypeEntry
}

// Order returns the byte order specifier the table was selected by. The standard
// host-order table reports format.Standard, the big-endian table format.BigEndian.
func (t *Table) Order() format.Order {
	return t.order
}

// Engine returns the byte order engine used by the table's entries.
func (t *Table) Engine() endian.EndianEngine {
	return t.engine
}

// IsNative reports whether the table uses host widths and alignment.
func (t *Table) IsNative() bool {
	return t.native
}

// Entry returns the entry for code, or errs.ErrBadFormatChar if the table has none.
func (t *Table) Entry(code format.Code) (*TypeEntry, error) {
	if e := t.entries[code]; e != nil {
		return e, nil
	}

	return nil, fmt.Errorf("%w: %q in %s order", errs.ErrBadFormatChar, byte(code), t.order)
}

// Entries returns the table's entries ordered by code.
func (t *Table) Entries() []*TypeEntry {
	out := make([]*TypeEntry, 0, 16)
	for _, e := range t.entries {
		if e != nil {
			out = append(out, e)
		}
	}

	return out
}

func (t *Table) add(code format.Code, kind Kind, size, align int) {
	t.entries[code] = &TypeEntry{
		Code:   code,
		Kind:   kind,
		Size:   size,
		Align:  align,
		engine: t.engine,
	}
}

// layoutOf reports the size and alignment a C compiler would give T inside
// struct { char c; T x; }.
func layoutOf[T any]() (size, align int) {
	var s struct {
		c byte
		x T
	}

	return int(unsafe.Sizeof(s.x)), int(unsafe.Offsetof(s.x))
}

// nativeLong reports the width and alignment of C long: 4 bytes on Windows and
// 32-bit targets, pointer width elsewhere.
func nativeLong() (size, align int) {
	if runtime.GOOS == "windows" || unsafe.Sizeof(uintptr(0)) == 4 {
		return layoutOf[int32]()
	}

	return layoutOf[int64]()
}

func newNativeTable() *Table {
	t := &Table{order: format.Native, native: true, engine: endian.GetNativeEngine()}

	t.add(format.Pad, KindPad, 1, 0)
	t.add(format.SignedChar, KindInt, 1, 0)
	t.add(format.UnsignedChar, KindUint, 1, 0)
	t.add(format.Char, KindChar, 1, 0)
	t.add(format.String, KindString, 1, 0)
	t.add(format.PascalString, KindPascalString, 1, 0)

	size, align := layoutOf[int16]()
	t.add(format.Short, KindInt, size, align)
	t.add(format.UnsignedShort, KindUint, size, align)

	size, align = layoutOf[int32]()
	t.add(format.Int, KindInt, size, align)
	t.add(format.UnsignedInt, KindUint, size, align)

	size, align = nativeLong()
	t.add(format.Long, KindInt, size, align)
	t.add(format.UnsignedLong, KindUint, size, align)

	size, align = layoutOf[float32]()
	t.add(format.Float, KindFloat32, size, align)

	size, align = layoutOf[float64]()
	t.add(format.Double, KindFloat64, size, align)

	size, align = layoutOf[uintptr]()
	t.add(format.Pointer, KindUint, size, align)

	return t
}

func newStandardTable(order format.Order, engine endian.EndianEngine) *Table {
	t := &Table{order: order, engine: engine}

	t.add(format.Pad, KindPad, 1, 0)
	t.add(format.SignedChar, KindInt, 1, 0)
	t.add(format.UnsignedChar, KindUint, 1, 0)
	t.add(format.Char, KindChar, 1, 0)
	t.add(format.String, KindString, 1, 0)
	t.add(format.PascalString, KindPascalString, 1, 0)
	t.add(format.Short, KindInt, 2, 0)
	t.add(format.UnsignedShort, KindUint, 2, 0)
	t.add(format.Int, KindInt, 4, 0)
	t.add(format.UnsignedInt, KindUint, 4, 0)
	t.add(format.Long, KindInt, 4, 0)
	t.add(format.UnsignedLong, KindUint, 4, 0)
	t.add(format.Float, KindFloat32, 4, 0)
	t.add(format.Double, KindFloat64, 8, 0)

	return t
}

var (
	nativeTable   = newNativeTable()
	standardTable = newStandardTable(format.Standard, endian.ForOrder(format.Standard))
	littleTable   = newStandardTable(format.LittleEndian, endian.ForOrder(format.LittleEndian))
	bigTable      = newStandardTable(format.BigEndian, endian.ForOrder(format.BigEndian))
)

// Lookup returns the table selected by a byte order specifier.
//
// Returns errs.ErrInvalidByteOrder for characters outside '@', '=', '<', '>', '!'.
func Lookup(order format.Order) (*Table, error) {
	switch order {
	case format.Native:
		return nativeTable, nil
	case format.Standard:
		return standardTable, nil
	case format.LittleEndian:
		return littleTable, nil
	case format.BigEndian, format.Network:
		return bigTable, nil
	default:
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidByteOrder, byte(order))
	}
}

// Native returns the native table.
func Native() *Table {
	return nativeTable
}
