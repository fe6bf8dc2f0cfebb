package record

import (
	"fmt"

	"github.com/arloliu/structpack/codec"
	"github.com/arloliu/structpack/format"
	"github.com/arloliu/structpack/table"
)

// FieldSpec describes one field of a schema to Build.
//
// Count is the number of items for scalar codes and the byte width for the string
// codes 's' and 'p'. A nil Default leaves the field zeroed in new records.
type FieldSpec struct {
	Name     string
	Code     format.Code
	Count    int
	Default  any
	ReadOnly bool
}

// Field is a laid-out field of a Schema. Fields are immutable.
type Field struct {
	name     string
	entry    *table.TypeEntry
	count    int
	offset   int
	readOnly bool
	def      any
}

// Name returns the field name, empty for anonymous fields.
func (f *Field) Name() string { return f.name }

// Code returns the field's type code.
func (f *Field) Code() format.Code { return f.entry.Code }

// Kind returns the value kind of the field's type code.
func (f *Field) Kind() table.Kind { return f.entry.Kind }

// Entry returns the resolved table entry.
func (f *Field) Entry() *table.TypeEntry { return f.entry }

// Count returns the repeat count.
func (f *Field) Count() int { return f.count }

// Offset returns the byte offset of the field within a record.
func (f *Field) Offset() int { return f.offset }

// Size returns the number of bytes the field occupies.
func (f *Field) Size() int { return f.count * f.entry.Size }

// ReadOnly reports whether Record.Set rejects the field.
func (f *Field) ReadOnly() bool { return f.readOnly }

// Default returns the default value given at build time, or nil.
func (f *Field) Default() any { return f.def }

// String renders the field the way it would appear in a format string, prefixed
// with its name and offset, e.g. "correl_id L@8".
func (f *Field) String() string {
	spec := string(rune(f.entry.Code))
	if f.count != 1 || f.entry.IsString() {
		spec = fmt.Sprintf("%d%c", f.count, byte(f.entry.Code))
	}

	name := f.name
	if name == "" {
		name = "_"
	}

	s := fmt.Sprintf("%s %s@%d", name, spec, f.offset)
	if f.readOnly {
		s += " ro"
	}

	return s
}

func (f *Field) bytes(buf []byte) []byte {
	return buf[f.offset : f.offset+f.Size()]
}

func (f *Field) decode(buf []byte) any {
	return codec.DecodeField(f.entry, f.count, f.bytes(buf))
}

func (f *Field) encode(buf []byte, v any) error {
	return f.encodeInto(f.bytes(buf), v)
}

func (f *Field) encodeInto(dst []byte, v any) error {
	if err := codec.EncodeField(f.entry, f.count, dst, v); err != nil {
		return fmt.Errorf("field %q: %w", f.name, err)
	}

	return nil
}
