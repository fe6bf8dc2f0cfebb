package record

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/structpack/codec"
	"github.com/arloliu/structpack/errs"
	"github.com/arloliu/structpack/format"
	"github.com/arloliu/structpack/internal/hash"
	"github.com/arloliu/structpack/internal/options"
	"github.com/arloliu/structpack/table"
)

// Schema is the fixed layout shared by records: ordered fields, a name index, the
// total size and the default image new records start from.
//
// A Schema is immutable once built and safe to share between goroutines.
type Schema struct {
	name        string
	order       format.Order
	table       *table.Table
	fields      []*Field
	index       map[string]int
	size        int
	defaults    []byte
	fingerprint uint64
}

// Build lays out specs in order under the given byte order.
//
// Offsets are assigned left to right, aligned only under native order. A spec
// becomes a field unless its code is pad or it has a zero count with a code other
// than 's'; such specs still advance the layout and may not carry a name.
//
// Returns errs.ErrInvalidByteOrder, errs.ErrInvalidRepeatCount, errs.ErrBadFormatChar,
// errs.ErrDuplicateFieldName, errs.ErrFieldNameNotAllowed, errs.ErrSizeOverflow or
// errs.ErrZeroSizeSchema, or the encode error of an unusable default value.
func Build(order format.Order, specs []FieldSpec, opts ...SchemaOption) (*Schema, error) {
	cfg := &SchemaConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	tbl, err := table.Lookup(order)
	if err != nil {
		return nil, err
	}

	s := &Schema{
		name:   cfg.name,
		order:  order,
		table:  tbl,
		fields: make([]*Field, 0, len(specs)),
		index:  make(map[string]int, len(specs)),
	}

	offset := 0
	for i, spec := range specs {
		if spec.Count < 0 {
			return nil, fmt.Errorf("%w: spec %d (%q) has count %d", errs.ErrInvalidRepeatCount, i, spec.Name, spec.Count)
		}

		entry, err := tbl.Entry(spec.Code)
		if err != nil {
			return nil, fmt.Errorf("spec %d (%q): %w", i, spec.Name, err)
		}

		offset = entry.AlignOffset(offset)
		if offset > codec.MaxSize || spec.Count > (codec.MaxSize-offset)/entry.Size {
			return nil, fmt.Errorf("%w: at spec %d (%q)", errs.ErrSizeOverflow, i, spec.Name)
		}

		if isField(entry, spec.Count) {
			if spec.Name != "" {
				if _, dup := s.index[spec.Name]; dup {
					return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateFieldName, spec.Name)
				}
				s.index[spec.Name] = len(s.fields)
			}

			s.fields = append(s.fields, &Field{
				name:     spec.Name,
				entry:    entry,
				count:    spec.Count,
				offset:   offset,
				readOnly: spec.ReadOnly,
				def:      spec.Default,
			})
		} else if spec.Name != "" {
			return nil, fmt.Errorf("%w: %q (%d%c)", errs.ErrFieldNameNotAllowed, spec.Name, spec.Count, byte(spec.Code))
		}

		offset += spec.Count * entry.Size
	}

	if offset == 0 {
		return nil, errs.ErrZeroSizeSchema
	}
	s.size = offset

	s.defaults = make([]byte, s.size)
	for _, f := range s.fields {
		if f.def == nil {
			continue
		}
		if err := f.encode(s.defaults, f.def); err != nil {
			return nil, fmt.Errorf("default value: %w", err)
		}
	}

	s.fingerprint = s.computeFingerprint()

	return s, nil
}

// MustBuild is like Build but panics on error. It is meant for package-level schema
// variables.
func MustBuild(order format.Order, specs []FieldSpec, opts ...SchemaOption) *Schema {
	s, err := Build(order, specs, opts...)
	if err != nil {
		panic(err)
	}

	return s
}

func isField(entry *table.TypeEntry, count int) bool {
	if entry.Kind == table.KindPad {
		return false
	}

	return count != 0 || entry.Kind == table.KindString
}

func (s *Schema) computeFingerprint() uint64 {
	parts := make([]string, 0, len(s.fields)+3)
	parts = append(parts, s.name, string(rune(s.order)), strconv.Itoa(s.size))
	for _, f := range s.fields {
		parts = append(parts, fmt.Sprintf("%s:%c:%d:%d", f.name, byte(f.entry.Code), f.count, f.offset))
	}

	return hash.Fingerprint(parts...)
}

// Name returns the schema name given with WithName.
func (s *Schema) Name() string { return s.name }

// Order returns the byte order specifier the schema was built with.
func (s *Schema) Order() format.Order { return s.order }

// Table returns the format table the schema's fields were resolved in.
func (s *Schema) Table() *table.Table { return s.table }

// Size returns the record size in bytes.
func (s *Schema) Size() int { return s.size }

// Fingerprint returns a 64-bit hash of the schema name, order and field layout.
// Records of schemas with equal fingerprints share a binary layout.
func (s *Schema) Fingerprint() uint64 { return s.fingerprint }

// NumFields returns the number of fields, named and anonymous.
func (s *Schema) NumFields() int { return len(s.fields) }

// NumNamed returns the number of named fields.
func (s *Schema) NumNamed() int { return len(s.index) }

// Fields returns the fields in layout order.
func (s *Schema) Fields() []*Field {
	out := make([]*Field, len(s.fields))
	copy(out, s.fields)

	return out
}

// Field looks up a named field.
func (s *Schema) Field(name string) (*Field, error) {
	i, ok := s.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownField, name)
	}

	return s.fields[i], nil
}

// Defaults returns a copy of the default image.
func (s *Schema) Defaults() []byte {
	out := make([]byte, s.size)
	copy(out, s.defaults)

	return out
}

// New creates a record initialized from the default image.
func (s *Schema) New() *Record {
	return &Record{schema: s, buf: s.Defaults()}
}

// NewFrom creates a record holding a copy of data, zero-padded when shorter than
// Size and truncated when longer.
func (s *Schema) NewFrom(data []byte) *Record {
	buf := make([]byte, s.size)
	copy(buf, data)

	return &Record{schema: s, buf: buf}
}

// String describes the schema, e.g. `xsdp{>, 32 bytes: magic 4s@0 ro, ...}`.
func (s *Schema) String() string {
	var sb strings.Builder
	sb.WriteString(s.name)
	fmt.Fprintf(&sb, "{%c, %d bytes:", byte(s.order), s.size)
	for i, f := range s.fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte(' ')
		sb.WriteString(f.String())
	}
	sb.WriteByte('}')

	return sb.String()
}
