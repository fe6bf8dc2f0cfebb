package codec

import (
	"fmt"

	"github.com/arloliu/structpack/errs"
	"github.com/arloliu/structpack/internal/pool"
	"github.com/arloliu/structpack/table"
)

// Format is a compiled format string. It holds the resolved steps, their offsets, the
// total size and the value count, so repeated pack and unpack calls skip parsing.
//
// A Format is immutable and safe for concurrent use.
type Format struct {
	text    string
	table   *table.Table
	steps   []Step
	offsets []int
	size    int
	count   int
}

// Compile parses and lays out a format string.
//
// Returns errs.ErrBadFormatChar, errs.ErrCountOverflow or errs.ErrSizeOverflow for
// invalid formats.
func Compile(s string) (*Format, error) {
	tbl, steps, err := Parse(s)
	if err != nil {
		return nil, err
	}

	offsets, size, count, err := Layout(steps)
	if err != nil {
		return nil, fmt.Errorf("format %q: %w", s, err)
	}

	return &Format{
		text:    s,
		table:   tbl,
		steps:   steps,
		offsets: offsets,
		size:    size,
		count:   count,
	}, nil
}

// MustCompile is like Compile but panics on an invalid format.
func MustCompile(s string) *Format {
	f, err := Compile(s)
	if err != nil {
		panic(err)
	}

	return f
}

// String returns the source format string.
func (f *Format) String() string {
	return f.text
}

// Table returns the format table selected by the byte order specifier.
func (f *Format) Table() *table.Table {
	return f.table
}

// Steps returns a copy of the parsed steps.
func (f *Format) Steps() []Step {
	out := make([]Step, len(f.steps))
	copy(out, f.steps)

	return out
}

// Size returns the packed byte size.
func (f *Format) Size() int {
	return f.size
}

// NumValues returns the number of values Pack consumes and Unpack produces.
func (f *Format) NumValues() int {
	return f.count
}

// Pack encodes values into a new buffer of exactly Size bytes.
//
// Returns errs.ErrInsufficientArguments or errs.ErrTooManyArguments when the number of
// values does not match, and the coercion errors of the individual entries
// (errs.ErrTypeMismatch, errs.ErrOverflow).
func (f *Format) Pack(values ...any) ([]byte, error) {
	buf := make([]byte, f.size)
	if err := f.packInto(buf, values); err != nil {
		return nil, err
	}

	return buf, nil
}

// PackInto encodes values into dst starting at offset.
//
// dst must hold at least offset+Size bytes, else errs.ErrSizeMismatch. On failure dst
// is left untouched.
func (f *Format) PackInto(dst []byte, offset int, values ...any) error {
	if offset < 0 || len(dst)-offset < f.size {
		return fmt.Errorf("%w: pack_into needs %d bytes at offset %d, buffer has %d",
			errs.ErrSizeMismatch, f.size, offset, len(dst))
	}

	scratch := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(scratch)

	scratch.Reset()
	scratch.ExtendOrGrow(f.size)
	buf := scratch.Bytes()
	clear(buf)

	if err := f.packInto(buf, values); err != nil {
		return err
	}
	copy(dst[offset:], buf)

	return nil
}

func (f *Format) packInto(buf []byte, values []any) error {
	next := 0
	take := func() (any, error) {
		if next >= len(values) {
			return nil, fmt.Errorf("%w: format %q needs %d values, got %d",
				errs.ErrInsufficientArguments, f.text, f.count, len(values))
		}
		v := values[next]
		next++

		return v, nil
	}

	for i, st := range f.steps {
		off := f.offsets[i]
		e := st.Entry

		switch e.Kind { //nolint:exhaustive
		case table.KindPad:
			continue

		case table.KindString, table.KindPascalString:
			if st.Count == 0 && e.Kind == table.KindPascalString {
				continue
			}
			v, err := take()
			if err != nil {
				return err
			}
			if err := EncodeField(e, st.Count, buf[off:], v); err != nil {
				return fmt.Errorf("pack value %d (%c): %w", next-1, byte(e.Code), err)
			}

		default:
			for j := range st.Count {
				v, err := take()
				if err != nil {
					return err
				}
				if err := e.Encode(buf[off+j*e.Size:], v); err != nil {
					return fmt.Errorf("pack value %d (%c): %w", next-1, byte(e.Code), err)
				}
			}
		}
	}

	if next < len(values) {
		return fmt.Errorf("%w: format %q takes %d values, got %d",
			errs.ErrTooManyArguments, f.text, f.count, len(values))
	}

	return nil
}

// Unpack decodes data, which must be exactly Size bytes long, into NumValues values.
//
// Returns errs.ErrSizeMismatch for input of any other length.
func (f *Format) Unpack(data []byte) ([]any, error) {
	if len(data) != f.size {
		return nil, fmt.Errorf("%w: format %q needs %d bytes, got %d",
			errs.ErrSizeMismatch, f.text, f.size, len(data))
	}

	return f.unpack(data), nil
}

// UnpackFrom decodes Size bytes of data starting at offset.
func (f *Format) UnpackFrom(data []byte, offset int) ([]any, error) {
	if offset < 0 || len(data)-offset < f.size {
		return nil, fmt.Errorf("%w: unpack_from needs %d bytes at offset %d, buffer has %d",
			errs.ErrSizeMismatch, f.size, offset, len(data))
	}

	return f.unpack(data[offset : offset+f.size]), nil
}

func (f *Format) unpack(data []byte) []any {
	out := make([]any, f.count)
	n := 0

	for i, st := range f.steps {
		off := f.offsets[i]
		e := st.Entry

		switch e.Kind { //nolint:exhaustive
		case table.KindPad:
			continue

		case table.KindString:
			out[n] = UnpackFixed(data[off : off+st.Count])
			n++

		case table.KindPascalString:
			if st.Count == 0 {
				continue
			}
			out[n] = UnpackPascal(data[off : off+st.Count])
			n++

		default:
			for j := range st.Count {
				out[n] = e.Decode(data[off+j*e.Size:])
				n++
			}
		}
	}

	return out
}

// Pack compiles a format string and encodes values with it.
func Pack(s string, values ...any) ([]byte, error) {
	f, err := Compile(s)
	if err != nil {
		return nil, err
	}

	return f.Pack(values...)
}

// Unpack compiles a format string and decodes data with it.
func Unpack(s string, data []byte) ([]any, error) {
	f, err := Compile(s)
	if err != nil {
		return nil, err
	}

	return f.Unpack(data)
}
