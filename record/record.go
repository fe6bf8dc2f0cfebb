package record

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/arloliu/structpack/errs"
	"github.com/arloliu/structpack/internal/pool"
)

// Record is a fixed-size byte buffer laid out by a Schema. Field reads and writes go
// straight to the buffer.
//
// A Record exclusively owns its buffer. It is not safe for concurrent mutation.
type Record struct {
	schema *Schema
	buf    []byte
}

// Schema returns the record's schema.
func (r *Record) Schema() *Schema { return r.schema }

// Len returns the record size, always Schema().Size().
func (r *Record) Len() int { return len(r.buf) }

// Get decodes a named field.
//
// String fields return []byte, scalar fields with count 1 return a single value and
// repeated fields return a []any.
func (r *Record) Get(name string) (any, error) {
	f, err := r.schema.Field(name)
	if err != nil {
		return nil, err
	}

	return f.decode(r.buf), nil
}

// Set encodes v into a named field.
//
// Returns errs.ErrUnknownField, errs.ErrReadOnlyField, or the encode error of v.
// The record is unchanged on error.
func (r *Record) Set(name string, v any) error {
	f, err := r.schema.Field(name)
	if err != nil {
		return err
	}
	if f.readOnly {
		return fmt.Errorf("%w: %q", errs.ErrReadOnlyField, name)
	}

	return r.set(f, v)
}

// SetAny is like Set but ignores the read-only flag. It is meant for initializers
// that build a record before handing it out.
func (r *Record) SetAny(name string, v any) error {
	f, err := r.schema.Field(name)
	if err != nil {
		return err
	}

	return r.set(f, v)
}

func (r *Record) set(f *Field, v any) error {
	scratch := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(scratch)

	scratch.Reset()
	scratch.MustWrite(f.bytes(r.buf))
	if err := f.encodeInto(scratch.Bytes(), v); err != nil {
		return err
	}
	copy(f.bytes(r.buf), scratch.Bytes())

	return nil
}

// Bytes returns a copy of the record buffer.
func (r *Record) Bytes() []byte {
	out := make([]byte, len(r.buf))
	copy(out, r.buf)

	return out
}

// Raw returns the record buffer itself. Writes through the returned slice bypass the
// read-only checks of Set.
func (r *Record) Raw() []byte { return r.buf }

// All iterates over the fields in layout order with their decoded values, anonymous
// fields included.
func (r *Record) All() iter.Seq2[*Field, any] {
	return func(yield func(*Field, any) bool) {
		for _, f := range r.schema.fields {
			if !yield(f, f.decode(r.buf)) {
				return
			}
		}
	}
}

// Reset restores the default image.
func (r *Record) Reset() {
	copy(r.buf, r.schema.defaults)
}

// Clone returns a record with its own copy of the buffer.
func (r *Record) Clone() *Record {
	return &Record{schema: r.schema, buf: r.Bytes()}
}

// WriteTo writes the record buffer to w.
func (r *Record) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.buf)
	return int64(n), err
}

// ReadFrom fills the whole record buffer from rd. The record is unchanged unless
// Len bytes could be read.
func (r *Record) ReadFrom(rd io.Reader) (int64, error) {
	scratch := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(scratch)

	scratch.Reset()
	scratch.ExtendOrGrow(len(r.buf))
	n, err := io.ReadFull(rd, scratch.Bytes())
	if err != nil {
		return int64(n), err
	}
	copy(r.buf, scratch.Bytes())

	return int64(n), nil
}

// String renders the named field values, e.g. `{magic: "XSDP", version: [1 0]}`.
func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for f, v := range r.All() {
		if f.name == "" {
			continue
		}
		if !first {
			sb.WriteString(", ")
		}
		first = false

		sb.WriteString(f.name)
		sb.WriteString(": ")
		if b, ok := v.([]byte); ok {
			fmt.Fprintf(&sb, "%q", b)
		} else {
			fmt.Fprint(&sb, v)
		}
	}
	sb.WriteByte('}')

	return sb.String()
}
