// Package structpack converts between byte buffers and typed values described by
// compact format strings, and builds named fixed-layout records on the same type
// system.
//
// # Format Strings
//
// A format string is an optional byte order character followed by type codes, each
// optionally preceded by a decimal repeat count:
//
//	'@' native order, sizes and alignment (default)
//	'=' standard sizes, host byte order, no alignment
//	'<' standard sizes, little-endian
//	'>' standard sizes, big-endian
//	'!' network order, same as '>'
//
//	x pad byte       c char           b/B signed/unsigned byte
//	h/H short        i/I int          l/L long
//	f float          d double         s fixed string
//	p pascal string  P pointer-sized integer (native order only)
//
// Under standard orders b, B, c, s, p and x are 1 byte, h and H 2 bytes, i, I, l, L
// and f 4 bytes and d 8 bytes. For 's' and 'p' the repeat count is the byte width
// of a single value.
//
// # Basic Usage
//
// Packing and unpacking values:
//
//	data, _ := structpack.Pack("<2sh", "AB", 300) // 41 42 2C 01
//	values, _ := structpack.Unpack("<2sh", data)  // [[]byte("AB") int64(300)]
//
// Defining a record layout:
//
//	msg, _ := structpack.DefineStruct(format.BigEndian, []record.FieldSpec{
//	    {Name: "magic", Code: format.String, Count: 4, Default: "XSDP", ReadOnly: true},
//	    {Name: "correl_id", Code: format.UnsignedLong, Count: 1},
//	})
//	r := msg.New()
//	_ = r.Set("correl_id", 7)
//	wire := r.Bytes()
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the codec and record
// packages. Compile formats with codec.Compile to reuse them, and use the frame and
// store packages to batch or persist records.
package structpack

import (
	"github.com/arloliu/structpack/codec"
	"github.com/arloliu/structpack/format"
	"github.com/arloliu/structpack/record"
)

// CalcSize returns the number of bytes the format string describes.
func CalcSize(f string) (int, error) {
	return codec.CalcSize(f)
}

// Pack encodes values according to the format string.
//
// Signed integer codes accept any Go integer, unsigned codes additionally store
// negative values in two's complement, float codes accept integers and floats, and
// string codes accept []byte or string.
func Pack(f string, values ...any) ([]byte, error) {
	return codec.Pack(f, values...)
}

// Unpack decodes data, which must be exactly CalcSize(f) bytes long.
//
// Signed codes decode to int64, unsigned codes to uint64, float codes to float64 and
// 'c', 's' and 'p' to []byte.
func Unpack(f string, data []byte) ([]any, error) {
	return codec.Unpack(f, data)
}

// DefineStruct builds a record schema under the given byte order.
func DefineStruct(order format.Order, specs []record.FieldSpec, opts ...record.SchemaOption) (*record.Schema, error) {
	return record.Build(order, specs, opts...)
}
