// Package format defines the vocabulary shared by the structpack packages: byte order
// specifiers, type codes and compression identifiers.
//
// The constants mirror the characters of the format-string grammar:
//
//	format := [order] step*
//	order  := '@' | '=' | '<' | '>' | '!'
//	step   := ws* [count] code
//	code   := 'x'|'c'|'b'|'B'|'h'|'H'|'i'|'I'|'l'|'L'|'f'|'d'|'s'|'p'|'P'
package format

import "strings"

type (
	// Order is a byte order specifier, the optional leading character of a format string.
	Order byte
	// Code is a single type code character of a format string.
	Code byte
	// CompressionType identifies the payload compression of a frame.
	CompressionType uint8
)

const (
	Native       Order = '@' // Native uses host widths, alignment and byte order.
	Standard     Order = '=' // Standard uses fixed widths in host byte order.
	LittleEndian Order = '<' // LittleEndian uses fixed widths in little-endian order.
	BigEndian    Order = '>' // BigEndian uses fixed widths in big-endian order.
	Network      Order = '!' // Network is an alias of BigEndian.
)

const (
	Pad           Code = 'x' // Pad is a zero byte that consumes no value.
	Char          Code = 'c' // Char is a single byte carried as a length-1 byte string.
	SignedChar    Code = 'b' // SignedChar is a signed 8-bit integer.
	UnsignedChar  Code = 'B' // UnsignedChar is an unsigned 8-bit integer.
	Octet         Code = 'B' // Octet is an alias of UnsignedChar.
	Short         Code = 'h' // Short is a signed 16-bit integer.
	UnsignedShort Code = 'H' // UnsignedShort is an unsigned 16-bit integer.
	Int           Code = 'i' // Int is a signed int (32-bit in standard orders).
	UnsignedInt   Code = 'I' // UnsignedInt is an unsigned int (32-bit in standard orders).
	Long          Code = 'l' // Long is a signed long (32-bit in standard orders).
	UnsignedLong  Code = 'L' // UnsignedLong is an unsigned long (32-bit in standard orders).
	Float         Code = 'f' // Float is an IEEE-754 single precision number.
	Double        Code = 'd' // Double is an IEEE-754 double precision number.
	String        Code = 's' // String is a fixed-width byte string; the count is its width.
	PascalString  Code = 'p' // PascalString is a length-prefixed byte string; the count includes the prefix.
	Pointer       Code = 'P' // Pointer is a pointer-width unsigned integer, native order only.
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// IsOrder reports whether c is one of the byte order specifier characters.
func IsOrder(c byte) bool {
	switch Order(c) {
	case Native, Standard, LittleEndian, BigEndian, Network:
		return true
	default:
		return false
	}
}

func (o Order) String() string {
	switch o {
	case Native:
		return "native"
	case Standard:
		return "standard"
	case LittleEndian:
		return "little_endian"
	case BigEndian:
		return "big_endian"
	case Network:
		return "network"
	default:
		return "Unknown"
	}
}

func (c Code) String() string {
	switch c {
	case Pad:
		return "pad"
	case Char:
		return "char"
	case SignedChar:
		return "signed_char"
	case UnsignedChar:
		return "unsigned_char"
	case Short:
		return "short"
	case UnsignedShort:
		return "unsigned_short"
	case Int:
		return "int"
	case UnsignedInt:
		return "unsigned_int"
	case Long:
		return "long"
	case UnsignedLong:
		return "unsigned_long"
	case Float:
		return "float"
	case Double:
		return "double"
	case String:
		return "string"
	case PascalString:
		return "pascal_string"
	case Pointer:
		return "pointer"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

var orderNames = map[string]Order{
	"native":        Native,
	"standard":      Standard,
	"little_endian": LittleEndian,
	"big_endian":    BigEndian,
	"network":       Network,
}

var codeNames = map[string]Code{
	"pad":            Pad,
	"char":           Char,
	"signed_char":    SignedChar,
	"unsigned_char":  UnsignedChar,
	"octet":          Octet,
	"short":          Short,
	"unsigned_short": UnsignedShort,
	"int":            Int,
	"unsigned_int":   UnsignedInt,
	"long":           Long,
	"unsigned_long":  UnsignedLong,
	"float":          Float,
	"double":         Double,
	"string":         String,
	"pascal_string":  PascalString,
	"pointer":        Pointer,
}

// ParseOrder resolves a byte order given either as its specifier character or by name
// ("native", "standard", "little_endian", "big_endian", "network").
func ParseOrder(s string) (Order, bool) {
	if len(s) == 1 && IsOrder(s[0]) {
		return Order(s[0]), true
	}
	o, ok := orderNames[s]

	return o, ok
}

// ParseCode resolves a type code given either as its single character or by name
// ("octet", "unsigned_long", ...). The character form is not validated against a table.
func ParseCode(s string) (Code, bool) {
	if len(s) == 1 {
		return Code(s[0]), true
	}
	c, ok := codeNames[s]

	return c, ok
}

// ParseCompression resolves a compression type by name, ignoring case ("none",
// "zstd", "s2", "lz4").
func ParseCompression(s string) (CompressionType, bool) {
	for _, c := range []CompressionType{CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4} {
		if strings.EqualFold(s, c.String()) {
			return c, true
		}
	}

	return 0, false
}
