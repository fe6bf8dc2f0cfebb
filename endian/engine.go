// Package endian provides the byte order engines used by the structpack format tables.
//
// An EndianEngine combines encoding/binary's ByteOrder and AppendByteOrder so a
// table can both write into a preallocated record buffer and append to a growing one
// through a single value.
//
// # Byte Order Specifiers
//
// Each format-string byte order specifier maps to one engine:
//
//	engine := endian.ForOrder(format.LittleEndian) // '<'
//	engine.PutUint16(buf, 300)                      // 2C 01
//
// Native ('@') and standard ('=') orders use the host byte order, detected once at
// start-up; '<' is little-endian; '>' and '!' are big-endian.
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"

	"github.com/arloliu/structpack/format"
)

// EndianEngine is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

var hostEngine = detectHostEngine()

func detectHostEngine() EndianEngine {
	if CheckEndianness() == binary.BigEndian {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// CheckEndianness reports the host byte order by inspecting the first byte of a
// uint16 in memory.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100
	if (*[2]byte)(unsafe.Pointer(&i))[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetNativeEngine returns the engine matching the host byte order.
func GetNativeEngine() EndianEngine {
	return hostEngine
}

// ForOrder returns the engine selected by a byte order specifier.
//
// Unknown specifiers fall back to the host engine, matching the grammar rule that an
// absent specifier means native order.
func ForOrder(o format.Order) EndianEngine {
	switch o {
	case format.LittleEndian:
		return binary.LittleEndian
	case format.BigEndian, format.Network:
		return binary.BigEndian
	default:
		return hostEngine
	}
}

// IsBigEndian reports whether engine writes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	var b [2]byte
	engine.PutUint16(b[:], 0x0102)

	return b[0] == 0x01
}
