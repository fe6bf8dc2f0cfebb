package frame

import (
	"fmt"

	"github.com/segmentio/ksuid"

	"github.com/arloliu/structpack/errs"
	"github.com/arloliu/structpack/format"
	"github.com/arloliu/structpack/record"
)

const (
	// Magic starts every frame.
	Magic = "SPFR"
	// Version is the header layout version written by this package.
	Version = 1
	// HeaderSize is the encoded header size in bytes.
	HeaderSize = 48
)

// headerSchema lays out the frame header in network order.
var headerSchema = record.MustBuild(format.Network, []record.FieldSpec{
	{Name: "magic", Code: format.String, Count: len(Magic), Default: Magic, ReadOnly: true},
	{Name: "version", Code: format.Octet, Count: 1, Default: Version},
	{Name: "compression", Code: format.Octet, Count: 1, Default: uint8(format.CompressionNone)},
	{Name: "flags", Code: format.UnsignedShort, Count: 1},
	{Name: "record_size", Code: format.UnsignedInt, Count: 1},
	{Name: "record_count", Code: format.UnsignedInt, Count: 1},
	{Name: "fingerprint", Code: format.UnsignedInt, Count: 2},
	{Name: "id", Code: format.String, Count: len(ksuid.Nil)},
	{Name: "payload_size", Code: format.UnsignedInt, Count: 1},
}, record.WithName("frame_header"))

// Header is the decoded frame header.
type Header struct {
	Version     uint8
	Compression format.CompressionType
	Flags       uint16
	RecordSize  uint32
	RecordCount uint32
	Fingerprint uint64
	ID          ksuid.KSUID
	PayloadSize uint32
}

// HeaderSchema returns the record schema of the frame header.
func HeaderSchema() *record.Schema {
	return headerSchema
}

func (h *Header) record() (*record.Record, error) {
	r := headerSchema.New()

	values := []struct {
		name string
		v    any
	}{
		{"version", h.Version},
		{"compression", uint8(h.Compression)},
		{"flags", h.Flags},
		{"record_size", h.RecordSize},
		{"record_count", h.RecordCount},
		{"fingerprint", []uint32{uint32(h.Fingerprint >> 32), uint32(h.Fingerprint)}}, //nolint:gosec
		{"id", h.ID.Bytes()},
		{"payload_size", h.PayloadSize},
	}
	for _, f := range values {
		if err := r.Set(f.name, f.v); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// ReadHeader decodes and validates the header at the start of data.
//
// Returns errs.ErrInvalidFrameHeader for short input or an unknown version and
// errs.ErrInvalidMagicNumber when data does not start with Magic.
func ReadHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: need %d bytes, got %d", errs.ErrInvalidFrameHeader, HeaderSize, len(data))
	}

	r := headerSchema.NewFrom(data[:HeaderSize])
	if magic := bytesField(r, "magic"); string(magic) != Magic {
		return Header{}, fmt.Errorf("%w: %q", errs.ErrInvalidMagicNumber, magic)
	}

	h := Header{
		Version:     uint8(uintField(r, "version")),                      //nolint:gosec
		Compression: format.CompressionType(uintField(r, "compression")), //nolint:gosec
		Flags:       uint16(uintField(r, "flags")),                       //nolint:gosec
		RecordSize:  uint32(uintField(r, "record_size")),                 //nolint:gosec
		RecordCount: uint32(uintField(r, "record_count")),                //nolint:gosec
		PayloadSize: uint32(uintField(r, "payload_size")),                //nolint:gosec
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidFrameHeader, h.Version)
	}

	fp, _ := r.Get("fingerprint")
	if parts, ok := fp.([]any); ok && len(parts) == 2 {
		hi, _ := parts[0].(uint64)
		lo, _ := parts[1].(uint64)
		h.Fingerprint = hi<<32 | lo
	}

	id, err := ksuid.FromBytes(bytesField(r, "id"))
	if err != nil {
		return Header{}, fmt.Errorf("%w: %w", errs.ErrInvalidFrameHeader, err)
	}
	h.ID = id

	return h, nil
}

func uintField(r *record.Record, name string) uint64 {
	v, _ := r.Get(name)
	u, _ := v.(uint64)

	return u
}

func bytesField(r *record.Record, name string) []byte {
	v, _ := r.Get(name)
	b, _ := v.([]byte)

	return b
}
