// Package frame batches records of one schema into a self-describing binary frame.
//
// A frame is a 48-byte network-order header followed by the payload, the
// concatenated record images, optionally compressed:
//
//	offset  size  field
//	0       4     magic "SPFR"
//	4       1     version
//	5       1     compression (format.CompressionType)
//	6       2     flags, reserved
//	8       4     record_size
//	12      4     record_count
//	16      8     schema fingerprint, high word first
//	24      20    id (KSUID)
//	44      4     payload_size, stored bytes after the header
//
// The header is itself described by a record schema, see HeaderSchema.
//
// Encoding:
//
//	enc, _ := frame.NewEncoder(schema, frame.WithCompression(format.CompressionZstd))
//	for _, r := range records {
//	    _ = enc.Append(r)
//	}
//	data, _ := enc.Finish()
//
// Decoding checks the fingerprint against the caller's schema:
//
//	f, err := frame.Decode(schema, data)
//	for i, r := range f.All() {
//	    fmt.Println(i, r)
//	}
package frame

import (
	"errors"
	"fmt"
	"iter"

	"github.com/segmentio/ksuid"

	"github.com/arloliu/structpack/compress"
	"github.com/arloliu/structpack/errs"
	"github.com/arloliu/structpack/record"
)

// Frame is a decoded frame. Records are materialized on access.
type Frame struct {
	header  Header
	schema  *record.Schema
	payload []byte
}

// Decode parses a frame of records of schema.
//
// Returns the header errors of ReadHeader, errs.ErrSchemaMismatch when the frame was
// written for another layout and errs.ErrFramePayloadSize when the payload length
// disagrees with the header. The payload is never inflated past the size the header
// declares.
func Decode(schema *record.Schema, data []byte) (*Frame, error) {
	h, err := ReadHeader(data)
	if err != nil {
		return nil, err
	}

	if h.Fingerprint != schema.Fingerprint() || int(h.RecordSize) != schema.Size() {
		return nil, fmt.Errorf("%w: frame fingerprint %016x, schema %q has %016x",
			errs.ErrSchemaMismatch, h.Fingerprint, schema.Name(), schema.Fingerprint())
	}

	body := data[HeaderSize:]
	if len(body) != int(h.PayloadSize) {
		return nil, fmt.Errorf("%w: header says %d bytes, got %d", errs.ErrFramePayloadSize, h.PayloadSize, len(body))
	}

	codec, err := compress.CreateCodec(h.Compression, "frame")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidFrameHeader, err)
	}

	want := int(h.RecordSize) * int(h.RecordCount)
	payload, err := codec.DecompressBounded(body, want)
	if errors.Is(err, errs.ErrDecompressedTooLarge) {
		return nil, fmt.Errorf("%w: %d records of %d bytes: %w", errs.ErrFramePayloadSize, h.RecordCount, h.RecordSize, err)
	}
	if err != nil {
		return nil, err
	}

	if len(payload) != want {
		return nil, fmt.Errorf("%w: %d records of %d bytes need %d bytes, got %d",
			errs.ErrFramePayloadSize, h.RecordCount, h.RecordSize, want, len(payload))
	}

	return &Frame{header: h, schema: schema, payload: payload}, nil
}

// Header returns the decoded header.
func (f *Frame) Header() Header { return f.header }

// ID returns the frame ID.
func (f *Frame) ID() ksuid.KSUID { return f.header.ID }

// Schema returns the schema the frame was decoded with.
func (f *Frame) Schema() *record.Schema { return f.schema }

// Len returns the number of records.
func (f *Frame) Len() int { return int(f.header.RecordCount) }

// Record returns a copy of the i-th record.
func (f *Frame) Record(i int) (*record.Record, error) {
	if i < 0 || i >= f.Len() {
		return nil, fmt.Errorf("%w: index %d of %d", errs.ErrRecordNotFound, i, f.Len())
	}

	size := f.schema.Size()

	return f.schema.NewFrom(f.payload[i*size : (i+1)*size]), nil
}

// All iterates over the records in order.
func (f *Frame) All() iter.Seq2[int, *record.Record] {
	return func(yield func(int, *record.Record) bool) {
		size := f.schema.Size()
		for i := range f.Len() {
			if !yield(i, f.schema.NewFrom(f.payload[i*size:(i+1)*size])) {
				return
			}
		}
	}
}
