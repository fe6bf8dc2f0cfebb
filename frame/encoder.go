package frame

import (
	"fmt"
	"math"

	"github.com/segmentio/ksuid"

	"github.com/arloliu/structpack/compress"
	"github.com/arloliu/structpack/errs"
	"github.com/arloliu/structpack/internal/options"
	"github.com/arloliu/structpack/internal/pool"
	"github.com/arloliu/structpack/record"
)

// maxPayloadSize is the largest payload the 32-bit size fields can describe.
const maxPayloadSize int64 = math.MaxUint32

// Encoder collects records of one schema into a frame.
//
// An Encoder is single use: after Finish it rejects further records.
type Encoder struct {
	schema   *record.Schema
	config   *EncoderConfig
	payload  *pool.ByteBuffer
	count    int
	finished bool
}

// NewEncoder creates an encoder for records of schema.
func NewEncoder(schema *record.Schema, opts ...EncoderOption) (*Encoder, error) {
	config := newEncoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	payload := pool.GetFrameBuffer()
	payload.Reset()

	return &Encoder{
		schema:  schema,
		config:  config,
		payload: payload,
	}, nil
}

// Len returns the number of records appended so far.
func (e *Encoder) Len() int {
	return e.count
}

// Append copies the record image into the frame payload.
//
// Returns errs.ErrSchemaMismatch for records of another layout and
// errs.ErrFramePayloadSize when the payload would exceed the 32-bit size field.
func (e *Encoder) Append(r *record.Record) error {
	if e.finished {
		return errs.ErrEncoderFinished
	}
	if r.Schema().Fingerprint() != e.schema.Fingerprint() {
		return fmt.Errorf("%w: record of schema %q appended to frame of %q",
			errs.ErrSchemaMismatch, r.Schema().Name(), e.schema.Name())
	}
	if int64(e.payload.Len())+int64(r.Len()) > maxPayloadSize {
		return fmt.Errorf("%w: payload exceeds %d bytes", errs.ErrFramePayloadSize, maxPayloadSize)
	}

	e.payload.MustWrite(r.Raw())
	e.count++

	return nil
}

// Finish compresses the payload and returns the encoded frame. The encoder releases
// its buffer and cannot be reused.
func (e *Encoder) Finish() ([]byte, error) {
	if e.finished {
		return nil, errs.ErrEncoderFinished
	}
	e.finished = true
	defer func() {
		pool.PutFrameBuffer(e.payload)
		e.payload = nil
	}()

	codec, err := compress.GetCodec(e.config.compression)
	if err != nil {
		return nil, err
	}
	body, err := codec.Compress(e.payload.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to compress frame payload: %w", err)
	}
	if int64(len(body)) > maxPayloadSize {
		return nil, fmt.Errorf("%w: compressed payload exceeds %d bytes", errs.ErrFramePayloadSize, maxPayloadSize)
	}

	id := e.config.id
	if id.IsNil() {
		id = ksuid.New()
	}

	h := Header{
		Version:     Version,
		Compression: e.config.compression,
		RecordSize:  uint32(e.schema.Size()), //nolint:gosec
		RecordCount: uint32(e.count),         //nolint:gosec
		Fingerprint: e.schema.Fingerprint(),
		ID:          id,
		PayloadSize: uint32(len(body)), //nolint:gosec
	}
	hdr, err := h.record()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, HeaderSize+len(body))
	out = append(out, hdr.Raw()...)
	out = append(out, body...)

	return out, nil
}
