package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Compressor provides S2 block compression, a faster Snappy extension. It uses the
// "better" encoder: frame payloads repeat the same record layout, and the longer match
// search pays off on them at little cost in speed.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses data into a single S2 block.
//
// Parameters:
//   - data: Input data to compress
//
// Returns:
//   - []byte: Compressed block, nil for empty input
//   - error: Always nil
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.EncodeBetter(nil, data), nil
}

// Decompress decodes a single S2 block.
//
// Parameters:
//   - data: Compressed block
//
// Returns:
//   - []byte: Decompressed data
//   - error: Error if the block is corrupted
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}

// DecompressBounded decodes a single S2 block of at most limit bytes.
//
// The decoded length is read from the block preamble before any output is allocated.
//
// Parameters:
//   - data: Compressed block
//   - limit: Maximum decompressed length
//
// Returns:
//   - []byte: Decompressed data
//   - error: errs.ErrDecompressedTooLarge past limit, or a corruption error
func (c S2Compressor) DecompressBounded(data []byte, limit int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if n > limit {
		return nil, tooLarge("s2", limit)
	}

	return c.Decompress(data)
}
