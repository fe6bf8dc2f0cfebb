package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// maxLZ4BlockSize bounds the decompression buffer.
const maxLZ4BlockSize = 128 * 1024 * 1024

// LZ4Compressor provides LZ4 block compression.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using LZ4 compression.
//
// Uses a pooled lz4.Compressor.
//
// Parameters:
//   - data: Input data to compress
//
// Returns:
//   - []byte: Compressed block, nil for empty input
//   - error: Error if compression fails
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decompresses the input data using LZ4 decompression.
//
// LZ4 blocks do not record their decompressed size, so the buffer starts at 4x the
// input and doubles on ErrInvalidSourceShortBuffer up to 128MiB.
//
// Parameters:
//   - data: Compressed block
//
// Returns:
//   - []byte: Decompressed data
//   - error: Error if the block is corrupted or inflates past 128MiB
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	return uncompressLZ4(data, maxLZ4BlockSize, lz4.ErrInvalidSourceShortBuffer)
}

// DecompressBounded decompresses a block of at most limit bytes.
//
// The buffer grows as in Decompress but never past limit.
//
// Parameters:
//   - data: Compressed block
//   - limit: Maximum decompressed length
//
// Returns:
//   - []byte: Decompressed data
//   - error: errs.ErrDecompressedTooLarge past limit, or a corruption error
func (c LZ4Compressor) DecompressBounded(data []byte, limit int) ([]byte, error) {
	return uncompressLZ4(data, limit, tooLarge("lz4", limit))
}

// uncompressLZ4 doubles the output buffer from 4x the input up to limit and returns
// exceeded when the block does not fit.
func uncompressLZ4(data []byte, limit int, exceeded error) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bufSize := min(len(data)*4, limit)
	for {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, err
		}
		if bufSize >= limit {
			return nil, exceeded
		}
		bufSize = min(bufSize*2, limit)
	}
}
