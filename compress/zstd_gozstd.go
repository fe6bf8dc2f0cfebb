//go:build gozstd

package compress

import (
	"bytes"
	"fmt"

	"github.com/valyala/gozstd"
)

// Compress compresses the input data using Zstandard compression.
//
// Parameters:
//   - data: Input data to compress
//
// Returns:
//   - []byte: A single zstd frame
//   - error: Always nil
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, zstdLevel), nil
}

// Decompress decompresses Zstd-compressed data.
//
// Parameters:
//   - data: Compressed zstd frames
//
// Returns:
//   - []byte: Decompressed data
//   - error: Error if the input is corrupted
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decompressed, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return decompressed, nil
}

// DecompressBounded decompresses Zstd-compressed data of at most limit bytes through
// a streaming reader.
//
// Parameters:
//   - data: Compressed zstd frames
//   - limit: Maximum decompressed length
//
// Returns:
//   - []byte: Decompressed data
//   - error: errs.ErrDecompressedTooLarge past limit, or a corruption error
func (c ZstdCompressor) DecompressBounded(data []byte, limit int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	zr := gozstd.NewReader(bytes.NewReader(data))
	defer zr.Release()

	return readLimited(zr, limit, "zstd")
}
