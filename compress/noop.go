package compress

// NoOpCompressor stores payloads uncompressed.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data itself.
//
// Note: The returned slice shares the same underlying memory as the input.
//
// Parameters:
//   - data: Input data (returned as-is)
//
// Returns:
//   - []byte: The same slice as input
//   - error: Always nil
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself.
//
// Note: The returned slice shares the same underlying memory as the input.
//
// Parameters:
//   - data: Input data (returned as-is)
//
// Returns:
//   - []byte: The same slice as input
//   - error: Always nil
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

// DecompressBounded returns data itself when it holds at most limit bytes.
//
// Parameters:
//   - data: Stored payload
//   - limit: Maximum accepted length
//
// Returns:
//   - []byte: The same slice as input
//   - error: errs.ErrDecompressedTooLarge if data is longer than limit
func (c NoOpCompressor) DecompressBounded(data []byte, limit int) ([]byte, error) {
	if len(data) > limit {
		return nil, tooLarge("uncompressed", limit)
	}

	return data, nil
}
