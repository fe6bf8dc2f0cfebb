package compress

import (
	"fmt"
	"io"

	"github.com/arloliu/structpack/errs"
	"github.com/arloliu/structpack/format"
)

// Compressor compresses a frame payload of concatenated record images.
//
// The returned slice is owned by the caller; the input is not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same algorithm.
//
// It returns an error for corrupted input or input produced by another algorithm.
// Implementations are safe for concurrent use.
type Decompressor interface {
	// Decompress decompresses data without a size limit.
	Decompress(data []byte) ([]byte, error)

	// DecompressBounded decompresses data that must inflate to at most limit bytes.
	//
	// Decoding stops as soon as the output would pass limit, so a crafted input cannot
	// allocate more than the caller expects. Returns errs.ErrDecompressedTooLarge in
	// that case.
	DecompressBounded(data []byte, limit int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: A new codec for the compression type
//   - error: An "invalid <target> compression" error for an unknown type
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//
// Returns:
//   - Codec: The shared codec instance
//   - error: Error if the compression type is unknown
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// readLimited reads a decompressing stream, failing once it yields more than limit
// bytes. The output grows with the data actually decoded.
func readLimited(r io.Reader, limit int, name string) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, fmt.Errorf("%s decompression failed: %w", name, err)
	}
	if len(out) > limit {
		return nil, tooLarge(name, limit)
	}

	return out, nil
}

func tooLarge(name string, limit int) error {
	return fmt.Errorf("%w: %s payload inflates past %d bytes", errs.ErrDecompressedTooLarge, name, limit)
}
