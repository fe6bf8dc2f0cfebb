package compress

// ZstdCompressor provides Zstandard compression. It favours ratio over speed and
// suits frames that are archived or sent over slow links.
//
// The backend is selected at build time, see the package documentation.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// zstdLevel is the compression level of both backends, zstd's default.
const zstdLevel = 3
