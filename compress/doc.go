// Package compress provides the payload codecs of record frames.
//
// A frame payload is a run of fixed-size record images of a single schema, which
// tends to repeat field values and zero padding and compresses well. The codecs are
// keyed by format.CompressionType, the value stored in the frame header:
//
//   - None: the payload is stored as is
//   - Zstd: best ratio, moderate speed
//   - S2: balanced ratio and speed
//   - LZ4: fastest decompression
//
// Use GetCodec for the shared built-in codecs:
//
//	codec, err := compress.GetCodec(format.CompressionS2)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
//
// Readers of untrusted input use DecompressBounded with the size they expect, so a
// payload that inflates further is rejected before it is fully allocated.
//
// # Zstandard Backends
//
// Zstd uses github.com/klauspost/compress/zstd with pooled encoders and decoders.
// Building with the gozstd tag switches to the cgo binding github.com/valyala/gozstd;
// both produce standard zstd frames, so payloads are interchangeable.
//
// # Thread Safety
//
// All codecs are stateless or pool their state and may be shared between goroutines.
package compress
