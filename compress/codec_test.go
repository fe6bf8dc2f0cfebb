package compress

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/structpack/errs"
	"github.com/arloliu/structpack/format"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

// recordPayload builds a run of 28-byte record images with a few changing fields.
func recordPayload(n int) []byte {
	var buf bytes.Buffer
	for i := range n {
		buf.WriteString("XSDP\x01\x00\x00\x01")
		buf.Write([]byte{0, 0, byte(i >> 8), byte(i)})
		buf.WriteString("sensor-reading\x00\x00")
	}

	return buf.Bytes()
}

func TestCodecs_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	random := make([]byte, 4096)
	rng.Read(random)

	inputs := map[string][]byte{
		"single record": recordPayload(1),
		"many records":  recordPayload(1000),
		"random":        random,
		"zeros":         make([]byte, 64*1024),
		"one byte":      {0x42},
	}

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for name, data := range inputs {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				compressed, err := codec.Compress(data)
				require.NoError(t, err)

				out, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, data, out)
			})
		}
	}
}

func TestCodecs_CompressRecords(t *testing.T) {
	data := recordPayload(1000)

	for _, ct := range allTypes[1:] {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(data)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(data)/2, ct.String())
	}
}

func TestCodecs_Empty(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		out, err := codec.Decompress(nil)
		require.NoError(t, err)
		require.Empty(t, out)
	}
}

func TestCodecs_Corrupted(t *testing.T) {
	garbage := []byte{0xFF, 0xFE, 0xFD, 0xFC, 0xFB, 0xFA, 0xF9, 0xF8}

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage)
		require.Error(t, err, ct.String())
	}
}

func TestCodecs_DecompressBounded(t *testing.T) {
	data := recordPayload(100)

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(data)
		require.NoError(t, err)

		t.Run(ct.String(), func(t *testing.T) {
			out, err := codec.DecompressBounded(compressed, len(data))
			require.NoError(t, err)
			require.Equal(t, data, out)

			_, err = codec.DecompressBounded(compressed, len(data)-1)
			require.ErrorIs(t, err, errs.ErrDecompressedTooLarge)

			_, err = codec.DecompressBounded(compressed, 0)
			require.ErrorIs(t, err, errs.ErrDecompressedTooLarge)

			out, err = codec.DecompressBounded(nil, 0)
			require.NoError(t, err)
			require.Empty(t, out)
		})
	}
}

func TestCodecs_DecompressBounded_Corrupted(t *testing.T) {
	garbage := []byte{0xFF, 0xFE, 0xFD, 0xFC, 0xFB, 0xFA, 0xF9, 0xF8}

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		_, err = codec.DecompressBounded(garbage, 1024)
		require.Error(t, err, ct.String())
		require.NotErrorIs(t, err, errs.ErrDecompressedTooLarge, ct.String())
	}
}

func TestNoOp_SharesMemory(t *testing.T) {
	data := []byte{1, 2, 3}
	out, err := NewNoOpCompressor().Compress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0])
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := CreateCodec(ct, "payload")
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := CreateCodec(format.CompressionType(0x9), "payload")
	require.ErrorContains(t, err, "invalid payload compression")

	_, err = GetCodec(format.CompressionType(0))
	require.Error(t, err)
}

func BenchmarkCompress(b *testing.B) {
	data := recordPayload(500)
	for _, ct := range allTypes {
		codec, _ := GetCodec(ct)
		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				_, _ = codec.Compress(data)
			}
		})
	}
}

func BenchmarkDecompress(b *testing.B) {
	data := recordPayload(500)
	for _, ct := range allTypes {
		codec, _ := GetCodec(ct)
		compressed, _ := codec.Compress(data)
		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				_, _ = codec.Decompress(compressed)
			}
		})
	}
}
