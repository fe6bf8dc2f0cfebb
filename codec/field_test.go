package codec

import (
	"testing"

	"github.com/arloliu/structpack/errs"
	"github.com/arloliu/structpack/format"
	"github.com/arloliu/structpack/table"
	"github.com/stretchr/testify/require"
)

func entry(t *testing.T, order format.Order, code format.Code) *table.TypeEntry {
	t.Helper()

	tbl, err := table.Lookup(order)
	require.NoError(t, err)
	e, err := tbl.Entry(code)
	require.NoError(t, err)

	return e
}

func TestPackPascal(t *testing.T) {
	tests := []struct {
		name  string
		width int
		in    string
		want  []byte
	}{
		{"fits", 4, "ab", []byte{2, 'a', 'b', 0}},
		{"truncated", 5, "abcdef", []byte{4, 'a', 'b', 'c', 'd'}},
		{"prefix only", 1, "abc", []byte{0}},
		{"empty", 3, "", []byte{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, tt.width)
			for i := range dst {
				dst[i] = 0xEE
			}
			require.NoError(t, PackPascal(dst, tt.in))
			require.Equal(t, tt.want, dst)
		})
	}

	require.NoError(t, PackPascal(nil, "abc"))
	require.ErrorIs(t, PackPascal(make([]byte, 2), 1), errs.ErrTypeMismatch)
}

func TestPackPascal_SaturatedPrefix(t *testing.T) {
	payload := make([]byte, 400)
	dst := make([]byte, 300)
	require.NoError(t, PackPascal(dst, payload))
	require.Equal(t, byte(MaxPascalLength), dst[0])
	require.Len(t, UnpackPascal(dst), MaxPascalLength)
}

func TestUnpackPascal(t *testing.T) {
	require.Equal(t, []byte("ab"), UnpackPascal([]byte{2, 'a', 'b', 'c'}))
	require.Equal(t, []byte("abc"), UnpackPascal([]byte{200, 'a', 'b', 'c'}))
	require.Equal(t, []byte{}, UnpackPascal([]byte{5}))
	require.Equal(t, []byte{}, UnpackPascal(nil))

	src := []byte{1, 'z'}
	out := UnpackPascal(src)
	out[0] = 'y'
	require.Equal(t, byte('z'), src[1])
}

func TestPackFixed(t *testing.T) {
	dst := []byte{1, 1, 1, 1}
	require.NoError(t, PackFixed(dst, []byte("ab")))
	require.Equal(t, []byte{'a', 'b', 0, 0}, dst)

	require.NoError(t, PackFixed(dst, "abcdef"))
	require.Equal(t, []byte("abcd"), dst)

	out := UnpackFixed(dst)
	out[0] = 'z'
	require.Equal(t, byte('a'), dst[0])
}

func TestEncodeField(t *testing.T) {
	t.Run("scalar", func(t *testing.T) {
		e := entry(t, format.LittleEndian, format.Short)
		dst := make([]byte, 2)
		require.NoError(t, EncodeField(e, 1, dst, 513))
		require.Equal(t, []byte{0x01, 0x02}, dst)
		require.Equal(t, int64(513), DecodeField(e, 1, dst))
	})

	t.Run("repeated", func(t *testing.T) {
		e := entry(t, format.BigEndian, format.UnsignedShort)
		dst := make([]byte, 6)
		require.NoError(t, EncodeField(e, 3, dst, []int{1, 2, 3}))
		require.Equal(t, []byte{0, 1, 0, 2, 0, 3}, dst)
		require.Equal(t, []any{uint64(1), uint64(2), uint64(3)}, DecodeField(e, 3, dst))

		require.NoError(t, EncodeField(e, 3, dst, [3]uint16{4, 5, 6}))
		require.Equal(t, []any{uint64(4), uint64(5), uint64(6)}, DecodeField(e, 3, dst))

		require.NoError(t, EncodeField(e, 3, dst, []any{7, uint8(8), int64(9)}))
		require.Equal(t, []any{uint64(7), uint64(8), uint64(9)}, DecodeField(e, 3, dst))
	})

	t.Run("repeated count mismatch", func(t *testing.T) {
		e := entry(t, format.BigEndian, format.Int)
		dst := make([]byte, 8)
		require.ErrorIs(t, EncodeField(e, 2, dst, []int{1}), errs.ErrFieldCountMismatch)
		require.ErrorIs(t, EncodeField(e, 2, dst, 1), errs.ErrTypeMismatch)
		require.ErrorIs(t, EncodeField(e, 2, dst, []any{1, "x"}), errs.ErrTypeMismatch)
	})

	t.Run("strings", func(t *testing.T) {
		s := entry(t, format.Standard, format.String)
		dst := make([]byte, 4)
		require.NoError(t, EncodeField(s, 4, dst, "hi"))
		require.Equal(t, []byte{'h', 'i', 0, 0}, DecodeField(s, 4, dst))

		p := entry(t, format.Standard, format.PascalString)
		require.NoError(t, EncodeField(p, 4, dst, "hello"))
		require.Equal(t, []byte("hel"), DecodeField(p, 4, dst))
	})

	t.Run("pad", func(t *testing.T) {
		x := entry(t, format.Standard, format.Pad)
		require.ErrorIs(t, EncodeField(x, 1, make([]byte, 1), 0), errs.ErrBadFormatChar)
	})
}
