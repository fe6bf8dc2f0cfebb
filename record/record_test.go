package record

import (
	"bytes"
	"io"
	"testing"

	"github.com/arloliu/structpack/errs"
	"github.com/arloliu/structpack/format"
	"github.com/stretchr/testify/require"
)

func TestRecord_XsdpMessage(t *testing.T) {
	s := MustBuild(format.BigEndian, xsdpSpecs(), WithName("xsdp"))
	msg := s.New()
	require.Equal(t, 28, msg.Len())
	require.Same(t, s, msg.Schema())

	require.NoError(t, msg.Set("correl_id", 0x01020304))
	v, err := msg.Get("correl_id")
	require.NoError(t, err)
	require.Equal(t, uint64(0x01020304), v)

	require.NoError(t, msg.Set("data", "Hello, World !"))
	v, err = msg.Get("data")
	require.NoError(t, err)
	require.Equal(t, []byte("Hello, World !\x00\x00"), v)

	before := msg.Bytes()
	err = msg.Set("magic", "XXXX")
	require.ErrorIs(t, err, errs.ErrReadOnlyField)
	require.Equal(t, before, msg.Bytes())

	v, err = msg.Get("version")
	require.NoError(t, err)
	require.Equal(t, []any{uint64(1), uint64(0)}, v)

	want := []byte("XSDP\x01\x00\x00\x00\x01\x02\x03\x04Hello, World !\x00\x00")
	require.Equal(t, want, msg.Bytes())

	msg2 := s.NewFrom(msg.Bytes())
	require.Equal(t, msg.Bytes(), msg2.Bytes())
	require.Equal(t, msg.String(), msg2.String())
}

func TestRecord_ReadOnlyLeavesBytes(t *testing.T) {
	s := MustBuild(format.Standard, []FieldSpec{
		{Name: "id", Code: format.Int, Count: 1, ReadOnly: true},
		{Name: "name", Code: format.String, Count: 8},
	})
	r := s.New()

	err := r.Set("id", 7)
	require.ErrorIs(t, err, errs.ErrReadOnlyField)
	require.Equal(t, make([]byte, 12), r.Bytes())

	require.NoError(t, r.SetAny("id", 7))
	v, err := r.Get("id")
	require.NoError(t, err)
	require.Equal(t, int64(7), v)
}

func TestRecord_UnknownField(t *testing.T) {
	r := MustBuild(format.Standard, xsdpSpecs()).New()

	_, err := r.Get("nope")
	require.ErrorIs(t, err, errs.ErrUnknownField)
	require.ErrorIs(t, r.Set("nope", 1), errs.ErrUnknownField)
	require.ErrorIs(t, r.SetAny("nope", 1), errs.ErrUnknownField)
}

func TestRecord_SetFailureIsAtomic(t *testing.T) {
	s := MustBuild(format.LittleEndian, []FieldSpec{
		{Name: "samples", Code: format.Short, Count: 3},
	})
	r := s.New()
	require.NoError(t, r.Set("samples", []int{1, 2, 3}))
	before := r.Bytes()

	err := r.Set("samples", []any{9, 9, "bad"})
	require.ErrorIs(t, err, errs.ErrTypeMismatch)
	require.Equal(t, before, r.Bytes())

	err = r.Set("samples", []int{1, 2})
	require.ErrorIs(t, err, errs.ErrFieldCountMismatch)

	err = r.Set("samples", 4)
	require.ErrorIs(t, err, errs.ErrTypeMismatch)
	require.Equal(t, before, r.Bytes())
}

func TestRecord_NewFrom(t *testing.T) {
	s := MustBuild(format.LittleEndian, []FieldSpec{
		{Name: "a", Code: format.UnsignedShort, Count: 1, Default: 0xFFFF},
		{Name: "b", Code: format.UnsignedShort, Count: 1},
	})

	short := s.NewFrom([]byte{0x01})
	require.Equal(t, []byte{0x01, 0, 0, 0}, short.Bytes())

	long := s.NewFrom([]byte{1, 2, 3, 4, 5, 6})
	require.Equal(t, []byte{1, 2, 3, 4}, long.Bytes())

	data := []byte{1, 0, 2, 0}
	r := s.NewFrom(data)
	data[0] = 9
	v, err := r.Get("a")
	require.NoError(t, err)
	require.Equal(t, uint64(1), v)
}

func TestRecord_RawAndBytes(t *testing.T) {
	s := MustBuild(format.BigEndian, []FieldSpec{{Name: "n", Code: format.UnsignedInt, Count: 1}})
	r := s.New()

	cp := r.Bytes()
	cp[3] = 1
	v, _ := r.Get("n")
	require.Equal(t, uint64(0), v)

	r.Raw()[3] = 1
	v, _ = r.Get("n")
	require.Equal(t, uint64(1), v)
}

func TestRecord_AllResetClone(t *testing.T) {
	s := MustBuild(format.LittleEndian, []FieldSpec{
		{Name: "kind", Code: format.Char, Count: 1, Default: "A"},
		{Code: format.Pad, Count: 1},
		{Code: format.Short, Count: 1, Default: -1},
		{Name: "temp", Code: format.Float, Count: 1},
		{Name: "label", Code: format.PascalString, Count: 6},
	})
	r := s.New()
	require.NoError(t, r.Set("temp", 21.5))
	require.NoError(t, r.Set("label", "hot"))

	var names []string
	var values []any
	for f, v := range r.All() {
		names = append(names, f.Name())
		values = append(values, v)
	}
	require.Equal(t, []string{"kind", "", "temp", "label"}, names)
	require.Equal(t, []any{[]byte("A"), int64(-1), 21.5, []byte("hot")}, values)
	require.Equal(t, `{kind: "A", temp: 21.5, label: "hot"}`, r.String())

	count := 0
	for range r.All() {
		count++
		break
	}
	require.Equal(t, 1, count)

	c := r.Clone()
	r.Reset()
	require.Equal(t, s.Defaults(), r.Bytes())

	v, err := c.Get("label")
	require.NoError(t, err)
	require.Equal(t, []byte("hot"), v)
}

func TestRecord_WriteToReadFrom(t *testing.T) {
	s := MustBuild(format.Network, xsdpSpecs())
	src := s.New()
	require.NoError(t, src.Set("message_type", 3))

	var buf bytes.Buffer
	n, err := src.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(s.Size()), n)

	dst := s.NewFrom(nil)
	n, err = dst.ReadFrom(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(s.Size()), n)
	require.Equal(t, src.Bytes(), dst.Bytes())

	untouched := s.NewFrom(nil)
	_, err = untouched.ReadFrom(bytes.NewReader([]byte{1, 2, 3}))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	require.Equal(t, make([]byte, s.Size()), untouched.Bytes())
}

func BenchmarkRecord_Set(b *testing.B) {
	r := MustBuild(format.BigEndian, xsdpSpecs()).New()
	for b.Loop() {
		_ = r.Set("correl_id", 42)
	}
}

func BenchmarkRecord_Get(b *testing.B) {
	r := MustBuild(format.BigEndian, xsdpSpecs()).New()
	for b.Loop() {
		_, _ = r.Get("correl_id")
	}
}
