package record

import (
	"testing"

	"github.com/arloliu/structpack/errs"
	"github.com/arloliu/structpack/format"
	"github.com/stretchr/testify/require"
)

func xsdpSpecs() []FieldSpec {
	return []FieldSpec{
		{Name: "magic", Code: format.String, Count: 4, Default: "XSDP", ReadOnly: true},
		{Name: "version", Code: format.Octet, Count: 2, Default: []int{1, 0}},
		{Name: "byte_order", Code: format.Octet, Count: 1, Default: 0, ReadOnly: true},
		{Name: "message_type", Code: format.Octet, Count: 1},
		{Name: "correl_id", Code: format.UnsignedLong, Count: 1},
		{Name: "data", Code: format.String, Count: 16},
	}
}

func TestBuild_Layout(t *testing.T) {
	s, err := Build(format.BigEndian, xsdpSpecs(), WithName("xsdp"))
	require.NoError(t, err)

	require.Equal(t, "xsdp", s.Name())
	require.Equal(t, format.BigEndian, s.Order())
	require.Equal(t, 28, s.Size())
	require.Equal(t, 6, s.NumFields())
	require.Equal(t, 6, s.NumNamed())

	offsets := map[string]int{"magic": 0, "version": 4, "byte_order": 6, "message_type": 7, "correl_id": 8, "data": 12}
	for name, off := range offsets {
		f, err := s.Field(name)
		require.NoError(t, err)
		require.Equal(t, off, f.Offset(), name)
		require.Equal(t, name, f.Name())
	}

	want := make([]byte, 28)
	copy(want, "XSDP\x01\x00")
	require.Equal(t, want, s.Defaults())

	require.Equal(t, "xsdp{>, 28 bytes: magic 4s@0 ro, version 2B@4, byte_order B@6 ro, message_type B@7, correl_id L@8, data 16s@12}", s.String())
}

func TestBuild_StandardScenario(t *testing.T) {
	s, err := Build(format.Standard, []FieldSpec{
		{Name: "id", Code: format.Int, Count: 1, ReadOnly: true},
		{Name: "name", Code: format.String, Count: 8},
	})
	require.NoError(t, err)
	require.Equal(t, 12, s.Size())
	require.Equal(t, make([]byte, 12), s.New().Bytes())
}

func TestBuild_NativeAlignment(t *testing.T) {
	s, err := Build(format.Native, []FieldSpec{
		{Name: "flag", Code: format.SignedChar, Count: 1},
		{Name: "value", Code: format.Int, Count: 1},
	})
	require.NoError(t, err)
	require.Equal(t, 8, s.Size())

	f, err := s.Field("value")
	require.NoError(t, err)
	require.Equal(t, 4, f.Offset())

	s, err = Build(format.LittleEndian, []FieldSpec{
		{Name: "flag", Code: format.SignedChar, Count: 1},
		{Name: "value", Code: format.Int, Count: 1},
	})
	require.NoError(t, err)
	require.Equal(t, 5, s.Size())
}

func TestBuild_NonFieldSpecs(t *testing.T) {
	s, err := Build(format.LittleEndian, []FieldSpec{
		{Code: format.Pad, Count: 3},
		{Code: format.Int, Count: 0},
		{Name: "empty", Code: format.String, Count: 0},
		{Name: "a", Code: format.Short, Count: 1},
		{Code: format.Short, Count: 1, Default: 7},
	})
	require.NoError(t, err)
	require.Equal(t, 7, s.Size())
	require.Equal(t, 3, s.NumFields())
	require.Equal(t, 2, s.NumNamed())

	a, err := s.Field("a")
	require.NoError(t, err)
	require.Equal(t, 3, a.Offset())
	require.Equal(t, []byte{0, 0, 0, 0, 0, 7, 0}, s.Defaults())

	empty, err := s.Field("empty")
	require.NoError(t, err)
	require.Zero(t, empty.Size())

	require.Empty(t, s.Fields()[2].Name())
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name  string
		order format.Order
		specs []FieldSpec
		want  error
	}{
		{"negative count", format.Standard, []FieldSpec{{Name: "a", Code: format.Int, Count: -1}}, errs.ErrInvalidRepeatCount},
		{"unknown code", format.Standard, []FieldSpec{{Name: "a", Code: 'q', Count: 1}}, errs.ErrBadFormatChar},
		{"pointer outside native", format.BigEndian, []FieldSpec{{Name: "a", Code: format.Pointer, Count: 1}}, errs.ErrBadFormatChar},
		{"duplicate name", format.Standard, []FieldSpec{
			{Name: "a", Code: format.Int, Count: 1},
			{Name: "a", Code: format.Short, Count: 1},
		}, errs.ErrDuplicateFieldName},
		{"named pad", format.Standard, []FieldSpec{{Name: "gap", Code: format.Pad, Count: 2}}, errs.ErrFieldNameNotAllowed},
		{"named zero count", format.Standard, []FieldSpec{
			{Name: "a", Code: format.Int, Count: 1},
			{Name: "none", Code: format.Int, Count: 0},
		}, errs.ErrFieldNameNotAllowed},
		{"named zero pascal", format.Standard, []FieldSpec{{Name: "p", Code: format.PascalString, Count: 0}}, errs.ErrFieldNameNotAllowed},
		{"empty", format.Standard, nil, errs.ErrZeroSizeSchema},
		{"zero size", format.Standard, []FieldSpec{{Code: format.Int, Count: 0}, {Name: "s", Code: format.String, Count: 0}}, errs.ErrZeroSizeSchema},
		{"size overflow", format.Standard, []FieldSpec{
			{Code: format.String, Count: 2147483647},
			{Name: "b", Code: format.Octet, Count: 1},
		}, errs.ErrSizeOverflow},
		{"bad order", '?', []FieldSpec{{Name: "a", Code: format.Int, Count: 1}}, errs.ErrInvalidByteOrder},
		{"default type", format.Standard, []FieldSpec{{Name: "a", Code: format.Int, Count: 1, Default: "x"}}, errs.ErrTypeMismatch},
		{"default sequence length", format.Standard, []FieldSpec{{Name: "a", Code: format.Int, Count: 2, Default: []int{1}}}, errs.ErrFieldCountMismatch},
		{"default overflow", format.Standard, []FieldSpec{{Name: "a", Code: format.Float, Count: 1, Default: 1e300}}, errs.ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.order, tt.specs)
			require.ErrorIs(t, err, tt.want)
		})
	}

	require.Panics(t, func() { MustBuild(format.Standard, nil) })
}

func TestSchema_Field(t *testing.T) {
	s := MustBuild(format.BigEndian, xsdpSpecs())

	_, err := s.Field("missing")
	require.ErrorIs(t, err, errs.ErrUnknownField)

	f, err := s.Field("version")
	require.NoError(t, err)
	require.Equal(t, format.Octet, f.Code())
	require.Equal(t, 2, f.Count())
	require.Equal(t, 2, f.Size())
	require.False(t, f.ReadOnly())
	require.Equal(t, []int{1, 0}, f.Default())

	fields := s.Fields()
	fields[0] = nil
	require.NotNil(t, s.Fields()[0])
}

func TestSchema_Fingerprint(t *testing.T) {
	a := MustBuild(format.BigEndian, xsdpSpecs(), WithName("xsdp"))
	b := MustBuild(format.BigEndian, xsdpSpecs(), WithName("xsdp"))
	require.Equal(t, a.Fingerprint(), b.Fingerprint())

	c := MustBuild(format.LittleEndian, xsdpSpecs(), WithName("xsdp"))
	require.NotEqual(t, a.Fingerprint(), c.Fingerprint())

	d := MustBuild(format.BigEndian, xsdpSpecs(), WithName("other"))
	require.NotEqual(t, a.Fingerprint(), d.Fingerprint())
}

func BenchmarkBuild(b *testing.B) {
	specs := xsdpSpecs()
	for b.Loop() {
		_, _ = Build(format.BigEndian, specs)
	}
}
