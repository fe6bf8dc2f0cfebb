package schemafile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/structpack/errs"
	"github.com/arloliu/structpack/format"
)

const xsdpDoc = `
name: xsdp
order: big_endian
fields:
  - {name: magic, type: string, count: 4, default: XSDP, readonly: true}
  - {name: version, type: octet, count: 2, default: [1, 0]}
  - {name: byte_order, type: B, default: 0, readonly: true}
  - {name: message_type, type: B}
  - {name: correl_id, type: unsigned_long}
  - {name: data, type: s, count: 16}
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(xsdpDoc))
	require.NoError(t, err)
	require.Equal(t, "xsdp", s.Name())
	require.Equal(t, format.BigEndian, s.Order())
	require.Equal(t, 28, s.Size())

	msg := s.New()
	require.Equal(t, []byte("XSDP\x01\x00"), msg.Bytes()[:6])
	require.ErrorIs(t, msg.Set("magic", "XXXX"), errs.ErrReadOnlyField)

	f, err := s.Field("correl_id")
	require.NoError(t, err)
	require.Equal(t, format.UnsignedLong, f.Code())
	require.Equal(t, 1, f.Count())
}

func TestParse_Orders(t *testing.T) {
	tests := []struct {
		order string
		want  format.Order
	}{
		{"", format.Native},
		{"<", format.LittleEndian},
		{"'!'", format.Network},
		{"'@'", format.Native},
		{"standard", format.Standard},
		{"little_endian", format.LittleEndian},
	}

	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			doc := "fields: [{name: a, type: i}]\n"
			if tt.order != "" {
				doc = "order: " + tt.order + "\n" + doc
			}
			s, err := Parse([]byte(doc))
			require.NoError(t, err)
			require.Equal(t, tt.want, s.Order())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"empty", "", errs.ErrInvalidSchemaDocument},
		{"malformed", "fields: [", errs.ErrInvalidSchemaDocument},
		{"unknown key", "fields: [{name: a, type: i, width: 3}]", errs.ErrInvalidSchemaDocument},
		{"bad order", "order: sideways\nfields: [{name: a, type: i}]", errs.ErrInvalidByteOrder},
		{"bad type name", "fields: [{name: a, type: quad}]", errs.ErrBadFormatChar},
		{"bad type char", "fields: [{name: a, type: q}]", errs.ErrBadFormatChar},
		{"duplicate", "fields: [{name: a, type: i}, {name: a, type: h}]", errs.ErrDuplicateFieldName},
		{"negative count", "fields: [{name: a, type: i, count: -2}]", errs.ErrInvalidRepeatCount},
		{"named pad", "fields: [{name: gap, type: pad, count: 2}]", errs.ErrFieldNameNotAllowed},
		{"no fields", "name: nothing\nfields: []", errs.ErrZeroSizeSchema},
		{"bad default", "fields: [{name: a, type: i, default: text}]", errs.ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "xsdp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(xsdpDoc), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 28, s.Size())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("fields: []"), 0o600))
	_, err = Load(bad)
	require.ErrorIs(t, err, errs.ErrZeroSizeSchema)
	require.Contains(t, err.Error(), "bad.yaml")
}

func TestMarshal_RoundTrip(t *testing.T) {
	docs := []string{
		xsdpDoc,
		"order: '@'\nfields: [{name: flag, type: b}, {name: value, type: i}]",
		"order: '<'\nfields: [{type: x, count: 3}, {name: a, type: h}, {type: i, count: 0}, {type: x, count: 2}]",
		"order: '='\nfields: [{type: h, default: -1}, {name: label, type: p, count: 6, default: hi}]",
	}

	for _, doc := range docs {
		orig, err := Parse([]byte(doc))
		require.NoError(t, err)

		out, err := Marshal(orig)
		require.NoError(t, err)

		again, err := Parse(out)
		require.NoError(t, err, string(out))
		require.Equal(t, orig.Size(), again.Size())
		require.Equal(t, orig.Fingerprint(), again.Fingerprint())
		require.Equal(t, orig.Defaults(), again.Defaults())
	}
}

func TestFromSchema_Padding(t *testing.T) {
	s, err := Parse([]byte("order: '<'\nfields: [{type: x, count: 3}, {name: a, type: h}, {type: x, count: 2}]"))
	require.NoError(t, err)

	doc := FromSchema(s)
	require.Len(t, doc.Fields, 3)
	require.Equal(t, "pad", doc.Fields[0].Type)
	require.Equal(t, 3, *doc.Fields[0].Count)
	require.Equal(t, "short", doc.Fields[1].Type)
	require.Equal(t, 2, *doc.Fields[2].Count)

	out, err := Marshal(s)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(out), "order: little_endian\n"), string(out))
}
