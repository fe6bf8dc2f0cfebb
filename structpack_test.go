package structpack

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/structpack/errs"
	"github.com/arloliu/structpack/format"
	"github.com/arloliu/structpack/record"
)

func TestPackUnpack(t *testing.T) {
	data, err := Pack("<2sh", []byte("AB"), 300)
	require.NoError(t, err)
	require.Equal(t, []byte{0x41, 0x42, 0x2C, 0x01}, data)

	size, err := CalcSize("<2sh")
	require.NoError(t, err)
	require.Len(t, data, size)

	values, err := Unpack("<2sh", data)
	require.NoError(t, err)
	require.Equal(t, []any{[]byte("AB"), int64(300)}, values)

	_, err = Unpack("<2sh", data[:3])
	require.ErrorIs(t, err, errs.ErrSizeMismatch)
}

func TestDefineStruct(t *testing.T) {
	schema, err := DefineStruct(format.Standard, []record.FieldSpec{
		{Name: "id", Code: format.Int, Count: 1, ReadOnly: true},
		{Name: "name", Code: format.String, Count: 8},
	})
	require.NoError(t, err)
	require.Equal(t, 12, schema.Size())

	r := schema.New()
	require.Equal(t, make([]byte, 12), r.Bytes())
	require.ErrorIs(t, r.Set("id", 1), errs.ErrReadOnlyField)
	require.Equal(t, make([]byte, 12), r.Bytes())

	_, err = DefineStruct(format.Standard, []record.FieldSpec{
		{Name: "a", Code: format.Int, Count: 1},
		{Name: "a", Code: format.Int, Count: 1},
	})
	require.ErrorIs(t, err, errs.ErrDuplicateFieldName)
}

func ExamplePack() {
	data, _ := Pack("!f", 1.0)
	fmt.Printf("% X\n", data)

	data, _ = Pack("5p", "abcdef")
	fmt.Printf("%q\n", data)
	// Output:
	// 3F 80 00 00
	// "\x04abcd"
}

func ExampleDefineStruct() {
	schema, _ := DefineStruct(format.BigEndian, []record.FieldSpec{
		{Name: "magic", Code: format.String, Count: 4, Default: "XSDP", ReadOnly: true},
		{Name: "version", Code: format.Octet, Count: 2, Default: []int{1, 0}},
		{Name: "correl_id", Code: format.UnsignedLong, Count: 1},
	})

	msg := schema.New()
	_ = msg.Set("correl_id", 0x01020304)
	fmt.Println(schema.Size())
	fmt.Printf("% X\n", msg.Bytes())
	fmt.Println(msg)
	// Output:
	// 10
	// 58 53 44 50 01 00 01 02 03 04
	// {magic: "XSDP", version: [1 0], correl_id: 16909060}
}
