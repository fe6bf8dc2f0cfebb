// Package record implements named, fixed-layout binary records.
//
// A Schema is built once from an ordered list of FieldSpecs under a byte order
// specifier. It assigns every field an offset, computes the record size and prepares
// a default image. Records created from the schema own a buffer of exactly that size
// and read or write fields in place:
//
//	schema, err := record.Build(format.BigEndian, []record.FieldSpec{
//		{Name: "magic", Code: format.String, Count: 4, Default: "XSDP", ReadOnly: true},
//		{Name: "correl_id", Code: format.UnsignedLong, Count: 1},
//		{Name: "data", Code: format.String, Count: 16},
//	})
//	if err != nil {
//		return err
//	}
//
//	msg := schema.New()
//	_ = msg.Set("correl_id", 0x01020304)
//	wire := msg.Bytes()
//
// Field values follow the codec value model: signed codes read back as int64,
// unsigned codes as uint64, float codes as float64 and 'c', 's', 'p' as []byte.
// Repeated scalar fields read and write ordered sequences.
//
// Schemas are immutable and may be shared freely. A Record is owned by one writer.
package record
