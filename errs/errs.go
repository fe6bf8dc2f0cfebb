// Package errs defines the sentinel errors returned by structpack packages.
//
// Every failure surfaced by the codec, the record engine and the containers built on
// top of them wraps exactly one of these sentinels, so callers can match the kind of
// failure with errors.Is while still getting a descriptive message:
//
//	_, err := codec.Unpack("<2sh", data)
//	if errors.Is(err, errs.ErrSizeMismatch) {
//	    // input has the wrong length for the format
//	}
package errs

import "errors"

// Format string errors.
var (
	// ErrBadFormatChar is returned when a format string or field spec names a type code
	// the selected table does not know.
	ErrBadFormatChar = errors.New("bad char in struct format")
	// ErrCountOverflow is returned when a decimal repeat count does not fit the count range.
	ErrCountOverflow = errors.New("overflow in item count")
	// ErrSizeOverflow is returned when the cumulative byte size exceeds the size range.
	ErrSizeOverflow = errors.New("total struct size too long")
)

// Pack and unpack errors.
var (
	// ErrInsufficientArguments is returned when pack runs out of values.
	ErrInsufficientArguments = errors.New("insufficient arguments to pack")
	// ErrTooManyArguments is returned when values remain after the last format step.
	ErrTooManyArguments = errors.New("too many arguments for pack format")
	// ErrSizeMismatch is returned when unpack input length differs from the format size.
	ErrSizeMismatch = errors.New("unpack data size does not match format")
	// ErrTypeMismatch is returned when a value cannot be coerced to the required type.
	ErrTypeMismatch = errors.New("value has unsupported type")
	// ErrOverflow is returned when a value does not fit the target representation.
	ErrOverflow = errors.New("value out of range")
)

// Schema and record errors.
var (
	ErrInvalidRepeatCount  = errors.New("invalid repeat count")
	ErrDuplicateFieldName  = errors.New("duplicate field name")
	ErrUnknownField        = errors.New("unknown field")
	ErrFieldNameNotAllowed = errors.New("field name given to count/type combination that does not count as a field")
	ErrReadOnlyField       = errors.New("field is not changeable")
	ErrFieldCountMismatch  = errors.New("field element count mismatch")
	ErrZeroSizeSchema      = errors.New("zero struct size")
	ErrInvalidByteOrder    = errors.New("invalid byte order specifier")
)

// Schema document errors.
var (
	ErrInvalidSchemaDocument = errors.New("invalid schema document")
)

// Compression errors.
var (
	// ErrDecompressedTooLarge is returned when a payload inflates past the caller's limit.
	ErrDecompressedTooLarge = errors.New("decompressed payload exceeds limit")
)

// Frame and store errors.
var (
	ErrInvalidFrameHeader = errors.New("invalid frame header")
	ErrInvalidMagicNumber = errors.New("invalid magic number")
	ErrSchemaMismatch     = errors.New("record schema mismatch")
	ErrFramePayloadSize   = errors.New("frame payload size mismatch")
	ErrRecordNotFound     = errors.New("record not found")
	ErrEncoderFinished    = errors.New("encoder already finished")
)
