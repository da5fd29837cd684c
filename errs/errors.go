// Package errs defines the sentinel errors returned by the binarize codecs.
//
// All errors are plain sentinels so callers can classify failures with
// errors.Is. Encoders and decoders wrap them with fmt.Errorf("%w: ...") when
// additional detail (a field name, an offending value) helps diagnostics.
package errs

import "errors"

// Value and range errors reported by the primitive codecs.
var (
	// ErrInvalidValue indicates a value whose Go type is not accepted by the
	// target primitive (e.g. a string handed to UINT16).
	ErrInvalidValue = errors.New("value kind not accepted by type")

	// ErrValueOutOfRange indicates an integer outside the primitive's bounds,
	// a decimal whose digit count or exponent exceeds its format, or a
	// decoded size that does not fit in 64 bits.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrLengthExceeded indicates a fixed-size BYTES/STRING value longer than
	// the configured size.
	ErrLengthExceeded = errors.New("value longer than fixed size")

	// ErrLengthUnderrun indicates a fixed-size BYTES/STRING value shorter than
	// the configured size with padding explicitly disabled.
	ErrLengthUnderrun = errors.New("value shorter than fixed size and no fill configured")

	// ErrEncoding indicates the configured text encoding refused a character.
	ErrEncoding = errors.New("text encoding rejected value")

	// ErrInvalidUTF8 indicates a decoded STRING payload is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("malformed UTF-8")

	// ErrInvalidCalendar indicates DATE/TIME fields that do not form a valid
	// calendar value.
	ErrInvalidCalendar = errors.New("invalid calendar value")

	// ErrTruncatedBuffer indicates a decoder needed more bytes than available.
	ErrTruncatedBuffer = errors.New("buffer too short")
)

// Schema and enum errors reported by the structure engine.
var (
	// ErrArityMismatch indicates positional construction with more values
	// than declared fields.
	ErrArityMismatch = errors.New("more values than fields")

	// ErrMissingField indicates an encode of a structure with an unset field.
	ErrMissingField = errors.New("field has no value")

	// ErrUnknownField indicates a reference to a field the schema does not
	// declare.
	ErrUnknownField = errors.New("no such field")

	// ErrSchemaMismatch indicates a structure instance handed to a schema it
	// was not built from.
	ErrSchemaMismatch = errors.New("value built from different schema")

	// ErrEnumTooLarge indicates an enum definition whose cardinality exceeds
	// 16-bit ordinals without opting into varint ordinals.
	ErrEnumTooLarge = errors.New("enum cardinality exceeds 16-bit ordinals")

	// ErrUnknownEnumSymbol indicates an encode of a symbol that is not a
	// member of the enum.
	ErrUnknownEnumSymbol = errors.New("symbol not a member of enum")

	// ErrInvalidEnumOrdinal indicates a decoded ordinal outside the enum.
	ErrInvalidEnumOrdinal = errors.New("enum ordinal out of range")
)

// Dynamic codec errors.
var (
	// ErrUnsupportedType indicates a value whose kind the dynamic codec does
	// not encode.
	ErrUnsupportedType = errors.New("type not supported by dynamic encoding")

	// ErrInvalidConstructor indicates an unknown or misplaced constructor
	// byte.
	ErrInvalidConstructor = errors.New("invalid constructor byte")

	// ErrInvalidMapKey indicates a decoded map key that is not usable as a Go
	// map key.
	ErrInvalidMapKey = errors.New("decoded map key is not comparable")
)

// Frame envelope errors.
var (
	// ErrInvalidMagicNumber indicates the frame does not start with the
	// binarize magic number.
	ErrInvalidMagicNumber = errors.New("invalid frame magic number")

	// ErrInvalidVersion indicates an unsupported frame version byte.
	ErrInvalidVersion = errors.New("unsupported frame version")

	// ErrInvalidCompressionType indicates an unknown compression type byte.
	ErrInvalidCompressionType = errors.New("invalid compression type")

	// ErrInvalidFrameSize indicates a frame or payload length mismatch.
	ErrInvalidFrameSize = errors.New("frame size mismatch")

	// ErrChecksumMismatch indicates the payload checksum does not match the
	// frame header.
	ErrChecksumMismatch = errors.New("payload checksum mismatch")
)
