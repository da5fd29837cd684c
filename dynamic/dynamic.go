// Package dynamic implements the binarize self-describing codec. Every
// encoded value starts with a one-byte constructor selecting its kind; the
// payload follows immediately. Encoding dispatches on the runtime kind of the
// value, decoding on the constructor byte.
//
// Supported kinds: booleans, signed and unsigned integers, doubles, strings,
// byte strings, nil, sequences ([]any), maps (map[any]any and
// map[string]any), 128-bit decimals (*apd.Decimal), IPv4/IPv6 addresses
// (netip.Addr) and UUIDs (uuid.UUID).
//
// Small unsigned integers, negative integers, strings, byte strings,
// sequences and maps below 32 fold their value or length into the
// constructor byte. Longer sequences and maps use indefinite-length
// constructors terminated by an END sentinel; longer strings and byte
// strings carry an explicit big-endian length prefix.
//
// Maps encode with their pairs in a canonical order (string keys
// lexicographically, other key kinds by encoded bytes), so encoding is a pure
// function of the value even though Go maps are unordered.
package dynamic

// Constructor groups fold a small value or length into the low five bits of
// the constructor byte.
const (
	groupSmallUint  = 0x00
	groupSmallNeg   = 0x20
	groupShortStr   = 0x40
	groupShortBytes = 0x60
	groupShortSeq   = 0x80
	groupShortMap   = 0xA0

	groupPayloadMax = 31
)

// Extended constructors.
const (
	tagUint8     = 0xC0
	tagNegUint8  = 0xC1
	tagUint16    = 0xC2
	tagNegUint16 = 0xC3
	tagUint32    = 0xC4
	tagNegUint32 = 0xC5
	tagUint64    = 0xC6
	tagNegUint64 = 0xC7

	tagDouble = 0xC8

	tagDecimal32  = 0xCA
	tagDecimal64  = 0xCB
	tagDecimal128 = 0xCC

	tagTrue  = 0xCD
	tagFalse = 0xCE
	tagNull  = 0xCF

	tagVarint    = 0xD0
	tagNegVarint = 0xD1

	tagIPv4 = 0xD2
	tagIPv6 = 0xD3
	tagUUID = 0xD4

	tagSeq = 0xD5
	tagMap = 0xD6
	tagEnd = 0xD7

	tagStr8  = 0xD8
	tagStr16 = 0xD9
	tagStr32 = 0xDA
	tagStr64 = 0xDB

	tagBytes8  = 0xDC
	tagBytes16 = 0xDD
	tagBytes32 = 0xDE
	tagBytes64 = 0xDF
)
