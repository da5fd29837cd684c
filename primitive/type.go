// Package primitive implements the binarize primitive codec catalog: a fixed
// set of named wire types (integers, binary and decimal floats,
// variable-length integers, tiered sizes, UUIDs, IP addresses, calendar
// values, bytes, strings, booleans) plus the Type contract that structures
// and enums build on.
//
// All multi-byte integers are big-endian (network byte order). Every codec is
// a pure function over its inputs; the catalog singletons are immutable and
// safe for concurrent use.
package primitive

// Type is the contract shared by primitives, enums and structures.
//
// Pack appends the wire encoding of value to dst and returns the extended
// slice; on error the original dst is returned unchanged. Unpack reads a
// value starting at offset and returns the first unread position alongside
// the decoded value. Decoding is stateless and re-entrant: the same buffer
// may be consumed from multiple goroutines at independent offsets.
type Type interface {
	// Name returns the type's stable name, used in diagnostics and for
	// structure introspection.
	Name() string

	// Size returns the fixed wire size in bytes and true, or 0 and false for
	// variable-length types.
	Size() (int, bool)

	// Pack appends the encoding of value to dst.
	Pack(dst []byte, value any) ([]byte, error)

	// Unpack decodes a value from data starting at offset and returns the
	// new offset and the value.
	Unpack(data []byte, offset int) (int, any, error)
}
