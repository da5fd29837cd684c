// Package binarize implements compact, lossless binary serialization of
// structured application values.
//
// Two complementary codecs sit side-by-side:
//
//   - A schema-driven codec: the structure package composes named aggregates
//     over the primitive catalog. Encoding emits untagged, positional bytes;
//     decoding is type-directed by the schema.
//   - A self-describing codec: the dynamic package tags every value with a
//     one-byte constructor, so buffers decode without any schema.
//
// # Schema path
//
//	var person = structure.MustSchema("Person",
//	    structure.WithField("age", primitive.UINT8),
//	    structure.WithField("name", primitive.STRING.With(primitive.WithSize(20))),
//	    structure.WithField("id", primitive.UUID),
//	)
//
//	p, _ := person.New(uint8(34), "abcdef", uuid.New())
//	data, err := p.Encode()
//	back, err := person.Decode(data)
//
// # Dynamic path
//
//	data, err := binarize.Encode(map[string]any{"compact": true, "schema": 0})
//	value, err := binarize.Decode(data)
//
// # Frames
//
// The frame package wraps encoded payloads in a checksummed, optionally
// compressed envelope for storage and transport. Seal and Open are the
// top-level shortcuts:
//
//	sealed, err := binarize.Seal(data, frame.WithCompression(format.CompressionZstd))
//	payload, err := binarize.Open(sealed)
//
// All codecs are pure functions over immutable buffers and safe for
// concurrent use. This package provides convenient wrappers around the
// dynamic and frame packages; use those packages directly for fine-grained
// control.
package binarize

import (
	"github.com/koehlma/binarize/dynamic"
	"github.com/koehlma/binarize/frame"
	"github.com/koehlma/binarize/internal/hash"
)

// Encode returns the self-describing wire form of value. See the dynamic
// package for the supported kinds.
func Encode(value any) ([]byte, error) {
	return dynamic.Encode(value)
}

// Decode decodes a self-describing value from the start of data.
func Decode(data []byte) (any, error) {
	return dynamic.Decode(data)
}

// Seal wraps an encoded payload in a checksummed, optionally compressed
// frame.
func Seal(payload []byte, opts ...frame.Option) ([]byte, error) {
	return frame.Encode(payload, opts...)
}

// Open validates a frame produced by Seal and returns its payload.
func Open(data []byte) ([]byte, error) {
	return frame.Decode(data)
}

// Checksum computes the xxHash64 checksum frames use for payload integrity.
func Checksum(data []byte) uint64 {
	return hash.Sum64(data)
}
