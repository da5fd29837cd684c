package primitive

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
)

// kind discriminates the wire format of a Primitive. Parameterized primitives
// share the kind of the catalog entry they derive from; encode and decode
// dispatch on it with the merged options as explicit parameters.
type kind uint8

const (
	kindSint8 kind = iota
	kindUint8
	kindSint16
	kindUint16
	kindSint32
	kindUint32
	kindSint64
	kindUint64
	kindFloat
	kindDouble
	kindDecimal32
	kindDecimal64
	kindDecimal128
	kindVarint
	kindSize
	kindUUID
	kindIPv4
	kindIPv6
	kindDate
	kindTime
	kindBytes
	kindString
	kindBoolean
)

const (
	sizeVariable = -1
	fillUnset    = -1
	fillNone     = -2
)

// Options carries the recognized parameterization of a primitive. The zero
// value is never used directly; catalog entries start from defaults and With
// merges caller options on top.
type Options struct {
	size int
	fill int
	enc  encoding.Encoding
}

// Option parameterizes a primitive, yielding a derived primitive via With.
type Option func(*Options)

// WithSize fixes the payload width of BYTES/STRING to n bytes. Shorter values
// are padded with the fill byte; longer values fail to encode.
func WithSize(n int) Option {
	return func(o *Options) { o.size = n }
}

// WithFill sets the pad byte used by fixed-size BYTES/STRING. The defaults
// are 0x00 for BYTES and 0x20 (space) for STRING.
func WithFill(b byte) Option {
	return func(o *Options) { o.fill = int(b) }
}

// WithNoFill disables padding: fixed-size values shorter than the configured
// size fail to encode instead of being padded.
func WithNoFill() Option {
	return func(o *Options) { o.fill = fillNone }
}

// WithEncoding sets the text encoding used by STRING. A nil encoding means
// UTF-8 with validation on decode. All length accounting happens on the
// encoded byte form.
func WithEncoding(enc encoding.Encoding) Option {
	return func(o *Options) { o.enc = enc }
}

// Primitive is a catalog wire type, possibly parameterized with options.
//
// Primitives are immutable. The catalog entries (SINT8 ... BOOLEAN) are
// package-level singletons; With derives new primitives that remember their
// options and the catalog entry they came from.
type Primitive struct {
	name string
	kind kind
	size int
	opts Options
	base *Primitive
}

var _ Type = (*Primitive)(nil)

func newPrimitive(name string, k kind, size int) *Primitive {
	return &Primitive{
		name: name,
		kind: k,
		size: size,
		opts: Options{size: sizeVariable, fill: fillUnset},
	}
}

// Name returns the primitive's catalog name.
func (p *Primitive) Name() string {
	return p.name
}

// Size returns the wire size and true for fixed-size primitives, or 0 and
// false for variable-length ones. A BYTES/STRING primitive parameterized with
// WithSize reports that size as fixed.
func (p *Primitive) Size() (int, bool) {
	if p.size != sizeVariable {
		return p.size, true
	}
	if (p.kind == kindBytes || p.kind == kindString) && p.opts.size != sizeVariable {
		return p.opts.size, true
	}

	return 0, false
}

// Base returns the catalog primitive this one derives from, or nil for
// catalog entries themselves.
func (p *Primitive) Base() *Primitive {
	return p.base
}

// With derives a new primitive with the given options merged over the
// current ones (later options override earlier ones). The derived primitive
// shares the receiver's base, or the receiver itself if it is a catalog
// entry.
func (p *Primitive) With(opts ...Option) *Primitive {
	merged := p.opts
	for _, opt := range opts {
		opt(&merged)
	}

	base := p.base
	if base == nil {
		base = p
	}

	return &Primitive{name: p.name, kind: p.kind, size: p.size, opts: merged, base: base}
}

// Equal reports behavioral equality: two derived primitives are equal iff
// they share the same base and equal options. Catalog entries are equal only
// to themselves.
func (p *Primitive) Equal(other *Primitive) bool {
	if other == nil {
		return false
	}
	if p.base == nil || other.base == nil {
		return p == other
	}

	return p.base == other.base && p.opts == other.opts
}

func (p *Primitive) String() string {
	var parts []string
	if p.opts.size != sizeVariable {
		parts = append(parts, fmt.Sprintf("size=%d", p.opts.size))
	}
	switch p.opts.fill {
	case fillUnset:
	case fillNone:
		parts = append(parts, "fill=none")
	default:
		parts = append(parts, fmt.Sprintf("fill=0x%02x", p.opts.fill))
	}
	if p.opts.enc != nil {
		parts = append(parts, "encoding=custom")
	}
	if len(parts) == 0 {
		return fmt.Sprintf("<Primitive:%s>", p.name)
	}

	return fmt.Sprintf("<Primitive:%s, %s>", p.name, strings.Join(parts, ", "))
}

// Pack appends the encoding of value to dst. Errors are wrapped with the
// primitive's name.
func (p *Primitive) Pack(dst []byte, value any) ([]byte, error) {
	out, err := p.pack(dst, value)
	if err != nil {
		return dst, fmt.Errorf("%s: %w", p.name, err)
	}

	return out, nil
}

// Unpack decodes a value from data starting at offset. Errors are wrapped
// with the primitive's name.
func (p *Primitive) Unpack(data []byte, offset int) (int, any, error) {
	off, value, err := p.unpack(data, offset)
	if err != nil {
		return offset, nil, fmt.Errorf("%s: %w", p.name, err)
	}

	return off, value, nil
}

func (p *Primitive) pack(dst []byte, value any) ([]byte, error) {
	switch p.kind {
	case kindSint8:
		return appendSint8(dst, value)
	case kindUint8:
		return appendUint8(dst, value)
	case kindSint16:
		return appendSint16(dst, value)
	case kindUint16:
		return appendUint16(dst, value)
	case kindSint32:
		return appendSint32(dst, value)
	case kindUint32:
		return appendUint32(dst, value)
	case kindSint64:
		return appendSint64(dst, value)
	case kindUint64:
		return appendUint64(dst, value)
	case kindFloat:
		return appendFloat(dst, value)
	case kindDouble:
		return appendDouble(dst, value)
	case kindDecimal32:
		return appendDecimal(dst, value, fmtDecimal32)
	case kindDecimal64:
		return appendDecimal(dst, value, fmtDecimal64)
	case kindDecimal128:
		return appendDecimal(dst, value, fmtDecimal128)
	case kindVarint:
		return appendVarintValue(dst, value)
	case kindSize:
		return appendSizeValue(dst, value)
	case kindUUID:
		return appendUUIDValue(dst, value)
	case kindIPv4:
		return appendIPv4Value(dst, value)
	case kindIPv6:
		return appendIPv6Value(dst, value)
	case kindDate:
		return appendDateValue(dst, value)
	case kindTime:
		return appendTimeValue(dst, value)
	case kindBytes:
		return appendBytesValue(dst, value, p.opts)
	case kindString:
		return appendStringValue(dst, value, p.opts)
	case kindBoolean:
		return appendBooleanValue(dst, value)
	default:
		return dst, fmt.Errorf("unknown primitive kind %d", p.kind)
	}
}

func (p *Primitive) unpack(data []byte, offset int) (int, any, error) {
	switch p.kind {
	case kindSint8:
		return readSint8(data, offset)
	case kindUint8:
		return readUint8(data, offset)
	case kindSint16:
		return readSint16(data, offset)
	case kindUint16:
		return readUint16(data, offset)
	case kindSint32:
		return readSint32(data, offset)
	case kindUint32:
		return readUint32(data, offset)
	case kindSint64:
		return readSint64(data, offset)
	case kindUint64:
		return readUint64(data, offset)
	case kindFloat:
		return readFloat(data, offset)
	case kindDouble:
		return readDouble(data, offset)
	case kindDecimal32:
		return readDecimal(data, offset, fmtDecimal32)
	case kindDecimal64:
		return readDecimal(data, offset, fmtDecimal64)
	case kindDecimal128:
		return readDecimal(data, offset, fmtDecimal128)
	case kindVarint:
		return readVarintValue(data, offset)
	case kindSize:
		return readSizeValue(data, offset)
	case kindUUID:
		return readUUID(data, offset)
	case kindIPv4:
		return readIPv4(data, offset)
	case kindIPv6:
		return readIPv6(data, offset)
	case kindDate:
		return readDate(data, offset)
	case kindTime:
		return readTime(data, offset)
	case kindBytes:
		return readBytesValue(data, offset, p.opts)
	case kindString:
		return readStringValue(data, offset, p.opts)
	case kindBoolean:
		return readBoolean(data, offset)
	default:
		return offset, nil, fmt.Errorf("unknown primitive kind %d", p.kind)
	}
}

// The primitive catalog. Each entry is a singleton; parameterize with With.
var (
	SINT8  = newPrimitive("SINT8", kindSint8, 1)
	UINT8  = newPrimitive("UINT8", kindUint8, 1)
	SINT16 = newPrimitive("SINT16", kindSint16, 2)
	UINT16 = newPrimitive("UINT16", kindUint16, 2)
	SINT32 = newPrimitive("SINT32", kindSint32, 4)
	UINT32 = newPrimitive("UINT32", kindUint32, 4)
	SINT64 = newPrimitive("SINT64", kindSint64, 8)
	UINT64 = newPrimitive("UINT64", kindUint64, 8)

	FLOAT  = newPrimitive("FLOAT", kindFloat, 4)
	DOUBLE = newPrimitive("DOUBLE", kindDouble, 8)

	DECIMAL32  = newPrimitive("DECIMAL32", kindDecimal32, 4)
	DECIMAL64  = newPrimitive("DECIMAL64", kindDecimal64, 8)
	DECIMAL128 = newPrimitive("DECIMAL128", kindDecimal128, 16)

	VARINT = newPrimitive("VARINT", kindVarint, sizeVariable)
	SIZE   = newPrimitive("SIZE", kindSize, sizeVariable)

	UUID = newPrimitive("UUID", kindUUID, 16)

	IPV4 = newPrimitive("IPV4", kindIPv4, 4)
	IPV6 = newPrimitive("IPV6", kindIPv6, 16)

	DATE = newPrimitive("DATE", kindDate, 3)
	TIME = newPrimitive("TIME", kindTime, sizeVariable)

	BYTES  = newPrimitive("BYTES", kindBytes, sizeVariable)
	STRING = newPrimitive("STRING", kindString, sizeVariable)

	BOOLEAN = newPrimitive("BOOLEAN", kindBoolean, 1)
)
