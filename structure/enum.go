package structure

import (
	"fmt"

	"github.com/koehlma/binarize/errs"
	"github.com/koehlma/binarize/primitive"
)

// Enum adapts a finite ordered set of symbols to a wire Type. The wire form
// is the symbol's ordinal, encoded with the narrowest fixed-width integer
// that covers the cardinality: UINT8 up to 255 symbols, UINT16 up to 65535.
// Larger sets must opt into varint ordinals at definition time.
type Enum struct {
	name    string
	symbols []string
	index   map[string]int
	ordinal *primitive.Primitive
}

var _ primitive.Type = (*Enum)(nil)

// EnumOption configures enum definition.
type EnumOption func(*enumConfig)

type enumConfig struct {
	varintOrdinals bool
}

// WithVarintOrdinals encodes ordinals as varints instead of fixed-width
// integers. Required for enums with more than 65535 symbols.
func WithVarintOrdinals() EnumOption {
	return func(c *enumConfig) { c.varintOrdinals = true }
}

// NewEnum defines an enum over the given symbols. Symbol order is
// significant: it fixes the ordinals and therefore the wire form.
func NewEnum(name string, symbols []string, opts ...EnumOption) (*Enum, error) {
	var cfg enumConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	ordinal := primitive.UINT8
	switch {
	case cfg.varintOrdinals:
		ordinal = primitive.VARINT
	case len(symbols) <= 255:
	case len(symbols) <= 65535:
		ordinal = primitive.UINT16
	default:
		return nil, fmt.Errorf("enum %s: %d symbols: %w", name, len(symbols), errs.ErrEnumTooLarge)
	}

	e := &Enum{
		name:    name,
		symbols: append([]string(nil), symbols...),
		index:   make(map[string]int, len(symbols)),
		ordinal: ordinal,
	}
	for i, sym := range e.symbols {
		e.index[sym] = i
	}

	return e, nil
}

// MustEnum is like NewEnum but panics on error. Intended for package-level
// enum declarations.
func MustEnum(name string, symbols []string, opts ...EnumOption) *Enum {
	e, err := NewEnum(name, symbols, opts...)
	if err != nil {
		panic(err)
	}

	return e
}

// Name returns the enum name.
func (e *Enum) Name() string {
	return e.name
}

// Size returns the ordinal width for fixed-width ordinals, or variable for
// varint ordinals.
func (e *Enum) Size() (int, bool) {
	return e.ordinal.Size()
}

// Symbols returns the ordered symbol list.
func (e *Enum) Symbols() []string {
	return append([]string(nil), e.symbols...)
}

// Pack appends the ordinal encoding of the given symbol to dst.
func (e *Enum) Pack(dst []byte, value any) ([]byte, error) {
	sym, ok := value.(string)
	if !ok {
		return dst, fmt.Errorf("%s: %w: got %T", e.name, errs.ErrInvalidValue, value)
	}

	i, ok := e.index[sym]
	if !ok {
		return dst, fmt.Errorf("%s: %q: %w", e.name, sym, errs.ErrUnknownEnumSymbol)
	}

	return e.ordinal.Pack(dst, i)
}

// Unpack reads an ordinal and returns the corresponding symbol.
func (e *Enum) Unpack(data []byte, offset int) (int, any, error) {
	off, v, err := e.ordinal.Unpack(data, offset)
	if err != nil {
		return offset, nil, fmt.Errorf("%s: %w", e.name, err)
	}

	var ordinal uint64
	switch n := v.(type) {
	case uint8:
		ordinal = uint64(n)
	case uint16:
		ordinal = uint64(n)
	case uint64:
		ordinal = n
	}
	if ordinal >= uint64(len(e.symbols)) {
		return offset, nil, fmt.Errorf("%s: ordinal %d of %d: %w", e.name, ordinal, len(e.symbols), errs.ErrInvalidEnumOrdinal)
	}

	return off, e.symbols[ordinal], nil
}
