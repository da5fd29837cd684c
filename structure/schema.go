// Package structure implements the binarize schema engine: named aggregates
// of typed fields whose wire form is the exact concatenation of the field
// encodings in declaration order, with no delimiters or framing.
//
// Schemas are declared once at initialization time with NewSchema and are
// immutable afterwards. A schema itself satisfies primitive.Type, so schemas
// nest as field types of other schemas. The package also provides Enum, a
// Type adapter for finite ordered symbol sets.
package structure

import (
	"fmt"
	"strings"

	"github.com/koehlma/binarize/errs"
	"github.com/koehlma/binarize/primitive"
)

// Field is a named slot inside a schema, bound to a Type. Per-field wire
// options are expressed by deriving the field's primitive at declaration time
// (e.g. STRING.With(primitive.WithSize(6))).
type Field struct {
	Name string
	Type primitive.Type
}

// Schema is a frozen, ordered field list. Declaration order is wire order.
type Schema struct {
	name   string
	fields []Field
	index  map[string]int
	size   int
	fixed  bool
}

var _ primitive.Type = (*Schema)(nil)

// SchemaOption contributes fields to a schema under construction.
type SchemaOption func(*schemaBuilder)

type schemaBuilder struct {
	fields []Field
	index  map[string]int
}

// declare appends a field, or overrides an already-declared name in place so
// the field keeps its original wire position.
func (b *schemaBuilder) declare(name string, t primitive.Type) {
	if i, ok := b.index[name]; ok {
		b.fields[i].Type = t
		return
	}

	b.index[name] = len(b.fields)
	b.fields = append(b.fields, Field{Name: name, Type: t})
}

// WithField declares a field of the given type. Redeclaring a name (usually
// one inherited via Extend) overrides the earlier field at its original
// position.
func WithField(name string, t primitive.Type) SchemaOption {
	return func(b *schemaBuilder) {
		b.declare(name, t)
	}
}

// Extend inherits all fields of base, in base declaration order, before the
// fields declared by later options.
func Extend(base *Schema) SchemaOption {
	return func(b *schemaBuilder) {
		for _, f := range base.fields {
			b.declare(f.Name, f.Type)
		}
	}
}

// NewSchema builds a frozen schema from the given declarations. Options apply
// in the order given and fields appear on the wire in declaration order; an
// Extend option splices in a base schema's fields at its own position, so an
// Extend given before any WithField puts the base fields first.
func NewSchema(name string, opts ...SchemaOption) (*Schema, error) {
	b := &schemaBuilder{index: make(map[string]int)}
	for _, opt := range opts {
		opt(b)
	}

	for _, f := range b.fields {
		if f.Type == nil {
			return nil, fmt.Errorf("schema %s: field %q: %w", name, f.Name, errs.ErrInvalidValue)
		}
	}

	s := &Schema{
		name:   name,
		fields: b.fields,
		index:  b.index,
		fixed:  true,
	}
	for _, f := range s.fields {
		n, ok := f.Type.Size()
		if !ok {
			s.fixed = false
			s.size = 0
			break
		}
		s.size += n
	}

	return s, nil
}

// MustSchema is like NewSchema but panics on error. Intended for package-level
// schema declarations.
func MustSchema(name string, opts ...SchemaOption) *Schema {
	s, err := NewSchema(name, opts...)
	if err != nil {
		panic(err)
	}

	return s
}

// Name returns the schema name.
func (s *Schema) Name() string {
	return s.name
}

// Size returns the aggregate wire size and true iff every field is
// fixed-size.
func (s *Schema) Size() (int, bool) {
	if !s.fixed {
		return 0, false
	}

	return s.size, true
}

// Names returns the ordered field names.
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}

	return names
}

// Fields returns the ordered field list.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)

	return out
}

// NumFields returns the number of declared fields.
func (s *Schema) NumFields() int {
	return len(s.fields)
}

func (s *Schema) String() string {
	parts := make([]string, len(s.fields))
	for i, f := range s.fields {
		parts[i] = fmt.Sprintf("%s=%s", f.Name, f.Type.Name())
	}

	return fmt.Sprintf("<Structure:%s [%s]>", s.name, strings.Join(parts, ", "))
}

// Pack appends the encoding of value, which must be a *Struct built from
// this schema, to dst. Fields encode in declaration order; the first failing
// field aborts the encode.
func (s *Schema) Pack(dst []byte, value any) ([]byte, error) {
	st, ok := value.(*Struct)
	if !ok {
		return dst, fmt.Errorf("%s: %w: got %T", s.name, errs.ErrInvalidValue, value)
	}
	if st.schema != s {
		return dst, fmt.Errorf("%s: %w: value is a %s", s.name, errs.ErrSchemaMismatch, st.schema.name)
	}

	out := dst
	for i, f := range s.fields {
		if !st.set[i] {
			return dst, fmt.Errorf("%s: field %q: %w", s.name, f.Name, errs.ErrMissingField)
		}

		var err error
		out, err = f.Type.Pack(out, st.values[i])
		if err != nil {
			return dst, fmt.Errorf("%s: field %q: %w", s.name, f.Name, err)
		}
	}

	return out, nil
}

// Unpack decodes an instance from data starting at offset, reading fields in
// declaration order, and returns the first unread position.
func (s *Schema) Unpack(data []byte, offset int) (int, any, error) {
	values := make([]any, len(s.fields))
	for i, f := range s.fields {
		var err error
		offset, values[i], err = f.Type.Unpack(data, offset)
		if err != nil {
			return offset, nil, fmt.Errorf("%s: field %q: %w", s.name, f.Name, err)
		}
	}

	st, err := s.New(values...)
	if err != nil {
		return offset, nil, err
	}

	return offset, st, nil
}

// Decode decodes an instance from the start of data. Trailing bytes beyond
// the last field are ignored; use Unpack to learn the consumed length.
func (s *Schema) Decode(data []byte) (*Struct, error) {
	_, v, err := s.Unpack(data, 0)
	if err != nil {
		return nil, err
	}

	return v.(*Struct), nil
}
