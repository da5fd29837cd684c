package structure

import (
	"fmt"
	"strings"

	"github.com/koehlma/binarize/errs"
)

// Struct is a mutable instance of a Schema: an ordered value per declared
// field. Fields may be left unset at construction and assigned later; unset
// fields only fail at encode time. Instances are not synchronized; callers
// coordinate concurrent mutation.
type Struct struct {
	schema *Schema
	values []any
	set    []bool
}

// New constructs an instance with positional values bound to the schema's
// fields in declaration order. Fewer values than fields leaves the remaining
// fields unset; more values than fields fails.
func (s *Schema) New(values ...any) (*Struct, error) {
	if len(values) > len(s.fields) {
		return nil, fmt.Errorf("%s: %w: %d values for %d fields", s.name, errs.ErrArityMismatch, len(values), len(s.fields))
	}

	st := &Struct{
		schema: s,
		values: make([]any, len(s.fields)),
		set:    make([]bool, len(s.fields)),
	}
	for i, v := range values {
		st.values[i] = v
		st.set[i] = true
	}

	return st, nil
}

// NewFromMap constructs an instance with values bound by field name.
func (s *Schema) NewFromMap(values map[string]any) (*Struct, error) {
	st, _ := s.New()
	for name, v := range values {
		if err := st.Set(name, v); err != nil {
			return nil, err
		}
	}

	return st, nil
}

// Schema returns the schema this instance was built from.
func (st *Struct) Schema() *Schema {
	return st.schema
}

// Get returns the value of the named field. The second result is false if
// the field does not exist or has no value.
func (st *Struct) Get(name string) (any, bool) {
	i, ok := st.schema.index[name]
	if !ok || !st.set[i] {
		return nil, false
	}

	return st.values[i], true
}

// At returns the value at the given field position, or nil if unset.
func (st *Struct) At(i int) any {
	return st.values[i]
}

// Set assigns the named field. No validation happens here; invalid values
// surface when the instance is encoded.
func (st *Struct) Set(name string, value any) error {
	i, ok := st.schema.index[name]
	if !ok {
		return fmt.Errorf("%s: %q: %w", st.schema.name, name, errs.ErrUnknownField)
	}

	st.values[i] = value
	st.set[i] = true

	return nil
}

// SetAt assigns the field at the given position.
func (st *Struct) SetAt(i int, value any) {
	st.values[i] = value
	st.set[i] = true
}

// Encode returns the wire form of the instance: the concatenation of all
// field encodings in declaration order. When the schema is fixed-size the
// output buffer is allocated at its exact final length up front.
func (st *Struct) Encode() ([]byte, error) {
	var dst []byte
	if n, ok := st.schema.Size(); ok {
		dst = make([]byte, 0, n)
	}

	return st.schema.Pack(dst, st)
}

func (st *Struct) String() string {
	parts := make([]string, 0, len(st.schema.fields))
	for i, f := range st.schema.fields {
		if !st.set[i] {
			parts = append(parts, f.Name+"=<unset>")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", f.Name, st.values[i]))
	}

	return fmt.Sprintf("<Structure:%s %s>", st.schema.name, strings.Join(parts, ", "))
}
