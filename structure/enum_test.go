package structure

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/koehlma/binarize/errs"
)

func symbolRange(n int) []string {
	symbols := make([]string, n)
	for i := range symbols {
		symbols[i] = fmt.Sprintf("SYM%05d", i)
	}

	return symbols
}

func TestEnum_SmallCardinality(t *testing.T) {
	e, err := NewEnum("Color", []string{"RED", "GREEN", "BLUE"})
	require.NoError(t, err)

	n, ok := e.Size()
	require.True(t, ok)
	require.Equal(t, 1, n)

	data, err := e.Pack(nil, "BLUE")
	require.NoError(t, err)
	require.Equal(t, []byte{0x02}, data)

	off, v, err := e.Unpack(data, 0)
	require.NoError(t, err)
	require.Equal(t, 1, off)
	require.Equal(t, "BLUE", v)
}

func TestEnum_WideCardinality(t *testing.T) {
	// 256 symbols no longer fit the one-byte ordinal rule.
	e, err := NewEnum("Wide", symbolRange(256))
	require.NoError(t, err)

	n, ok := e.Size()
	require.True(t, ok)
	require.Equal(t, 2, n)

	data, err := e.Pack(nil, "SYM00255")
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0xFF}, data)

	_, v, err := e.Unpack(data, 0)
	require.NoError(t, err)
	require.Equal(t, "SYM00255", v)
}

func TestEnum_TooLarge(t *testing.T) {
	_, err := NewEnum("Huge", symbolRange(65536))
	require.ErrorIs(t, err, errs.ErrEnumTooLarge)

	// Opting into varint ordinals lifts the limit.
	e, err := NewEnum("Huge", symbolRange(65536), WithVarintOrdinals())
	require.NoError(t, err)

	_, ok := e.Size()
	require.False(t, ok)

	data, err := e.Pack(nil, "SYM65535")
	require.NoError(t, err)

	_, v, err := e.Unpack(data, 0)
	require.NoError(t, err)
	require.Equal(t, "SYM65535", v)
}

func TestEnum_VarintOrdinals(t *testing.T) {
	e, err := NewEnum("Tiny", []string{"A", "B", "C"}, WithVarintOrdinals())
	require.NoError(t, err)

	_, ok := e.Size()
	require.False(t, ok)

	data, err := e.Pack(nil, "C")
	require.NoError(t, err)
	require.Equal(t, []byte{0x02}, data)

	_, v, err := e.Unpack(data, 0)
	require.NoError(t, err)
	require.Equal(t, "C", v)
}

func TestEnum_UnknownSymbol(t *testing.T) {
	e, err := NewEnum("Color", []string{"RED", "GREEN"})
	require.NoError(t, err)

	_, err = e.Pack(nil, "MAGENTA")
	require.ErrorIs(t, err, errs.ErrUnknownEnumSymbol)

	_, err = e.Pack(nil, 0)
	require.ErrorIs(t, err, errs.ErrInvalidValue)
}

func TestEnum_InvalidOrdinal(t *testing.T) {
	e, err := NewEnum("Color", []string{"RED", "GREEN"})
	require.NoError(t, err)

	_, _, err = e.Unpack([]byte{0x02}, 0)
	require.ErrorIs(t, err, errs.ErrInvalidEnumOrdinal)

	_, _, err = e.Unpack(nil, 0)
	require.ErrorIs(t, err, errs.ErrTruncatedBuffer)
}

func TestEnum_Symbols(t *testing.T) {
	symbols := []string{"RED", "GREEN"}
	e, err := NewEnum("Color", symbols)
	require.NoError(t, err)

	got := e.Symbols()
	require.Equal(t, symbols, got)

	// The returned slice is a copy; mutating it does not affect the enum.
	got[0] = "MUTATED"
	data, err := e.Pack(nil, "RED")
	require.NoError(t, err)
	require.Equal(t, []byte{0x00}, data)

	require.Equal(t, "Color", e.Name())
}

func TestMustEnumPanics(t *testing.T) {
	require.Panics(t, func() {
		MustEnum("Huge", symbolRange(65536))
	})
}
