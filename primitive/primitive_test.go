package primitive

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestDerivationEquality(t *testing.T) {
	// Same base, equal options.
	a := BYTES.With(WithSize(8))
	b := BYTES.With(WithSize(8))
	require.True(t, a.Equal(b))
	require.True(t, b.Equal(a))

	// Same base, different options.
	c := BYTES.With(WithSize(4))
	require.False(t, a.Equal(c))

	// Derived never equals its underived catalog entry.
	require.False(t, a.Equal(BYTES))
	require.False(t, BYTES.Equal(a))

	// Different base, same options.
	d := STRING.With(WithSize(8))
	require.False(t, a.Equal(d))

	// Catalog entries are equal only by identity.
	require.True(t, BYTES.Equal(BYTES))
	require.False(t, BYTES.Equal(STRING))
}

func TestDerivationMerge(t *testing.T) {
	// Later parameterizations merge over earlier ones; the rightmost option
	// for a key wins.
	base := STRING.With(WithSize(4))
	refined := base.With(WithFill('_'))

	data, err := refined.Pack(nil, "ab")
	require.NoError(t, err)
	require.Equal(t, []byte("ab__"), data)

	// Deriving twice in one call behaves the same.
	again := STRING.With(WithSize(4), WithFill('-'), WithFill('_'))
	require.True(t, refined.Equal(again))

	// The original derivation is untouched.
	data, err = base.Pack(nil, "ab")
	require.NoError(t, err)
	require.Equal(t, []byte("ab  "), data)
}

func TestDerivationBase(t *testing.T) {
	require.Nil(t, BYTES.Base())

	derived := BYTES.With(WithSize(2))
	require.Same(t, BYTES, derived.Base())

	// Deriving from a derived primitive keeps the catalog entry as base.
	chained := derived.With(WithFill(0x00))
	require.Same(t, BYTES, chained.Base())
}

func TestSizeReporting(t *testing.T) {
	n, ok := UINT16.Size()
	require.True(t, ok)
	require.Equal(t, 2, n)

	n, ok = DECIMAL128.Size()
	require.True(t, ok)
	require.Equal(t, 16, n)

	n, ok = DATE.Size()
	require.True(t, ok)
	require.Equal(t, 3, n)

	_, ok = TIME.Size()
	require.False(t, ok)
	_, ok = VARINT.Size()
	require.False(t, ok)
	_, ok = SIZE.Size()
	require.False(t, ok)
	_, ok = BYTES.Size()
	require.False(t, ok)

	n, ok = STRING.With(WithSize(20)).Size()
	require.True(t, ok)
	require.Equal(t, 20, n)
}

func TestNames(t *testing.T) {
	require.Equal(t, "UINT16", UINT16.Name())
	require.Equal(t, "DECIMAL64", DECIMAL64.Name())

	// Derivation keeps the catalog name.
	require.Equal(t, "STRING", STRING.With(WithSize(6)).Name())
}

func TestString(t *testing.T) {
	require.Equal(t, "<Primitive:UUID>", UUID.String())
	require.Equal(t, "<Primitive:BYTES, size=6>", BYTES.With(WithSize(6)).String())
	require.Equal(t, "<Primitive:BYTES, size=6, fill=0xff>", BYTES.With(WithSize(6), WithFill(0xFF)).String())
	require.Equal(t, "<Primitive:STRING, encoding=custom>", STRING.With(WithEncoding(charmap.ISO8859_1)).String())
}
