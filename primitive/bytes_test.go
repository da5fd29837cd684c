package primitive

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/koehlma/binarize/errs"
)

func TestBytesVariable(t *testing.T) {
	data, err := BYTES.Pack(nil, []byte("abc"))
	require.NoError(t, err)
	require.Equal(t, []byte{0x03, 'a', 'b', 'c'}, data)

	off, v, err := BYTES.Unpack(data, 0)
	require.NoError(t, err)
	require.Equal(t, 4, off)
	require.Equal(t, []byte("abc"), v)

	// Empty payload still carries its size prefix.
	data, err = BYTES.Pack(nil, []byte{})
	require.NoError(t, err)
	require.Equal(t, []byte{0x00}, data)

	off, v, err = BYTES.Unpack(data, 0)
	require.NoError(t, err)
	require.Equal(t, 1, off)
	require.Equal(t, []byte{}, v)
}

func TestBytesVariableLarge(t *testing.T) {
	// A payload above 127 bytes exercises the two-byte size frame.
	payload := []byte(strings.Repeat("x", 300))

	data, err := BYTES.Pack(nil, payload)
	require.NoError(t, err)
	require.Len(t, data, 302)

	off, v, err := BYTES.Unpack(data, 0)
	require.NoError(t, err)
	require.Equal(t, 302, off)
	require.Equal(t, payload, v)
}

func TestBytesFixed(t *testing.T) {
	fixed := BYTES.With(WithSize(4))

	data, err := fixed.Pack(nil, []byte{0xAA, 0xBB})
	require.NoError(t, err)
	require.Equal(t, []byte{0xAA, 0xBB, 0x00, 0x00}, data)

	off, v, err := fixed.Unpack(data, 0)
	require.NoError(t, err)
	require.Equal(t, 4, off)
	require.Equal(t, []byte{0xAA, 0xBB, 0x00, 0x00}, v)

	n, ok := fixed.Size()
	require.True(t, ok)
	require.Equal(t, 4, n)
}

func TestBytesFixedFill(t *testing.T) {
	padded := BYTES.With(WithSize(4), WithFill(0xFF))

	data, err := padded.Pack(nil, []byte{0x01})
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0xFF, 0xFF, 0xFF}, data)
}

func TestBytesFixedErrors(t *testing.T) {
	fixed := BYTES.With(WithSize(4))

	_, err := fixed.Pack(nil, []byte("abcde"))
	require.ErrorIs(t, err, errs.ErrLengthExceeded)

	strict := BYTES.With(WithSize(4), WithNoFill())
	_, err = strict.Pack(nil, []byte("ab"))
	require.ErrorIs(t, err, errs.ErrLengthUnderrun)

	// Exact length is fine without fill.
	data, err := strict.Pack(nil, []byte("abcd"))
	require.NoError(t, err)
	require.Equal(t, []byte("abcd"), data)

	_, _, err = fixed.Unpack([]byte{0x01, 0x02}, 0)
	require.ErrorIs(t, err, errs.ErrTruncatedBuffer)

	_, err = fixed.Pack(nil, "abcd")
	require.ErrorIs(t, err, errs.ErrInvalidValue)
}

func TestStringVariable(t *testing.T) {
	data, err := STRING.Pack(nil, "héllo")
	require.NoError(t, err)
	// Length accounts for the encoded UTF-8 bytes, not the runes.
	require.Equal(t, byte(6), data[0])

	off, v, err := STRING.Unpack(data, 0)
	require.NoError(t, err)
	require.Equal(t, 7, off)
	require.Equal(t, "héllo", v)
}

func TestStringFixed(t *testing.T) {
	sized := STRING.With(WithSize(6))

	data, err := sized.Pack(nil, "abcdef")
	require.NoError(t, err)
	require.Equal(t, []byte("abcdef"), data)

	// Short values pad with spaces and decode with the padding preserved.
	data, err = sized.Pack(nil, "abc")
	require.NoError(t, err)
	require.Equal(t, []byte("abc   "), data)

	_, v, err := sized.Unpack(data, 0)
	require.NoError(t, err)
	require.Equal(t, "abc   ", v)

	_, err = sized.Pack(nil, "abcdefg")
	require.ErrorIs(t, err, errs.ErrLengthExceeded)
}

func TestStringInvalidUTF8(t *testing.T) {
	_, _, err := STRING.Unpack([]byte{0x02, 0xFF, 0xFE}, 0)
	require.ErrorIs(t, err, errs.ErrInvalidUTF8)
}

func TestStringCharmapEncoding(t *testing.T) {
	latin1 := STRING.With(WithEncoding(charmap.ISO8859_1))

	data, err := latin1.Pack(nil, "héllo")
	require.NoError(t, err)
	// Latin-1 is single-byte: one size byte plus five payload bytes.
	require.Equal(t, []byte{0x05, 'h', 0xE9, 'l', 'l', 'o'}, data)

	off, v, err := latin1.Unpack(data, 0)
	require.NoError(t, err)
	require.Equal(t, 6, off)
	require.Equal(t, "héllo", v)
}

func TestStringEncodingRejectsRune(t *testing.T) {
	latin1 := STRING.With(WithEncoding(charmap.ISO8859_1))

	_, err := latin1.Pack(nil, "日本")
	require.ErrorIs(t, err, errs.ErrEncoding)
}

func TestBoolean(t *testing.T) {
	data, err := BOOLEAN.Pack(nil, true)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01}, data)

	data, err = BOOLEAN.Pack(nil, false)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00}, data)

	// Any non-zero byte decodes to true.
	off, v, err := BOOLEAN.Unpack([]byte{0xFF}, 0)
	require.NoError(t, err)
	require.Equal(t, 1, off)
	require.Equal(t, true, v)

	_, v, err = BOOLEAN.Unpack([]byte{0x00}, 0)
	require.NoError(t, err)
	require.Equal(t, false, v)

	_, err = BOOLEAN.Pack(nil, 1)
	require.ErrorIs(t, err, errs.ErrInvalidValue)

	_, _, err = BOOLEAN.Unpack(nil, 0)
	require.ErrorIs(t, err, errs.ErrTruncatedBuffer)
}
