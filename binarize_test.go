package binarize_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/koehlma/binarize"
	"github.com/koehlma/binarize/format"
	"github.com/koehlma/binarize/frame"
	"github.com/koehlma/binarize/primitive"
	"github.com/koehlma/binarize/structure"
)

func TestDynamicRoundTrip(t *testing.T) {
	value := map[string]any{
		"compact": true,
		"schema":  0,
		"tags":    []any{"a", "b"},
	}

	data, err := binarize.Encode(value)
	require.NoError(t, err)

	back, err := binarize.Decode(data)
	require.NoError(t, err)
	require.Equal(t, map[any]any{
		"compact": true,
		"schema":  int64(0),
		"tags":    []any{"a", "b"},
	}, back)
}

func TestSchemaThroughFrame(t *testing.T) {
	person := structure.MustSchema("Person",
		structure.WithField("age", primitive.UINT8),
		structure.WithField("name", primitive.STRING.With(primitive.WithSize(8))),
		structure.WithField("id", primitive.UUID),
	)

	inst, err := person.New(42, "gopher", uuid.MustParse("00112233-4455-6677-8899-aabbccddeeff"))
	require.NoError(t, err)

	payload, err := inst.Encode()
	require.NoError(t, err)

	sealed, err := binarize.Seal(payload, frame.WithCompression(format.CompressionS2))
	require.NoError(t, err)

	opened, err := binarize.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, payload, opened)

	back, err := person.Decode(opened)
	require.NoError(t, err)
	age, ok := back.Get("age")
	require.True(t, ok)
	require.Equal(t, uint8(42), age)
}

func TestChecksum(t *testing.T) {
	payload := []byte("payload")

	require.Equal(t, binarize.Checksum(payload), binarize.Checksum([]byte("payload")))
	require.NotEqual(t, binarize.Checksum(payload), binarize.Checksum([]byte("payloae")))
}
