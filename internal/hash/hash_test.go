package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSum64(t *testing.T) {
	payload := []byte("binarize")

	// Deterministic across calls.
	require.Equal(t, Sum64(payload), Sum64(payload))

	// Sensitive to content.
	require.NotEqual(t, Sum64(payload), Sum64([]byte("binarized")))

	// Empty input is well-defined.
	require.Equal(t, Sum64(nil), Sum64([]byte{}))
}
