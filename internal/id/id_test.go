package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Format(t *testing.T) {
	got, err := Generate("req")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "req-"))
	assert.Len(t, got, len("req-")+21)
}

func TestRequestID_Alphabet(t *testing.T) {
	seen := make(map[string]bool)
	for range 500 {
		rid := RequestID()
		require.True(t, strings.HasPrefix(rid, "req-"))

		body := strings.TrimPrefix(rid, "req-")
		assert.Len(t, body, requestIDLength)
		for _, r := range body {
			assert.True(t, strings.ContainsRune(requestAlphabet, r), "unexpected rune %q in %s", r, rid)
		}

		assert.False(t, seen[rid], "duplicate id %s", rid)
		seen[rid] = true
	}
}

func TestMustGenerate(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.True(t, strings.HasPrefix(MustGenerate("x"), "x-"))
	})
}
