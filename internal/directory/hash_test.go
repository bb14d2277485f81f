package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHasherUnknownAlgorithm(t *testing.T) {
	_, err := newHasher(Config{Algorithm: "MD5"})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestPBKDF2RoundTrip(t *testing.T) {
	testCases := []struct {
		name      string
		algorithm string
	}{
		{name: "sha512", algorithm: AlgorithmPBKDF2SHA512},
		{name: "sha256", algorithm: AlgorithmPBKDF2SHA256},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, err := newHasher(Config{
				Algorithm:      tc.algorithm,
				HashIterations: DefaultHashIterations,
				KeyLength:      DefaultKeyLength,
			})
			require.NoError(t, err)

			hashed, err := h.Hash("some-salt", "secret")
			require.NoError(t, err)
			assert.NotEmpty(t, hashed)
			assert.NotContains(t, hashed, "secret")

			// Derivation is deterministic for a fixed salt.
			again, err := h.Hash("some-salt", "secret")
			require.NoError(t, err)
			assert.Equal(t, hashed, again)

			ok, err := h.Verify("some-salt", hashed, "secret")
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = h.Verify("some-salt", hashed, "wrong")
			require.NoError(t, err)
			assert.False(t, ok)

			ok, err = h.Verify("other-salt", hashed, "secret")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestPBKDF2KeyLength(t *testing.T) {
	h, err := newHasher(Config{
		Algorithm:      AlgorithmPBKDF2SHA512,
		HashIterations: DefaultHashIterations,
		KeyLength:      256,
	})
	require.NoError(t, err)

	hashed, err := h.Hash("salt", "secret")
	require.NoError(t, err)

	// 256 bits, hex encoded: 32 bytes become 64 characters.
	assert.Len(t, hashed, 64)
}

func TestArgon2idRoundTrip(t *testing.T) {
	h, err := newHasher(Config{Algorithm: AlgorithmArgon2id})
	require.NoError(t, err)

	hashed, err := h.Hash("", "secret")
	require.NoError(t, err)
	assert.Contains(t, hashed, "$argon2id$")

	ok, err := h.Verify("", hashed, "secret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("", hashed, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}
