package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hasher := NewArgon2Hasher()

	encoded, err := hasher.Hash("password1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))
	assert.NotContains(t, encoded, "password1")

	ok, err := hasher.Verify(encoded, "password1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify(encoded, "password2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	hasher := NewArgon2Hasher()

	first, err := hasher.Hash("same password")
	require.NoError(t, err)
	second, err := hasher.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "two hashes of the same password must differ")

	for _, encoded := range []string{first, second} {
		ok, err := hasher.Verify(encoded, "same password")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	hasher := NewArgon2Hasher()

	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"plaintext", "not-a-hash"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
		{"missing sections", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hasher.Verify(tt.encoded, "password")
			assert.Error(t, err)
		})
	}
}
