package service

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_GenerateToken(t *testing.T) {
	service := NewTokenService()

	t.Run("Success_GenerateToken", func(t *testing.T) {
		plainToken, tokenHash, err := service.GenerateToken()
		require.NoError(t, err)

		decodedBytes, err := base64.URLEncoding.DecodeString(plainToken)
		require.NoError(t, err)
		assert.Len(t, decodedBytes, 32)
		assert.Len(t, tokenHash, 64)

		expected := sha256.Sum256([]byte(plainToken))
		assert.Equal(t, hex.EncodeToString(expected[:]), tokenHash)
	})

	t.Run("Success_GenerateUniqueTokens", func(t *testing.T) {
		plainToken1, tokenHash1, err := service.GenerateToken()
		require.NoError(t, err)
		plainToken2, tokenHash2, err := service.GenerateToken()
		require.NoError(t, err)

		assert.NotEqual(t, plainToken1, plainToken2)
		assert.NotEqual(t, tokenHash1, tokenHash2)
	})
}

func TestTokenService_HashToken(t *testing.T) {
	service := NewTokenService()

	assert.Equal(t, service.HashToken("same-token"), service.HashToken("same-token"))
	assert.NotEqual(t, service.HashToken("token-a"), service.HashToken("token-b"))
	assert.Equal(
		t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		service.HashToken(""),
	)
}
