package shared

import (
	"testing"

	"filippo.io/age"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeCipher(t *testing.T) {
	identity, err := age.GenerateX25519Identity()
	require.NoError(t, err)
	cipher := NewSecretCipher(identity)

	t.Run("should round-trip a secret value", func(t *testing.T) {
		ciphertext, err := cipher.Encrypt("super-secret-value")
		require.NoError(t, err)
		assert.NotContains(t, ciphertext, "super-secret-value")

		plaintext, err := cipher.Decrypt(ciphertext)
		require.NoError(t, err)
		assert.Equal(t, "super-secret-value", plaintext)
	})

	t.Run("should handle the empty string", func(t *testing.T) {
		ciphertext, err := cipher.Encrypt("")
		require.NoError(t, err)

		plaintext, err := cipher.Decrypt(ciphertext)
		require.NoError(t, err)
		assert.Equal(t, "", plaintext)
	})

	t.Run("should fail to decrypt with the wrong identity", func(t *testing.T) {
		ciphertext, err := cipher.Encrypt("super-secret-value")
		require.NoError(t, err)

		otherIdentity, err := age.GenerateX25519Identity()
		require.NoError(t, err)

		_, err = NewSecretCipher(otherIdentity).Decrypt(ciphertext)
		assert.Error(t, err)
	})

	t.Run("should fail on invalid base64", func(t *testing.T) {
		_, err := cipher.Decrypt("%%%not-base64%%%")
		assert.Error(t, err)
	})
}

func TestNewSecretCipherFromEnv(t *testing.T) {
	t.Run("should fail when SECRETS_KEY is missing", func(t *testing.T) {
		t.Setenv("SECRETS_KEY", "")

		_, err := NewSecretCipherFromEnv()
		assert.Error(t, err)
	})

	t.Run("should parse a valid identity", func(t *testing.T) {
		identity, err := age.GenerateX25519Identity()
		require.NoError(t, err)
		t.Setenv("SECRETS_KEY", identity.String())

		cipher, err := NewSecretCipherFromEnv()
		require.NoError(t, err)
		assert.NotNil(t, cipher)
	})
}
