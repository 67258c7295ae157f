package shared

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenSigner(t *testing.T) {
	signer := NewAccessTokenSigner("test-secret")
	userID := uuid.New()
	appID := uuid.New()

	t.Run("should round-trip a valid token", func(t *testing.T) {
		token := signer.Sign(userID, appID, time.Hour)

		gotUser, gotApp, err := signer.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, userID, gotUser)
		assert.Equal(t, appID, gotApp)
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		token := signer.Sign(userID, appID, -time.Minute)

		_, _, err := signer.Verify(token)
		assert.ErrorContains(t, err, "expired")
	})

	t.Run("should reject a token signed with a different secret", func(t *testing.T) {
		other := NewAccessTokenSigner("other-secret")
		token := other.Sign(userID, appID, time.Hour)

		_, _, err := signer.Verify(token)
		assert.ErrorContains(t, err, "signature")
	})

	t.Run("should reject a tampered payload", func(t *testing.T) {
		token := signer.Sign(userID, appID, time.Hour)
		tampered := "x" + token

		_, _, err := signer.Verify(tampered)
		assert.Error(t, err)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, _, err := signer.Verify("not-a-token")
		assert.Error(t, err)
	})
}
