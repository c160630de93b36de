package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "cabinet/pkg/domain-errors"
)

func TestIssueAndValidate(t *testing.T) {
	svc := NewService("test-signing-key", "cabinet", time.Minute)

	signed, err := svc.Issue("usr-1", "jane@example.com", "standard")
	require.NoError(t, err)

	claims, err := svc.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, "usr-1", claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "standard", claims.Role)
}

func TestValidateRejections(t *testing.T) {
	svc := NewService("test-signing-key", "cabinet", time.Minute)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Validate("not-a-token")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("wrong key", func(t *testing.T) {
		other := NewService("different-key", "cabinet", time.Minute)
		signed, err := other.Issue("usr-1", "jane@example.com", "standard")
		require.NoError(t, err)

		_, err = svc.Validate(signed)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewService("test-signing-key", "cabinet", -time.Minute)
		signed, err := expired.Issue("usr-1", "jane@example.com", "standard")
		require.NoError(t, err)

		_, err = svc.Validate(signed)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}
