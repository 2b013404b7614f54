package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evsops/internal/token"
	dErrors "evsops/pkg/domain-errors"
	"evsops/pkg/domain"
)

func TestIssueAndValidate(t *testing.T) {
	svc := token.NewService("test-signing-key", "evsops")
	actor := domain.Actor{
		ID:   domain.NewUserID(),
		Name: "Noura Al-Qahtani",
		Role: domain.RoleInspector,
	}

	signed, err := svc.Issue(actor, time.Hour)
	require.NoError(t, err)

	got, err := svc.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, actor, got)
}

func TestValidateRejections(t *testing.T) {
	svc := token.NewService("test-signing-key", "evsops")
	actor := domain.Actor{ID: domain.NewUserID(), Name: "N", Role: domain.RoleInspector}

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Validate("not.a.token")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := token.NewService("a-different-key", "evsops")
		signed, err := other.Issue(actor, time.Hour)
		require.NoError(t, err)
		_, err = svc.Validate(signed)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("expired token", func(t *testing.T) {
		signed, err := svc.Issue(actor, -time.Minute)
		require.NoError(t, err)
		_, err = svc.Validate(signed)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}
