package invite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	token, err := issuer.Sign("invitee@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	addr, err := issuer.Email(token)
	require.NoError(t, err)
	assert.Equal(t, "invitee@example.com", addr)
}

func TestTokenIssuer_EmptySecret(t *testing.T) {
	issuer := NewTokenIssuer("")

	_, err := issuer.Sign("invitee@example.com")
	assert.ErrorIs(t, err, ErrSigningFailed)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a").Sign("invitee@example.com")
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b").Email(token)
	assert.Error(t, err)
}

func TestTokenIssuer_Garbage(t *testing.T) {
	_, err := NewTokenIssuer("test-secret").Email("not-a-token")
	assert.Error(t, err)
}
