package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginIssuesVerifiableToken(t *testing.T) {
	service := NewService("s3cret", "signing-key", 0)

	token, err := service.Login("s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.True(t, service.Verify(token))
}

func TestLoginWrongPassword(t *testing.T) {
	service := NewService("s3cret", "signing-key", 0)

	_, err := service.Login("S3CRET")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = service.Login("")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestLoginDisabledWithoutPassword(t *testing.T) {
	// An unset password must not make the gate wide open.
	service := NewService("", "signing-key", 0)

	_, err := service.Login("")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewService("s3cret", "signing-key", 0)
	other := NewService("s3cret", "different-key", 0)

	token, err := issuer.Login("s3cret")
	require.NoError(t, err)

	assert.False(t, other.Verify(token))
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	service := NewService("s3cret", "signing-key", 0)

	// Issued more than a week ago, past the 7-day expiry.
	issuedAt := time.Now().Add(-8 * 24 * time.Hour)
	token, err := generateToken("signing-key", issuedAt, SessionTTL)
	require.NoError(t, err)

	assert.False(t, service.Verify(token))
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	service := NewService("s3cret", "signing-key", 0)

	assert.False(t, service.Verify(""))
	assert.False(t, service.Verify("not-a-token"))
	assert.False(t, service.Verify("a.b.c"))
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	service := NewService("s3cret", "signing-key", 0)

	claims := &Claims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	assert.False(t, service.Verify(unsigned))
}

func TestVerifyRequiresAdminClaim(t *testing.T) {
	service := NewService("s3cret", "signing-key", 0)

	claims := &Claims{
		Admin: false,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("signing-key"))
	require.NoError(t, err)

	assert.False(t, service.Verify(signed))
}

func TestLoginFailsWithoutSecret(t *testing.T) {
	service := NewService("s3cret", "", 0)

	_, err := service.Login("s3cret")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidPassword)
}
