package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	j := NewJWT("secret")

	token, err := j.GenerateAccessToken("a@example.com", "A", "http://x/a.png", time.Hour)
	require.NoError(t, err)

	claims, err := j.ParseAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "a@example.com", claims.Email)
	require.Equal(t, "A", claims.Name)
	require.Equal(t, "http://x/a.png", claims.Picture)
}

func TestParseAccessTokenRejects(t *testing.T) {
	j := NewJWT("secret")

	expired, err := j.GenerateAccessToken("a@example.com", "", "", -time.Minute)
	require.NoError(t, err)
	_, err = j.ParseAccessToken(expired)
	require.ErrorIs(t, err, jwtlib.ErrTokenExpired)

	foreign, err := NewJWT("other").GenerateAccessToken("a@example.com", "", "", time.Hour)
	require.NoError(t, err)
	_, err = j.ParseAccessToken(foreign)
	require.ErrorIs(t, err, jwtlib.ErrTokenSignatureInvalid)

	anonymous, err := j.GenerateAccessToken("", "", "", time.Hour)
	require.NoError(t, err)
	_, err = j.ParseAccessToken(anonymous)
	require.ErrorIs(t, err, ErrMissingEmail)
}
