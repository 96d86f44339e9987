package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, method jwt.SigningMethod, secret []byte, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func TestDecodeJWT(t *testing.T) {
	secret := []byte("test-secret")

	token := signToken(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{
		"id":           "user-1",
		"display_name": "Alice",
	})

	claims, err := DecodeJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["id"])
	assert.Equal(t, "Alice", claims["display_name"])
}

func TestDecodeJWT_WrongSecret(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, []byte("right-secret"), jwt.MapClaims{"id": "user-1"})

	_, err := DecodeJWT(token, []byte("wrong-secret"))
	assert.Error(t, err)
}

func TestDecodeJWT_Garbage(t *testing.T) {
	_, err := DecodeJWT("not-a-token", []byte("secret"))
	assert.Error(t, err)
}
