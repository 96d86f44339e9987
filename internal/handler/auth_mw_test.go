package handler

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionFromClaims(t *testing.T) {
	session, err := sessionFromClaims(jwt.MapClaims{
		"id":           "user-1",
		"display_name": "Alice",
		"photo_url":    "https://cdn/alice.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, "Alice", session.DisplayName)
	assert.Equal(t, "https://cdn/alice.png", session.PhotoURL)
}

func TestSessionFromClaims_OptionalFieldsAbsent(t *testing.T) {
	session, err := sessionFromClaims(jwt.MapClaims{"id": "user-1"})
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)
	assert.Empty(t, session.DisplayName)
	assert.Empty(t, session.PhotoURL)
}

func TestSessionFromClaims_MissingID(t *testing.T) {
	_, err := sessionFromClaims(jwt.MapClaims{"display_name": "Alice"})
	assert.Error(t, err)

	_, err = sessionFromClaims(jwt.MapClaims{"id": ""})
	assert.Error(t, err)

	_, err = sessionFromClaims(jwt.MapClaims{"id": 42})
	assert.Error(t, err)
}
