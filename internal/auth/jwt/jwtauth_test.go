package jwt

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken(t *testing.T) {
	jwtAuth := jwtauth.New("HS256", []byte("secret"), nil)

	tok, err := NewToken(jwtAuth, time.Hour, "admin-1", "admin")
	require.NoError(t, err)

	claims, err := VerifyToken(jwtAuth, tok)
	require.NoError(t, err)
	assert.Equal(t, Claims{Subject: "admin-1", Role: "admin"}, claims)
}

func TestTokenWithoutRole(t *testing.T) {
	jwtAuth := jwtauth.New("HS256", []byte("secret"), nil)

	tok, err := NewToken(jwtAuth, time.Hour, "user-1", "")
	require.NoError(t, err)

	claims, err := VerifyToken(jwtAuth, tok)
	require.NoError(t, err)
	assert.Equal(t, "", claims.Role)
}

func TestTokenRejected(t *testing.T) {
	jwtAuth := jwtauth.New("HS256", []byte("secret"), nil)
	other := jwtauth.New("HS256", []byte("other"), nil)

	tok, err := NewToken(other, time.Hour, "admin-1", "admin")
	require.NoError(t, err)
	_, err = VerifyToken(jwtAuth, tok)
	assert.Error(t, err)

	expired, err := NewToken(jwtAuth, -time.Hour, "admin-1", "admin")
	require.NoError(t, err)
	_, err = VerifyToken(jwtAuth, expired)
	assert.Error(t, err)

	_, err = NewToken(jwtAuth, time.Hour, "", "admin")
	assert.Error(t, err)
}
