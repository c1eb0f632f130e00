package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndParseToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.CreateToken(7, "学生七", "user", "B区")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)

	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "学生七", claims.Name)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "B区", claims.Building)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).CreateToken(7, "x", "user", "")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := NewManager("test-secret", -time.Minute).CreateToken(7, "x", "user", "")
	require.NoError(t, err)

	_, err = NewManager("test-secret", time.Hour).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := NewManager("test-secret", time.Hour).ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
