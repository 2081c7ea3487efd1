package jwt

import (
	"testing"
	"time"

	"github.com/avelkov/sporthub/internal/domain/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_RoundTrip(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "user@example.com"}

	token, err := NewToken(user, "secret", time.Hour)
	require.NoError(t, err)

	ident, err := ParseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, ident.ID)
	assert.Equal(t, user.Email, ident.Email)
}

func TestParseToken_WrongSecret(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "user@example.com"}

	token, err := NewToken(user, "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "user@example.com"}

	token, err := NewToken(user, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, "secret")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not.a.token", "secret")
	require.ErrorIs(t, err, ErrInvalidToken)
}
