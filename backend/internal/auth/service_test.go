package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studysync/backend/internal/shared"
)

func newTestAuth(secret, issuer string) *AuthService {
	return NewAuthService(&shared.ServiceConfig{
		Security: shared.SecurityConfig{
			JWTSecret:          secret,
			JWTIssuer:          issuer,
			JWTExpirationHours: 1,
		},
	})
}

func TestAuthService(t *testing.T) {
	s := newTestAuth("test-secret", "studysync")

	t.Run("Round trip", func(t *testing.T) {
		token, exp, err := s.GenerateToken("user-42", "student")
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

		claims, err := s.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-42", claims.UserID)
		assert.Equal(t, "student", claims.Role)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("Tokens are unique", func(t *testing.T) {
		a, _, err := s.GenerateToken("u", "r")
		require.NoError(t, err)
		b, _, err := s.GenerateToken("u", "r")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := s.ValidateToken("")
		assert.True(t, errors.Is(err, ErrTokenMissing))
	})

	t.Run("Wrong secret", func(t *testing.T) {
		token, _, err := newTestAuth("other-secret", "studysync").GenerateToken("u", "r")
		require.NoError(t, err)
		_, err = s.ValidateToken(token)
		assert.True(t, errors.Is(err, ErrTokenInvalid))
	})

	t.Run("Wrong issuer", func(t *testing.T) {
		token, _, err := newTestAuth("test-secret", "someone-else").GenerateToken("u", "r")
		require.NoError(t, err)
		_, err = s.ValidateToken(token)
		assert.True(t, errors.Is(err, ErrTokenInvalid))
	})

	t.Run("Expired", func(t *testing.T) {
		old := newTestAuth("test-secret", "studysync")
		old.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := old.GenerateToken("u", "r")
		require.NoError(t, err)

		_, err = s.ValidateToken(token)
		assert.True(t, errors.Is(err, ErrTokenInvalid))
	})

	t.Run("Rejects none algorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, CustomClaims{UserID: "u"})
		str, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = s.ValidateToken(str)
		assert.Error(t, err)
	})

	t.Run("No secret configured", func(t *testing.T) {
		_, _, err := newTestAuth("", "").GenerateToken("u", "r")
		assert.Error(t, err)
	})

	t.Run("Context", func(t *testing.T) {
		_, ok := ClaimsFromContext(context.Background())
		assert.False(t, ok)

		ctx := WithClaims(context.Background(), &CustomClaims{UserID: "abc"})
		claims, ok := ClaimsFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, "abc", claims.UserID)
	})
}
