package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims() Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user_42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Name:  "Camille",
		Email: "camille@example.com",
	}
}

func TestNew_SelectsStrategy(t *testing.T) {
	assert.Equal(t, "dev", New(Settings{}).Name())
	assert.Equal(t, "dev", New(Settings{PublishableKey: "  "}).Name())
	assert.Equal(t, "identity", New(Settings{PublishableKey: "pk_test_x"}).Name())
}

func TestNew_IdentityUsesSecret(t *testing.T) {
	p := New(Settings{PublishableKey: "pk_test_x", JWTSecret: testSecret})
	require.IsType(t, &IdentityProvider{}, p)

	s, err := p.Authenticate(context.Background(), signToken(t, testSecret, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "user_42", s.UserID())

	_, err = p.Authenticate(context.Background(), signToken(t, "other-secret", validClaims()))
	assert.ErrorIs(t, err, ErrInvalidToken)

	// never the fixed development user once a key is configured
	s, err = p.Authenticate(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, s.SignedIn)
	assert.NotEqual(t, DevUserID, s.UserID())
}

func TestDevProvider(t *testing.T) {
	s, err := DevProvider{}.Authenticate(context.Background(), "")
	require.NoError(t, err)

	assert.True(t, s.Loaded)
	assert.True(t, s.SignedIn)
	assert.Equal(t, DevUserID, s.UserID())
	assert.Equal(t, "Dev User", s.User.Name)
	assert.Equal(t, "dev@lmc.local", s.User.Email)

	token, err := s.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fake-dev-token", token)
}

func TestIdentityProvider_NoBearer(t *testing.T) {
	s, err := NewIdentityProvider(testSecret).Authenticate(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, s.Loaded)
	assert.False(t, s.SignedIn)

	_, err = s.Token(context.Background())
	assert.ErrorIs(t, err, ErrNotSignedIn)
}

func TestIdentityProvider_ValidToken(t *testing.T) {
	raw := signToken(t, testSecret, validClaims())

	s, err := NewIdentityProvider(testSecret).Authenticate(context.Background(), raw)
	require.NoError(t, err)
	assert.True(t, s.SignedIn)
	assert.Equal(t, "user_42", s.UserID())
	assert.Equal(t, "Camille", s.User.Name)

	token, err := s.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, raw, token)
}

func TestIdentityProvider_Rejects(t *testing.T) {
	p := NewIdentityProvider(testSecret)

	_, err := p.Authenticate(context.Background(), signToken(t, "other-secret", validClaims()))
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	_, err = p.Authenticate(context.Background(), signToken(t, testSecret, expired))
	assert.ErrorIs(t, err, ErrInvalidToken)

	noSubject := validClaims()
	noSubject.Subject = ""
	_, err = p.Authenticate(context.Background(), signToken(t, testSecret, noSubject))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = p.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIdentityProvider_NoSecretReadsClaims(t *testing.T) {
	raw := signToken(t, "unknown-to-us", validClaims())
	s, err := NewIdentityProvider("").Authenticate(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "user_42", s.UserID())
}

func TestIdentityProvider_NoSecretStillChecksTimes(t *testing.T) {
	p := NewIdentityProvider("")

	tests := []struct {
		name   string
		mutate func(c *Claims)
	}{
		{"expired a day ago", func(c *Claims) {
			c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-24 * time.Hour))
		}},
		{"not valid yet", func(c *Claims) {
			c.NotBefore = jwt.NewNumericDate(time.Now().Add(time.Hour))
		}},
		{"issued in the future", func(c *Claims) {
			c.IssuedAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := validClaims()
			claims.Subject = "victim"
			tt.mutate(&claims)

			s, err := p.Authenticate(context.Background(), signToken(t, "attacker-key", claims))
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, s)
		})
	}
}

func TestIdentityProvider_ToleratesClockSkew(t *testing.T) {
	claims := validClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-5 * time.Second))

	_, err := NewIdentityProvider("").Authenticate(context.Background(), signToken(t, "k", claims))
	assert.NoError(t, err)
	_, err = NewIdentityProvider(testSecret).Authenticate(context.Background(), signToken(t, testSecret, claims))
	assert.NoError(t, err)
}

func TestFromContext(t *testing.T) {
	s := FromContext(context.Background())
	assert.False(t, s.SignedIn)

	dev, _ := DevProvider{}.Authenticate(context.Background(), "")
	ctx := WithSession(context.Background(), dev)
	assert.Equal(t, DevUserID, FromContext(ctx).UserID())
}
