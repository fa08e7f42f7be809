// Package auth selects how the web client identifies its user: a real
// identity provider when configured, or a fixed development identity.
package auth

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrInvalidToken is returned when a bearer token cannot be verified.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrNotSignedIn is returned by Session.Token for anonymous sessions.
	ErrNotSignedIn = errors.New("not signed in")
)

// User is the identity exposed to pages.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"fullName"`
	Email string `json:"primaryEmailAddress"`
}

// Session is the auth state of one request.
type Session struct {
	Loaded   bool  `json:"isLoaded"`
	SignedIn bool  `json:"isSignedIn"`
	User     *User `json:"user,omitempty"`

	token string
}

// Token returns the bearer token to forward to the marketplace backend.
func (s *Session) Token(_ context.Context) (string, error) {
	if s == nil || !s.SignedIn {
		return "", ErrNotSignedIn
	}
	return s.token, nil
}

// UserID returns the signed-in user's ID or "".
func (s *Session) UserID() string {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.ID
}

// Anonymous is a loaded session with nobody signed in.
func Anonymous() *Session {
	return &Session{Loaded: true}
}

// Provider authenticates a request from its bearer token.
type Provider interface {
	Name() string
	Authenticate(ctx context.Context, bearer string) (*Session, error)
}

// Settings is the subset of configuration the strategy choice depends on.
type Settings struct {
	PublishableKey string
	JWTSecret      string
}

// New picks the provider once: a non-blank publishable key selects the
// identity provider, anything else the development provider.
func New(s Settings) Provider {
	if strings.TrimSpace(s.PublishableKey) != "" {
		return NewIdentityProvider(s.JWTSecret)
	}
	return DevProvider{}
}

type contextKey struct{}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the request session, or an anonymous one.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(contextKey{}).(*Session); ok && s != nil {
		return s
	}
	return Anonymous()
}
