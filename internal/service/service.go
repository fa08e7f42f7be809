// Package service implements the data flows behind each marketplace page.
// Every call acts on behalf of the session stored in the context.
package service

import (
	"context"
	"errors"

	"github.com/leboncoincoin/marketplace-web/internal/api"
	"github.com/leboncoincoin/marketplace-web/internal/auth"
)

var (
	// ErrInvalidInput is the root of client-side validation failures.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthenticated is returned when a call needs a signed-in user.
	ErrUnauthenticated = errors.New("authentication required")
)

// backendFor returns base bound to the context session's token, or base
// itself for anonymous sessions.
func backendFor(ctx context.Context, base *api.Client) *api.Client {
	token, err := auth.FromContext(ctx).Token(ctx)
	if err != nil {
		return base
	}
	return base.WithToken(token)
}

// signedInBackend is backendFor for operations that need a user.
func signedInBackend(ctx context.Context, base *api.Client) (*api.Client, error) {
	token, err := auth.FromContext(ctx).Token(ctx)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return base.WithToken(token), nil
}
