package auth

import "context"

// Fixed development identity.
const (
	DevUserID    = "dev-user-123"
	DevUserName  = "Dev User"
	DevUserEmail = "dev@lmc.local"
	DevToken     = "fake-dev-token"
)

// DevProvider signs every request in as the development user.
type DevProvider struct{}

// Name implements Provider.
func (DevProvider) Name() string { return "dev" }

// Authenticate implements Provider. The bearer is ignored.
func (DevProvider) Authenticate(context.Context, string) (*Session, error) {
	return &Session{
		Loaded:   true,
		SignedIn: true,
		User: &User{
			ID:    DevUserID,
			Name:  DevUserName,
			Email: DevUserEmail,
		},
		token: DevToken,
	}, nil
}
