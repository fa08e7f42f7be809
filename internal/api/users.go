package api

import (
	"context"
	"net/http"

	"github.com/leboncoincoin/marketplace-web/internal/model"
)

// Users groups the current-user endpoints.
type Users struct{ c *Client }

// Me returns the backend profile of the token's owner.
func (u *Users) Me(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := u.c.do(ctx, call{method: http.MethodGet, route: "/me", path: "/me", out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyListings returns the listings of the token's owner.
func (u *Users) MyListings(ctx context.Context) ([]model.Listing, error) {
	var out []model.Listing
	err := u.c.do(ctx, call{method: http.MethodGet, route: "/me/listings", path: "/me/listings", out: &out})
	return nonNil(out), err
}
