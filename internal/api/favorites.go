package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/leboncoincoin/marketplace-web/internal/model"
)

// Favorites groups the favorites endpoints.
type Favorites struct{ c *Client }

// List returns the user's favorite records.
func (f *Favorites) List(ctx context.Context) ([]model.Favorite, error) {
	var out []model.Favorite
	err := f.c.do(ctx, call{method: http.MethodGet, route: "/favorites", path: "/favorites", out: &out})
	return nonNil(out), err
}

// Listings returns the favorited listings themselves.
func (f *Favorites) Listings(ctx context.Context) ([]model.Listing, error) {
	var out []model.Listing
	err := f.c.do(ctx, call{method: http.MethodGet, route: "/favorites/listings", path: "/favorites/listings", out: &out})
	return nonNil(out), err
}

// Add bookmarks a listing.
func (f *Favorites) Add(ctx context.Context, listingID string) error {
	return f.c.do(ctx, call{
		method: http.MethodPost,
		route:  "/favorites/{listingId}",
		path:   "/favorites/" + url.PathEscape(listingID),
	})
}

// Remove drops a bookmark.
func (f *Favorites) Remove(ctx context.Context, listingID string) error {
	return f.c.do(ctx, call{
		method: http.MethodDelete,
		route:  "/favorites/{listingId}",
		path:   "/favorites/" + url.PathEscape(listingID),
	})
}

// Status reports whether a listing is bookmarked.
func (f *Favorites) Status(ctx context.Context, listingID string) (bool, error) {
	var out model.FavoriteStatus
	err := f.c.do(ctx, call{
		method: http.MethodGet,
		route:  "/favorites/{listingId}/status",
		path:   "/favorites/" + url.PathEscape(listingID) + "/status",
		out:    &out,
	})
	return out.IsFavorited, err
}
