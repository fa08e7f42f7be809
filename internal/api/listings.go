package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/leboncoincoin/marketplace-web/internal/filter"
	"github.com/leboncoincoin/marketplace-web/internal/model"
)

// Listings groups the listing endpoints.
type Listings struct{ c *Client }

// List returns the listings matching f.
func (l *Listings) List(ctx context.Context, f model.Filter) ([]model.Listing, error) {
	var out []model.Listing
	err := l.c.do(ctx, call{
		method: http.MethodGet,
		route:  "/listings",
		path:   "/listings",
		query:  filter.Query(f),
		out:    &out,
	})
	return nonNil(out), err
}

// Get returns one listing.
func (l *Listings) Get(ctx context.Context, id string) (*model.Listing, error) {
	var out model.Listing
	if err := l.c.do(ctx, call{
		method: http.MethodGet,
		route:  "/listings/{id}",
		path:   "/listings/" + url.PathEscape(id),
		out:    &out,
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByUser returns the listings published by a seller.
func (l *Listings) ByUser(ctx context.Context, userID string) ([]model.Listing, error) {
	var out []model.Listing
	err := l.c.do(ctx, call{
		method: http.MethodGet,
		route:  "/listings/user/{userId}",
		path:   "/listings/user/" + url.PathEscape(userID),
		out:    &out,
	})
	return nonNil(out), err
}

// Create publishes a listing.
func (l *Listings) Create(ctx context.Context, req *model.ListingRequest) (*model.Listing, error) {
	var out model.Listing
	if err := l.c.do(ctx, call{
		method: http.MethodPost,
		route:  "/listings",
		path:   "/listings",
		body:   req,
		out:    &out,
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces a listing's editable fields.
func (l *Listings) Update(ctx context.Context, id string, req *model.ListingRequest) (*model.Listing, error) {
	var out model.Listing
	if err := l.c.do(ctx, call{
		method: http.MethodPut,
		route:  "/listings/{id}",
		path:   "/listings/" + url.PathEscape(id),
		body:   req,
		out:    &out,
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a listing. feedback may be nil.
func (l *Listings) Delete(ctx context.Context, id string, feedback *model.DeleteListingRequest) error {
	cl := call{
		method: http.MethodDelete,
		route:  "/listings/{id}",
		path:   "/listings/" + url.PathEscape(id),
	}
	if feedback != nil {
		cl.body = feedback
	}
	return l.c.do(ctx, cl)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
