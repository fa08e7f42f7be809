package api

import (
	"context"
	"net/http"

	"github.com/leboncoincoin/marketplace-web/internal/model"
)

// Contact groups the contact form endpoint.
type Contact struct{ c *Client }

// Send forwards a contact message to the site operators.
func (ct *Contact) Send(ctx context.Context, req *model.ContactRequest) error {
	return ct.c.do(ctx, call{method: http.MethodPost, route: "/contact", path: "/contact", body: req})
}
