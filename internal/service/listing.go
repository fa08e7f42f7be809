package service

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/leboncoincoin/marketplace-web/internal/api"
	"github.com/leboncoincoin/marketplace-web/internal/filter"
	"github.com/leboncoincoin/marketplace-web/internal/model"
	"github.com/leboncoincoin/marketplace-web/pkg/format"
	"github.com/leboncoincoin/marketplace-web/pkg/logger"
)

// ImageFile is one image to upload.
type ImageFile struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ListingService handles listing pages: browse, detail, seller, create,
// edit and delete.
type ListingService struct {
	api    *api.Client
	logger *logger.Logger
}

// NewListingService creates a new listing service.
func NewListingService(client *api.Client, log *logger.Logger) *ListingService {
	return &ListingService{api: client, logger: log}
}

// Browse returns the listings matching f.
func (s *ListingService) Browse(ctx context.Context, f model.Filter) ([]model.ListingView, error) {
	listings, err := backendFor(ctx, s.api).Listings().List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return views(listings), nil
}

// Get returns one listing.
func (s *ListingService) Get(ctx context.Context, id string) (*model.ListingView, error) {
	l, err := backendFor(ctx, s.api).Listings().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get listing %s: %w", id, err)
	}
	v := view(*l)
	return &v, nil
}

// BySeller returns the listings of one seller.
func (s *ListingService) BySeller(ctx context.Context, userID string) ([]model.ListingView, error) {
	listings, err := backendFor(ctx, s.api).Listings().ByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list seller listings: %w", err)
	}
	return views(listings), nil
}

// Create validates the form and publishes the listing. Invalid forms,
// including forms without images, never reach the backend.
func (s *ListingService) Create(ctx context.Context, req *model.ListingRequest) (*model.Listing, error) {
	form := filter.FormFromRequest(req)
	if err := form.Validate(filter.ModeCreate); err != nil {
		return nil, err
	}

	backend, err := signedInBackend(ctx, s.api)
	if err != nil {
		return nil, err
	}

	l, err := backend.Listings().Create(ctx, form.Request())
	if err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	s.logger.Info("listing created", zap.String("listing_id", l.ID), zap.String("category", l.Category))
	return l, nil
}

// Update loads the listing into an edit form, applies the submitted
// changes and saves it. The stored category stays locked unless the
// request names another one.
func (s *ListingService) Update(ctx context.Context, id string, req *model.ListingRequest) (*model.Listing, error) {
	backend, err := signedInBackend(ctx, s.api)
	if err != nil {
		return nil, err
	}

	current, err := backend.Listings().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load listing %s: %w", id, err)
	}

	form := filter.FormFromListing(current)
	if err := form.Apply(req); err != nil {
		return nil, err
	}
	if err := form.Validate(filter.ModeUpdate); err != nil {
		return nil, err
	}

	l, err := backend.Listings().Update(ctx, id, form.Request())
	if err != nil {
		return nil, fmt.Errorf("update listing %s: %w", id, err)
	}
	s.logger.Info("listing updated", zap.String("listing_id", id), zap.String("category", l.Category))
	return l, nil
}

// Delete removes a listing, forwarding optional feedback.
func (s *ListingService) Delete(ctx context.Context, id string, feedback *model.DeleteListingRequest) error {
	if feedback != nil {
		switch feedback.Reason {
		case model.DeletionSold, model.DeletionNoLongerAvailable, model.DeletionOther:
		default:
			return fmt.Errorf("%w: unknown deletion reason %q", ErrInvalidInput, feedback.Reason)
		}
	}

	backend, err := signedInBackend(ctx, s.api)
	if err != nil {
		return err
	}

	if err := backend.Listings().Delete(ctx, id, feedback); err != nil {
		return fmt.Errorf("delete listing %s: %w", id, err)
	}
	s.logger.Info("listing deleted", zap.String("listing_id", id))
	return nil
}

// UploadImages stores files through presigned URLs and returns their
// public URLs in order. existing is the number of images already attached.
func (s *ListingService) UploadImages(ctx context.Context, existing int, files []ImageFile) ([]string, error) {
	if existing+len(files) > filter.MaxImages {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, filter.ErrTooManyImages)
	}
	for _, f := range files {
		if !api.IsImageContentType(f.ContentType) {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, f.Filename, api.ErrUnsupportedContentType)
		}
	}

	backend, err := signedInBackend(ctx, s.api)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		presigned, err := backend.Uploads().PresignedURL(ctx, f.Filename, f.ContentType)
		if err != nil {
			return urls, fmt.Errorf("presign %s: %w", f.Filename, err)
		}
		if err := backend.Uploads().Put(ctx, presigned.UploadURL, f.ContentType, f.Body, f.Size); err != nil {
			return urls, fmt.Errorf("upload %s: %w", f.Filename, err)
		}
		urls = append(urls, presigned.PublicURL)
	}
	return urls, nil
}

func view(l model.Listing) model.ListingView {
	return model.ListingView{Listing: l, PriceLabel: format.FormatPrice(l.Price)}
}

func views(listings []model.Listing) []model.ListingView {
	out := make([]model.ListingView, len(listings))
	for i, l := range listings {
		out[i] = view(l)
	}
	return out
}
