package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/leboncoincoin/marketplace-web/internal/api"
	"github.com/leboncoincoin/marketplace-web/internal/model"
	"github.com/leboncoincoin/marketplace-web/pkg/logger"
)

// FavoriteService handles the favorites page and the heart toggle.
type FavoriteService struct {
	api    *api.Client
	logger *logger.Logger
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(client *api.Client, log *logger.Logger) *FavoriteService {
	return &FavoriteService{api: client, logger: log}
}

// Listings returns the user's favorited listings.
func (s *FavoriteService) Listings(ctx context.Context) ([]model.ListingView, error) {
	backend, err := signedInBackend(ctx, s.api)
	if err != nil {
		return nil, err
	}
	listings, err := backend.Favorites().Listings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return views(listings), nil
}

// Status reports whether a listing is favorited. Anonymous users have
// no favorites.
func (s *FavoriteService) Status(ctx context.Context, listingID string) (bool, error) {
	backend, err := signedInBackend(ctx, s.api)
	if err != nil {
		return false, nil
	}
	fav, err := backend.Favorites().Status(ctx, listingID)
	if err != nil {
		return false, fmt.Errorf("favorite status: %w", err)
	}
	return fav, nil
}

// Toggle flips the favorite state of a listing and returns the new state.
func (s *FavoriteService) Toggle(ctx context.Context, listingID string) (bool, error) {
	backend, err := signedInBackend(ctx, s.api)
	if err != nil {
		return false, err
	}

	fav, err := backend.Favorites().Status(ctx, listingID)
	if err != nil {
		return false, fmt.Errorf("favorite status: %w", err)
	}

	if fav {
		// a 404 means another tab already removed it
		if err := backend.Favorites().Remove(ctx, listingID); err != nil && !api.IsNotFound(err) {
			return true, fmt.Errorf("remove favorite: %w", err)
		}
	} else {
		if err := backend.Favorites().Add(ctx, listingID); err != nil {
			return false, fmt.Errorf("add favorite: %w", err)
		}
	}

	s.logger.Debug("favorite toggled", zap.String("listing_id", listingID), zap.Bool("favorited", !fav))
	return !fav, nil
}
