package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/leboncoincoin/marketplace-web/internal/api"
	"github.com/leboncoincoin/marketplace-web/internal/model"
	"github.com/leboncoincoin/marketplace-web/pkg/logger"
)

// Contact message bounds, in runes.
const (
	MinContactLength = 10
	MaxContactLength = 2000
)

// AccountService handles the profile and contact pages.
type AccountService struct {
	api    *api.Client
	logger *logger.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(client *api.Client, log *logger.Logger) *AccountService {
	return &AccountService{api: client, logger: log}
}

// Me returns the backend profile of the signed-in user.
func (s *AccountService) Me(ctx context.Context) (*model.User, error) {
	backend, err := signedInBackend(ctx, s.api)
	if err != nil {
		return nil, err
	}
	u, err := backend.Users().Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return u, nil
}

// MyListings returns the signed-in user's listings.
func (s *AccountService) MyListings(ctx context.Context) ([]model.ListingView, error) {
	backend, err := signedInBackend(ctx, s.api)
	if err != nil {
		return nil, err
	}
	listings, err := backend.Users().MyListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list my listings: %w", err)
	}
	return views(listings), nil
}

// Contact sends a message to the site operators.
func (s *AccountService) Contact(ctx context.Context, req *model.ContactRequest) error {
	switch req.Reason {
	case model.ContactQuestion, model.ContactBugReport, model.ContactFeatureRequest,
		model.ContactAccountIssue, model.ContactOther:
	default:
		return fmt.Errorf("%w: unknown contact reason %q", ErrInvalidInput, req.Reason)
	}

	msg := strings.TrimSpace(req.Message)
	n := utf8.RuneCountInString(msg)
	if n < MinContactLength || n > MaxContactLength {
		return fmt.Errorf("%w: message must be %d to %d characters", ErrInvalidInput, MinContactLength, MaxContactLength)
	}

	backend, err := signedInBackend(ctx, s.api)
	if err != nil {
		return err
	}

	if err := backend.Contact().Send(ctx, &model.ContactRequest{Reason: req.Reason, Message: msg}); err != nil {
		return fmt.Errorf("send contact message: %w", err)
	}
	s.logger.Info("contact message sent", zap.String("reason", string(req.Reason)))
	return nil
}
