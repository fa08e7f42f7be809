// Package notify polls the badge counters (favorites and unread
// messages) for a signed-in user and pushes them to subscribers.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/leboncoincoin/marketplace-web/internal/api"
	"github.com/leboncoincoin/marketplace-web/internal/auth"
	"github.com/leboncoincoin/marketplace-web/internal/model"
)

// CountFetcher computes the current counters for the context session.
// It always returns counts; failed parts are zero and reported in err.
type CountFetcher interface {
	Counts(ctx context.Context) (*model.NotificationCounts, error)
}

// BackendCounter computes counters from the marketplace backend.
type BackendCounter struct {
	api *api.Client
	now func() time.Time
}

// NewBackendCounter creates a counter using client.
func NewBackendCounter(client *api.Client) *BackendCounter {
	return &BackendCounter{api: client, now: time.Now}
}

// Counts implements CountFetcher. Anonymous sessions get zero counts.
// A favorites failure zeros both counters; a conversations failure
// zeros only the unread counter.
func (c *BackendCounter) Counts(ctx context.Context) (*model.NotificationCounts, error) {
	session := auth.FromContext(ctx)
	counts := &model.NotificationCounts{UserID: session.UserID(), UpdatedAt: c.now()}

	token, err := session.Token(ctx)
	if err != nil {
		return counts, nil
	}
	backend := c.api.WithToken(token)

	favs, err := backend.Favorites().List(ctx)
	if err != nil {
		return counts, fmt.Errorf("fetch favorites: %w", err)
	}
	counts.Favorites = len(favs)

	convs, err := backend.Messaging().Conversations(ctx)
	if err != nil {
		return counts, fmt.Errorf("fetch conversations: %w", err)
	}
	counts.UnreadMessages = UnreadTotal(convs)

	return counts, nil
}

// UnreadTotal sums the unread counts of conversations.
func UnreadTotal(convs []model.Conversation) int {
	total := 0
	for _, c := range convs {
		if c.UnreadCount > 0 {
			total += c.UnreadCount
		}
	}
	return total
}
