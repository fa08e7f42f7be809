package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/leboncoincoin/marketplace-web/internal/model"
)

const (
	// StreamName is the name of the notification counts stream.
	StreamName = "NOTIFICATIONS"

	// SubjectPrefix is the prefix for all notification subjects.
	SubjectPrefix = "notify"
)

// NotificationStream publishes per-user notification counts. Only the
// latest counts per user are retained.
type NotificationStream struct {
	client *Client
}

// NewNotificationStream creates a new notification stream.
func NewNotificationStream(client *Client) *NotificationStream {
	return &NotificationStream{client: client}
}

// EnsureStream ensures the notifications stream exists with proper configuration.
func (s *NotificationStream) EnsureStream(ctx context.Context) error {
	js := s.client.JetStream()

	if _, err := js.Stream(ctx, StreamName); err == nil {
		return nil
	}

	_, err := js.CreateStream(ctx, jetstream.StreamConfig{
		Name:              StreamName,
		Subjects:          []string{SubjectPrefix + ".>"},
		Retention:         jetstream.LimitsPolicy,
		MaxMsgsPerSubject: 1,
		MaxAge:            24 * time.Hour,
		Storage:           jetstream.MemoryStorage,
		Replicas:          1,
		Discard:           jetstream.DiscardOld,
		Description:       "Latest notification counts per user",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	return nil
}

// Subject returns the subject carrying a user's counts. Characters with
// a meaning in NATS subjects are replaced.
func Subject(userID string) string {
	return SubjectPrefix + "." + subjectToken(userID)
}

// Publish publishes counts to JetStream.
func (s *NotificationStream) Publish(ctx context.Context, counts *model.NotificationCounts) error {
	data, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("failed to marshal counts: %w", err)
	}

	if _, err := s.client.JetStream().Publish(ctx, Subject(counts.UserID), data); err != nil {
		return fmt.Errorf("failed to publish counts: %w", err)
	}
	return nil
}

func subjectToken(s string) string {
	if s == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t', '\r', '\n':
			return '_'
		}
		return r
	}, s)
}
