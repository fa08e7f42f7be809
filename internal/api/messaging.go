package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sourcegraph/conc/iter"
	"go.uber.org/zap"

	"github.com/leboncoincoin/marketplace-web/internal/model"
)

// maxEnrichers bounds concurrent listing fetches per conversation list.
const maxEnrichers = 8

// Messaging groups the conversation endpoints.
type Messaging struct{ c *Client }

// Conversations returns the user's conversations, each decorated with a
// summary of its listing when that listing can still be fetched.
func (m *Messaging) Conversations(ctx context.Context) ([]model.Conversation, error) {
	var convs []model.Conversation
	if err := m.c.do(ctx, call{
		method: http.MethodGet,
		route:  "/conversations",
		path:   "/conversations",
		out:    &convs,
	}); err != nil {
		return nil, err
	}

	mapper := iter.Mapper[model.Conversation, model.Conversation]{MaxGoroutines: maxEnrichers}
	return mapper.Map(convs, func(conv *model.Conversation) model.Conversation {
		out := *conv
		m.enrich(ctx, &out)
		return out
	}), nil
}

// Conversation returns one conversation with its listing summary.
func (m *Messaging) Conversation(ctx context.Context, id string) (*model.Conversation, error) {
	var conv model.Conversation
	if err := m.c.do(ctx, call{
		method: http.MethodGet,
		route:  "/conversations/{id}",
		path:   "/conversations/" + url.PathEscape(id),
		out:    &conv,
	}); err != nil {
		return nil, err
	}
	m.enrich(ctx, &conv)
	return &conv, nil
}

// Create opens a conversation about a listing, or returns the existing one.
func (m *Messaging) Create(ctx context.Context, req *model.CreateConversationRequest) (*model.Conversation, error) {
	var conv model.Conversation
	if err := m.c.do(ctx, call{
		method: http.MethodPost,
		route:  "/conversations",
		path:   "/conversations",
		body:   req,
		out:    &conv,
	}); err != nil {
		return nil, err
	}
	return &conv, nil
}

// Messages returns a conversation's messages, oldest first.
func (m *Messaging) Messages(ctx context.Context, conversationID string) ([]model.Message, error) {
	var out []model.Message
	err := m.c.do(ctx, call{
		method: http.MethodGet,
		route:  "/conversations/{id}/messages",
		path:   "/conversations/" + url.PathEscape(conversationID) + "/messages",
		out:    &out,
	})
	return nonNil(out), err
}

// Send posts a message.
func (m *Messaging) Send(ctx context.Context, conversationID string, req *model.SendMessageRequest) (*model.Message, error) {
	var out model.Message
	if err := m.c.do(ctx, call{
		method: http.MethodPost,
		route:  "/conversations/{id}/messages",
		path:   "/conversations/" + url.PathEscape(conversationID) + "/messages",
		body:   req,
		out:    &out,
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkRead marks one message as read.
func (m *Messaging) MarkRead(ctx context.Context, conversationID, messageID string) error {
	return m.c.do(ctx, call{
		method: http.MethodPut,
		route:  "/conversations/{id}/messages/{messageId}/read",
		path:   "/conversations/" + url.PathEscape(conversationID) + "/messages/" + url.PathEscape(messageID) + "/read",
	})
}

// MarkAllRead marks every message of a conversation as read.
func (m *Messaging) MarkAllRead(ctx context.Context, conversationID string) error {
	return m.c.do(ctx, call{
		method: http.MethodPut,
		route:  "/conversations/{id}/messages/mark-all-read",
		path:   "/conversations/" + url.PathEscape(conversationID) + "/messages/mark-all-read",
	})
}

// enrich attaches the listing summary; failures leave conv untouched.
func (m *Messaging) enrich(ctx context.Context, conv *model.Conversation) {
	if conv.ListingID == "" || conv.Listing != nil {
		return
	}
	listing, err := m.c.Listings().Get(ctx, conv.ListingID)
	if err != nil {
		m.c.logger.Debug("listing enrichment skipped",
			zap.String("conversation_id", conv.ID),
			zap.String("listing_id", conv.ListingID),
			zap.Error(err),
		)
		return
	}
	conv.Listing = listing.Summary()
}
