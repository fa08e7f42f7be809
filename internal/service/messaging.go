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

// MaxMessageLength bounds a chat message, in runes.
const MaxMessageLength = 5000

// MessagingService handles the conversations list and the chat page.
type MessagingService struct {
	api    *api.Client
	logger *logger.Logger
}

// NewMessagingService creates a new messaging service.
func NewMessagingService(client *api.Client, log *logger.Logger) *MessagingService {
	return &MessagingService{api: client, logger: log}
}

// Conversations returns the user's conversations with listing summaries.
func (s *MessagingService) Conversations(ctx context.Context) ([]model.Conversation, error) {
	backend, err := signedInBackend(ctx, s.api)
	if err != nil {
		return nil, err
	}
	convs, err := backend.Messaging().Conversations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return convs, nil
}

// Open loads a conversation and its messages, then marks every message
// read. A failed mark is logged and does not fail the page.
func (s *MessagingService) Open(ctx context.Context, conversationID string) (*model.ConversationThread, error) {
	backend, err := signedInBackend(ctx, s.api)
	if err != nil {
		return nil, err
	}

	conv, err := backend.Messaging().Conversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("get conversation %s: %w", conversationID, err)
	}

	msgs, err := backend.Messaging().Messages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	if err := backend.Messaging().MarkAllRead(ctx, conversationID); err != nil {
		s.logger.Warn("mark all read failed",
			zap.String("conversation_id", conversationID),
			zap.Error(err),
		)
	} else {
		conv.UnreadCount = 0
		for i := range msgs {
			msgs[i].IsRead = true
		}
	}

	return &model.ConversationThread{Conversation: conv, Messages: msgs}, nil
}

// Messages returns the messages of a conversation without marking them.
func (s *MessagingService) Messages(ctx context.Context, conversationID string) ([]model.Message, error) {
	backend, err := signedInBackend(ctx, s.api)
	if err != nil {
		return nil, err
	}
	msgs, err := backend.Messaging().Messages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

// Start opens a conversation with a listing's seller.
func (s *MessagingService) Start(ctx context.Context, req *model.CreateConversationRequest) (*model.Conversation, error) {
	if strings.TrimSpace(req.ListingID) == "" {
		return nil, fmt.Errorf("%w: listingId is required", ErrInvalidInput)
	}
	if req.InitialMessage != "" {
		content, err := checkMessage(req.InitialMessage)
		if err != nil {
			return nil, err
		}
		req.InitialMessage = content
	}

	backend, err := signedInBackend(ctx, s.api)
	if err != nil {
		return nil, err
	}

	conv, err := backend.Messaging().Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	s.logger.Info("conversation started",
		zap.String("conversation_id", conv.ID),
		zap.String("listing_id", req.ListingID),
	)
	return conv, nil
}

// Send posts a message in a conversation.
func (s *MessagingService) Send(ctx context.Context, conversationID, content string) (*model.Message, error) {
	content, err := checkMessage(content)
	if err != nil {
		return nil, err
	}

	backend, err := signedInBackend(ctx, s.api)
	if err != nil {
		return nil, err
	}

	msg, err := backend.Messaging().Send(ctx, conversationID, &model.SendMessageRequest{Content: content})
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return msg, nil
}

func checkMessage(content string) (string, error) {
	content = strings.TrimSpace(content)
	n := utf8.RuneCountInString(content)
	if n == 0 {
		return "", fmt.Errorf("%w: message is empty", ErrInvalidInput)
	}
	if n > MaxMessageLength {
		return "", fmt.Errorf("%w: message exceeds %d characters", ErrInvalidInput, MaxMessageLength)
	}
	return content, nil
}
