package model

import (
	"time"
)

// Message is a single entry of a conversation.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Content        string    `json:"content"`
	SentAt         time.Time `json:"sentAt"`
	IsRead         bool      `json:"isRead"`
}

// SendMessageRequest is the request to send a new message.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// NotificationCounts are the badge counters shown in the navigation bar.
type NotificationCounts struct {
	UserID         string    `json:"userId"`
	Favorites      int       `json:"favorites"`
	UnreadMessages int       `json:"unreadMessages"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ErrorEvent represents an error event.
type ErrorEvent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HeartbeatEvent represents a heartbeat event.
type HeartbeatEvent struct {
	Timestamp time.Time `json:"timestamp"`
}
