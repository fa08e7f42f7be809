package model

import (
	"time"
)

// Conversation is a message thread between a buyer and a seller about one listing.
type Conversation struct {
	ID          string          `json:"id"`
	ListingID   string          `json:"listingId"`
	BuyerID     string          `json:"buyerId"`
	SellerID    string          `json:"sellerId"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	LastMessage *Message        `json:"lastMessage"`
	UnreadCount int             `json:"unreadCount"`
	Listing     *ListingSummary `json:"listing,omitempty"`
}

// CreateConversationRequest opens (or reopens) a conversation about a listing.
type CreateConversationRequest struct {
	ListingID      string `json:"listingId"`
	InitialMessage string `json:"initialMessage"`
}

// ConversationThread is a conversation together with its messages.
type ConversationThread struct {
	Conversation *Conversation `json:"conversation"`
	Messages     []Message     `json:"messages"`
}
