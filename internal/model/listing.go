// Package model defines data structures for the marketplace web client.
package model

import (
	"time"
)

// Listing represents a classified ad.
type Listing struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	ImageURLs   []string  `json:"imageUrls"`
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// ListingView is a listing decorated for display.
type ListingView struct {
	Listing
	PriceLabel string `json:"priceLabel"`
}

// ListingSummary is the slice of a listing shown next to a conversation.
type ListingSummary struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Price     float64  `json:"price"`
	ImageURLs []string `json:"imageUrls"`
}

// Summary returns the conversation-side summary of the listing.
func (l *Listing) Summary() *ListingSummary {
	return &ListingSummary{
		ID:        l.ID,
		Title:     l.Title,
		Price:     l.Price,
		ImageURLs: l.ImageURLs,
	}
}

// ListingRequest is the body for creating or updating a listing.
type ListingRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	ImageURLs   []string `json:"imageUrls"`
}

// Filter holds the search criteria for browsing listings.
// Zero values mean "not set".
type Filter struct {
	Search   string   `json:"search,omitempty"`
	Category string   `json:"category,omitempty"`
	Location string   `json:"location,omitempty"`
	MinPrice *float64 `json:"minPrice,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty"`
}

// IsZero reports whether no criterion is set.
func (f Filter) IsZero() bool {
	return f.Search == "" && f.Category == "" && f.Location == "" &&
		f.MinPrice == nil && f.MaxPrice == nil
}

// DeletionReason explains why a listing was removed.
type DeletionReason string

const (
	DeletionSold              DeletionReason = "SOLD"
	DeletionNoLongerAvailable DeletionReason = "NO_LONGER_AVAILABLE"
	DeletionOther             DeletionReason = "OTHER"
)

// DeleteListingRequest is the optional feedback sent when deleting a listing.
type DeleteListingRequest struct {
	Reason  DeletionReason `json:"reason"`
	WasSold *bool          `json:"wasSold,omitempty"`
}

// PresignedURL is the backend's answer to an upload request.
type PresignedURL struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
	PublicURL string `json:"publicUrl"`
}

// PresignedURLRequest asks the backend for an upload slot.
type PresignedURLRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}
