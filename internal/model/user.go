package model

import (
	"time"
)

// Role is the backend role of a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the backend's view of the signed-in user.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Favorite links a user to a listing they bookmarked.
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ListingID string    `json:"listingId"`
	CreatedAt time.Time `json:"createdAt"`
}

// FavoriteStatus tells whether a listing is in the user's favorites.
type FavoriteStatus struct {
	IsFavorited bool `json:"isFavorited"`
}

// ContactReason is the topic of a contact form submission.
type ContactReason string

const (
	ContactQuestion       ContactReason = "QUESTION"
	ContactBugReport      ContactReason = "BUG_REPORT"
	ContactFeatureRequest ContactReason = "FEATURE_REQUEST"
	ContactAccountIssue   ContactReason = "ACCOUNT_ISSUE"
	ContactOther          ContactReason = "OTHER"
)

// ContactRequest is a message sent to the site operators.
type ContactRequest struct {
	Reason  ContactReason `json:"reason"`
	Message string        `json:"message"`
}
