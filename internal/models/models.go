package models

import "time"

// User roles as returned by the backend.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
	RoleNomad      = "nomad"
	RoleExplorer   = "explorer"
)

// User is the backend's user record. The same shape is used for the
// authenticated admin, nomads, and explorers.
type User struct {
	ID         string `json:"_id"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	ProfilePic string `json:"profilePic,omitempty"`
}

// IsAdmin reports whether the user holds an administrative role.
// A nil user is never an admin.
func (u *User) IsAdmin() bool {
	if u == nil {
		return false
	}
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// Pagination is the cursor the backend returns alongside list responses.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Itinerary statuses.
const (
	ItineraryDraft     = "draft"
	ItineraryPublished = "published"
	ItineraryDisabled  = "disabled"
)

// Itinerary is a travel itinerary authored by a nomad.
type Itinerary struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Destination string    `json:"destination,omitempty"`
	Status      string    `json:"status"`
	Author      *User     `json:"author,omitempty"`
	Likes       int       `json:"likes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Review statuses.
const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// Review is an explorer's review of an itinerary. Reviews are held for
// moderation until an admin approves or rejects them.
type Review struct {
	ID          string    `json:"_id"`
	ItineraryID string    `json:"itinerary"`
	Author      *User     `json:"author,omitempty"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Subscription is a user's paid subscription record.
type Subscription struct {
	ID        string    `json:"_id"`
	User      *User     `json:"user,omitempty"`
	Plan      string    `json:"plan"`
	Status    string    `json:"status"`
	StartedAt time.Time `json:"startedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Stats is the dashboard statistics snapshot.
type Stats struct {
	TotalUsers           int `json:"totalUsers"`
	TotalNomads          int `json:"totalNomads"`
	TotalExplorers       int `json:"totalExplorers"`
	TotalItineraries     int `json:"totalItineraries"`
	PublishedItineraries int `json:"publishedItineraries"`
	DraftItineraries     int `json:"draftItineraries"`
	PendingReviews       int `json:"pendingReviews"`
	ActiveSubscriptions  int `json:"activeSubscriptions"`
}

// Upload is the backend's record of an uploaded media file.
type Upload struct {
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
	Size     int64  `json:"size,omitempty"`
}
