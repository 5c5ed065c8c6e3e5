package model

import "time"

// Contribution types.
const (
	ContributionTypeFood  = "food"
	ContributionTypeDrink = "drink"
	ContributionTypeOther = "other"
)

// Contribution is a guest's pledged item for an event (potluck style).
type Contribution struct {
	ID        uint64    `json:"id"`         // contributions.id
	GuestID   uint64    `json:"guest_id"`   // contributions.guest_id
	EventID   uint64    `json:"event_id"`   // contributions.event_id
	Type      string    `json:"type"`       // contributions.type
	Item      string    `json:"item"`       // contributions.item
	Quantity  *string   `json:"quantity"`   // contributions.quantity (nullable)
	Notes     *string   `json:"notes"`      // contributions.notes (nullable)
	CreatedAt time.Time `json:"created_at"` // contributions.created_at
}
