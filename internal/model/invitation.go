package model

import "time"

// Invitation tracks the delivery lifecycle of a guest's invite link:
// when it was issued, first opened and first responded to.  One row is
// created alongside each guest.
type Invitation struct {
	ID          uint64     `json:"id"`           // invitations.id
	EventID     uint64     `json:"event_id"`     // invitations.event_id
	GuestID     uint64     `json:"guest_id"`     // invitations.guest_id
	SentAt      time.Time  `json:"sent_at"`      // invitations.sent_at
	OpenedAt    *time.Time `json:"opened_at"`    // invitations.opened_at (nullable)
	RespondedAt *time.Time `json:"responded_at"` // invitations.responded_at (nullable)
}
