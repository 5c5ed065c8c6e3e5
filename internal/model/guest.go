package model

import "time"

// RSVP statuses a guest can be in.
const (
	GuestStatusPending  = "pending"
	GuestStatusAccepted = "accepted"
	GuestStatusDeclined = "declined"
)

// Guest is an invitee of a single event.  The secret token is the
// guest's sole credential: anyone presenting it can act as the guest.
//
// Fields:
//  ID                  – primary key identifier.
//  EventID             – event the guest belongs to.
//  Name                – guest display name.
//  Email               – contact e-mail, optional.
//  Phone               – contact phone, optional.
//  UniqueToken         – secret high-entropy bearer token; unique and
//                        immutable once assigned.
//  Status              – RSVP status (pending, accepted, declined).
//  ChildrenCount       – number of accompanying children.
//  DietaryRestrictions – free-text dietary notes, optional.
//  SpecialNotes        – free-text remarks, optional.
//  CreatedAt           – creation timestamp.
//  UpdatedAt           – last update timestamp.
type Guest struct {
	ID                  uint64    `json:"id"`                   // guests.id
	EventID             uint64    `json:"event_id"`             // guests.event_id
	Name                string    `json:"name"`                 // guests.name
	Email               *string   `json:"email"`                // guests.email (nullable)
	Phone               *string   `json:"phone"`                // guests.phone (nullable)
	UniqueToken         string    `json:"unique_token"`         // guests.unique_token
	Status              string    `json:"status"`               // guests.status
	ChildrenCount       int       `json:"children_count"`       // guests.children_count
	DietaryRestrictions *string   `json:"dietary_restrictions"` // guests.dietary_restrictions (nullable)
	SpecialNotes        *string   `json:"special_notes"`        // guests.special_notes (nullable)
	CreatedAt           time.Time `json:"created_at"`           // guests.created_at
	UpdatedAt           time.Time `json:"updated_at"`           // guests.updated_at
}

// GuestSummary is the embedded representation of a guest inside ride
// payloads.  It deliberately omits the secret token.
type GuestSummary struct {
	ID    uint64  `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// Summary strips a guest down to the fields safe to embed in payloads
// visible to other guests.
func (g *Guest) Summary() GuestSummary {
	return GuestSummary{ID: g.ID, Name: g.Name, Email: g.Email, Phone: g.Phone}
}
