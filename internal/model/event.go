package model

import "time"

// Event is a planned gathering.  Guests are invited via tokenized
// links; the event itself is addressed by its public short code.
//
// Fields:
//  ID           – primary key identifier.
//  Title        – display title of the event.
//  Description  – free-text description, optional.
//  EventDate    – date and time of the gathering.
//  Location     – where the event takes place.
//  PlannerName  – name of the organizer.
//  PlannerEmail – organizer contact e-mail.
//  PlannerPhone – organizer phone, optional.
//  UniqueCode   – public URL-safe code; unique and immutable.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Event struct {
	ID           uint64    `json:"id"`            // events.id
	Title        string    `json:"title"`         // events.title
	Description  *string   `json:"description"`   // events.description (nullable)
	EventDate    time.Time `json:"event_date"`    // events.event_date
	Location     string    `json:"location"`      // events.location
	PlannerName  string    `json:"planner_name"`  // events.planner_name
	PlannerEmail string    `json:"planner_email"` // events.planner_email
	PlannerPhone *string   `json:"planner_phone"` // events.planner_phone (nullable)
	UniqueCode   string    `json:"unique_code"`   // events.unique_code
	CreatedAt    time.Time `json:"created_at"`    // events.created_at
	UpdatedAt    time.Time `json:"updated_at"`    // events.updated_at
}
