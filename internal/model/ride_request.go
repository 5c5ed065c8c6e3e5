package model

import "time"

// Ride request statuses.  A request is matched iff it has at least one
// confirmed match; cancelled is set only by the owner.
const (
	RequestStatusOpen      = "open"
	RequestStatusMatched   = "matched"
	RequestStatusCancelled = "cancelled"
)

// Passenger count bounds for a single request.
const (
	RequestPassengersMin = 1
	RequestPassengersMax = 6
)

// RideRequest is passenger-supplied ride demand scoped to one event.
type RideRequest struct {
	ID               uint64    `json:"id"`                 // ride_requests.id
	EventID          uint64    `json:"event_id"`           // ride_requests.event_id
	PassengerGuestID uint64    `json:"passenger_guest_id"` // ride_requests.passenger_guest_id
	PickupLocation   string    `json:"pickup_location"`    // ride_requests.pickup_location
	FlexiblePickup   bool      `json:"flexible_pickup"`    // ride_requests.flexible_pickup
	PassengerCount   int       `json:"passenger_count"`    // ride_requests.passenger_count
	Notes            *string   `json:"notes"`              // ride_requests.notes (nullable)
	Status           string    `json:"status"`             // ride_requests.status
	CreatedAt        time.Time `json:"created_at"`         // ride_requests.created_at
	UpdatedAt        time.Time `json:"updated_at"`         // ride_requests.updated_at
}
