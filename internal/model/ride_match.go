package model

import "time"

// Ride match statuses.  A match starts pending; it becomes confirmed
// only once both parties have confirmed, declined only through an
// explicit decline by one of the two parties, and cancelled only
// administratively.  Status is never set to confirmed by client input.
const (
	MatchStatusPending   = "pending"
	MatchStatusConfirmed = "confirmed"
	MatchStatusDeclined  = "declined"
	MatchStatusCancelled = "cancelled"
)

// RideMatch links exactly one offer to exactly one request.  The
// (offer, request) pair is unique across all matches regardless of
// status.  The two confirmation flags are independent; the status is a
// pure function of the flags and the explicit decline/cancel actions.
//
// Fields:
//  ID                 – primary key identifier.
//  RideOfferID        – the linked offer.
//  RideRequestID      – the linked request.
//  Status             – pending, confirmed, declined or cancelled.
//  DriverConfirmed    – set by the offer's driver.
//  PassengerConfirmed – set by the request's passenger.
//  PickupLocation     – agreed pickup spot; defaults to the request's.
//  PickupTime         – agreed pickup time, optional.
//  Notes              – free-text remarks, optional.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type RideMatch struct {
	ID                 uint64     `json:"id"`                  // ride_matches.id
	RideOfferID        uint64     `json:"ride_offer_id"`       // ride_matches.ride_offer_id
	RideRequestID      uint64     `json:"ride_request_id"`     // ride_matches.ride_request_id
	Status             string     `json:"status"`              // ride_matches.status
	DriverConfirmed    bool       `json:"driver_confirmed"`    // ride_matches.driver_confirmed
	PassengerConfirmed bool       `json:"passenger_confirmed"` // ride_matches.passenger_confirmed
	PickupLocation     *string    `json:"pickup_location"`     // ride_matches.pickup_location (nullable)
	PickupTime         *time.Time `json:"pickup_time"`         // ride_matches.pickup_time (nullable)
	Notes              *string    `json:"notes"`               // ride_matches.notes (nullable)
	CreatedAt          time.Time  `json:"created_at"`          // ride_matches.created_at
	UpdatedAt          time.Time  `json:"updated_at"`          // ride_matches.updated_at
}
