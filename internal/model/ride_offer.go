package model

import "time"

// Ride offer statuses.  The status is derived from confirmed matches;
// clients never set it directly except to cancel.
const (
	OfferStatusActive    = "active"
	OfferStatusFull      = "full"
	OfferStatusCancelled = "cancelled"
)

// Seat capacity bounds for a single offer.
const (
	OfferSeatsMin = 1
	OfferSeatsMax = 8
)

// RideOffer is driver-supplied ride capacity scoped to one event.
//
// Fields:
//  ID                – primary key identifier.
//  EventID           – event the offer belongs to.
//  DriverGuestID     – guest acting as the driver.
//  DepartureLocation – where the ride starts.
//  DepartureTime     – when the ride departs.
//  AvailableSeats    – seat capacity (1–8).
//  CarDescription    – free-text car info, optional.
//  Notes             – free-text remarks, optional.
//  ContactInfo       – contact override; defaults to the driver's
//                      phone, falling back to e-mail.
//  Status            – active, full or cancelled; full/active are
//                      derived from remaining seats.
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type RideOffer struct {
	ID                uint64    `json:"id"`                 // ride_offers.id
	EventID           uint64    `json:"event_id"`           // ride_offers.event_id
	DriverGuestID     uint64    `json:"driver_guest_id"`    // ride_offers.driver_guest_id
	DepartureLocation string    `json:"departure_location"` // ride_offers.departure_location
	DepartureTime     time.Time `json:"departure_time"`     // ride_offers.departure_time
	AvailableSeats    int       `json:"available_seats"`    // ride_offers.available_seats
	CarDescription    *string   `json:"car_description"`    // ride_offers.car_description (nullable)
	Notes             *string   `json:"notes"`              // ride_offers.notes (nullable)
	ContactInfo       *string   `json:"contact_info"`       // ride_offers.contact_info (nullable)
	Status            string    `json:"status"`             // ride_offers.status
	CreatedAt         time.Time `json:"created_at"`         // ride_offers.created_at
	UpdatedAt         time.Time `json:"updated_at"`         // ride_offers.updated_at
}
