// Package queue defines message payloads exchanged over the message broker.
package queue

// MatchConfirmedEvent is published when both parties of a ride match
// have confirmed. It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type MatchConfirmedEvent struct {
	MatchID           uint64 `json:"match_id"`
	RideOfferID       uint64 `json:"ride_offer_id"`
	RideRequestID     uint64 `json:"ride_request_id"`
	EventID           uint64 `json:"event_id"`
	EventTitle        string `json:"event_title"`
	DriverName        string `json:"driver_name"`
	PassengerName     string `json:"passenger_name"`
	DepartureLocation string `json:"departure_location"`
	DepartureTime     string `json:"departure_time"`
	PickupLocation    string `json:"pickup_location"`
	PassengerCount    int    `json:"passenger_count"`
	ConfirmedAt       string `json:"confirmed_at"`
}
