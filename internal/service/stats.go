package service

import "github.com/feierapp/feierapp-api/internal/model"

// RideStatistics summarizes an event's ride board.  TotalAvailableSeats
// sums the declared capacity of every offer, not the seats still free.
type RideStatistics struct {
	TotalOffers         int `json:"total_offers"`
	ActiveOffers        int `json:"active_offers"`
	TotalRequests       int `json:"total_requests"`
	OpenRequests        int `json:"open_requests"`
	TotalAvailableSeats int `json:"total_available_seats"`
}

// ComputeRideStatistics derives board statistics from the event's
// offers and requests.
func ComputeRideStatistics(offers []model.RideOffer, requests []model.RideRequest) RideStatistics {
	var stats RideStatistics
	stats.TotalOffers = len(offers)
	stats.TotalRequests = len(requests)
	for _, o := range offers {
		if o.Status == model.OfferStatusActive {
			stats.ActiveOffers++
		}
		stats.TotalAvailableSeats += o.AvailableSeats
	}
	for _, r := range requests {
		if r.Status == model.RequestStatusOpen {
			stats.OpenRequests++
		}
	}
	return stats
}

// GuestStatistics summarizes an event's RSVP state.
type GuestStatistics struct {
	TotalGuests   int `json:"total_guests"`
	Accepted      int `json:"accepted"`
	Declined      int `json:"declined"`
	Pending       int `json:"pending"`
	TotalChildren int `json:"total_children"`
}

// ComputeGuestStatistics derives RSVP statistics from the guest list.
// Children are summed over the whole roster regardless of RSVP status.
func ComputeGuestStatistics(guests []model.Guest) GuestStatistics {
	var stats GuestStatistics
	stats.TotalGuests = len(guests)
	for _, g := range guests {
		stats.TotalChildren += g.ChildrenCount
		switch g.Status {
		case model.GuestStatusAccepted:
			stats.Accepted++
		case model.GuestStatusDeclined:
			stats.Declined++
		default:
			stats.Pending++
		}
	}
	return stats
}
