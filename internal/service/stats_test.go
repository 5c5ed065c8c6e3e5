package service

import (
	"testing"

	"github.com/feierapp/feierapp-api/internal/model"
)

func TestComputeRideStatistics(t *testing.T) {
	offers := []model.RideOffer{
		{Status: model.OfferStatusActive, AvailableSeats: 4},
		{Status: model.OfferStatusFull, AvailableSeats: 2},
		{Status: model.OfferStatusCancelled, AvailableSeats: 8},
		{Status: model.OfferStatusActive, AvailableSeats: 3},
	}
	requests := []model.RideRequest{
		{Status: model.RequestStatusOpen},
		{Status: model.RequestStatusMatched},
		{Status: model.RequestStatusCancelled},
		{Status: model.RequestStatusOpen},
	}

	stats := ComputeRideStatistics(offers, requests)
	if stats.TotalOffers != 4 {
		t.Errorf("TotalOffers = %d, want 4", stats.TotalOffers)
	}
	if stats.ActiveOffers != 2 {
		t.Errorf("ActiveOffers = %d, want 2", stats.ActiveOffers)
	}
	if stats.TotalRequests != 4 {
		t.Errorf("TotalRequests = %d, want 4", stats.TotalRequests)
	}
	if stats.OpenRequests != 2 {
		t.Errorf("OpenRequests = %d, want 2", stats.OpenRequests)
	}
	// Every offer contributes its declared capacity, cancelled included.
	if stats.TotalAvailableSeats != 17 {
		t.Errorf("TotalAvailableSeats = %d, want 17", stats.TotalAvailableSeats)
	}
}

func TestComputeRideStatisticsEmpty(t *testing.T) {
	stats := ComputeRideStatistics(nil, nil)
	if stats != (RideStatistics{}) {
		t.Errorf("empty board should produce zero statistics, got %+v", stats)
	}
}

func TestComputeGuestStatistics(t *testing.T) {
	guests := []model.Guest{
		{Status: model.GuestStatusAccepted, ChildrenCount: 2},
		{Status: model.GuestStatusAccepted},
		{Status: model.GuestStatusDeclined, ChildrenCount: 3},
		{Status: model.GuestStatusPending, ChildrenCount: 1},
		{Status: model.GuestStatusPending},
	}

	stats := ComputeGuestStatistics(guests)
	if stats.TotalGuests != 5 {
		t.Errorf("TotalGuests = %d, want 5", stats.TotalGuests)
	}
	if stats.Accepted != 2 {
		t.Errorf("Accepted = %d, want 2", stats.Accepted)
	}
	if stats.Declined != 1 {
		t.Errorf("Declined = %d, want 1", stats.Declined)
	}
	if stats.Pending != 2 {
		t.Errorf("Pending = %d, want 2", stats.Pending)
	}
	// Children are summed over the whole roster, not just acceptances.
	if stats.TotalChildren != 6 {
		t.Errorf("TotalChildren = %d, want 6", stats.TotalChildren)
	}
}
