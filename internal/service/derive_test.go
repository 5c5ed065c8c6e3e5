package service

import (
	"testing"

	"github.com/feierapp/feierapp-api/internal/model"
)

func TestRemainingSeats(t *testing.T) {
	tests := []struct {
		name       string
		available  int
		seatsTaken int
		expected   int
	}{
		{name: "untouched offer", available: 4, seatsTaken: 0, expected: 4},
		{name: "partially taken", available: 4, seatsTaken: 3, expected: 1},
		{name: "exactly full", available: 2, seatsTaken: 2, expected: 0},
		{name: "overbooked clamps to zero", available: 2, seatsTaken: 5, expected: 0},
		{name: "single seat", available: 1, seatsTaken: 1, expected: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemainingSeats(tt.available, tt.seatsTaken); got != tt.expected {
				t.Errorf("RemainingSeats(%d, %d) = %d, want %d", tt.available, tt.seatsTaken, got, tt.expected)
			}
		})
	}
}

func TestDeriveMatchStatus(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		driver    bool
		passenger bool
		expected  string
	}{
		{name: "no flags stays pending", current: model.MatchStatusPending, expected: model.MatchStatusPending},
		{name: "driver only stays pending", current: model.MatchStatusPending, driver: true, expected: model.MatchStatusPending},
		{name: "passenger only stays pending", current: model.MatchStatusPending, passenger: true, expected: model.MatchStatusPending},
		{name: "both flags confirm", current: model.MatchStatusPending, driver: true, passenger: true, expected: model.MatchStatusConfirmed},
		{name: "declined is terminal", current: model.MatchStatusDeclined, driver: true, passenger: true, expected: model.MatchStatusDeclined},
		{name: "cancelled is terminal", current: model.MatchStatusCancelled, driver: true, passenger: true, expected: model.MatchStatusCancelled},
		{name: "confirmed stays confirmed", current: model.MatchStatusConfirmed, driver: true, passenger: true, expected: model.MatchStatusConfirmed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveMatchStatus(tt.current, tt.driver, tt.passenger); got != tt.expected {
				t.Errorf("DeriveMatchStatus(%q, %v, %v) = %q, want %q", tt.current, tt.driver, tt.passenger, got, tt.expected)
			}
		})
	}
}

func TestNextOfferStatus(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		remaining int
		expected  string
	}{
		{name: "active with seats stays active", current: model.OfferStatusActive, remaining: 2, expected: model.OfferStatusActive},
		{name: "active without seats becomes full", current: model.OfferStatusActive, remaining: 0, expected: model.OfferStatusFull},
		{name: "full regains a seat", current: model.OfferStatusFull, remaining: 1, expected: model.OfferStatusActive},
		{name: "full stays full", current: model.OfferStatusFull, remaining: 0, expected: model.OfferStatusFull},
		{name: "cancelled never revived", current: model.OfferStatusCancelled, remaining: 3, expected: model.OfferStatusCancelled},
		{name: "cancelled never marked full", current: model.OfferStatusCancelled, remaining: 0, expected: model.OfferStatusCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextOfferStatus(tt.current, tt.remaining); got != tt.expected {
				t.Errorf("NextOfferStatus(%q, %d) = %q, want %q", tt.current, tt.remaining, got, tt.expected)
			}
		})
	}
}

func TestNextRequestStatus(t *testing.T) {
	tests := []struct {
		name         string
		current      string
		hasConfirmed bool
		expected     string
	}{
		{name: "open without match stays open", current: model.RequestStatusOpen, expected: model.RequestStatusOpen},
		{name: "open with match becomes matched", current: model.RequestStatusOpen, hasConfirmed: true, expected: model.RequestStatusMatched},
		{name: "matched losing its match reopens", current: model.RequestStatusMatched, expected: model.RequestStatusOpen},
		{name: "matched keeping its match stays matched", current: model.RequestStatusMatched, hasConfirmed: true, expected: model.RequestStatusMatched},
		{name: "cancelled never revived", current: model.RequestStatusCancelled, hasConfirmed: true, expected: model.RequestStatusCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextRequestStatus(tt.current, tt.hasConfirmed); got != tt.expected {
				t.Errorf("NextRequestStatus(%q, %v) = %q, want %q", tt.current, tt.hasConfirmed, got, tt.expected)
			}
		})
	}
}

// TestFullOfferLifecycle walks an offer with two seats through a full
// booking and the later decline: one request for both seats confirms,
// the offer fills, a second single-seat request no longer fits, and the
// decline frees everything again.
func TestFullOfferLifecycle(t *testing.T) {
	const availableSeats = 2

	// Request A (two passengers) is matched and confirmed by both sides.
	matchA := model.MatchStatusPending
	matchA = DeriveMatchStatus(matchA, true, false)
	if matchA != model.MatchStatusPending {
		t.Fatalf("after driver confirmation alone status = %q, want pending", matchA)
	}
	matchA = DeriveMatchStatus(matchA, true, true)
	if matchA != model.MatchStatusConfirmed {
		t.Fatalf("after both confirmations status = %q, want confirmed", matchA)
	}

	// The confirmed match consumes both seats.
	seatsTaken := 2
	remaining := RemainingSeats(availableSeats, seatsTaken)
	if remaining != 0 {
		t.Fatalf("remaining seats = %d, want 0", remaining)
	}
	offerStatus := NextOfferStatus(model.OfferStatusActive, remaining)
	if offerStatus != model.OfferStatusFull {
		t.Fatalf("offer status = %q, want full", offerStatus)
	}
	requestStatus := NextRequestStatus(model.RequestStatusOpen, true)
	if requestStatus != model.RequestStatusMatched {
		t.Fatalf("request status = %q, want matched", requestStatus)
	}

	// Request B (one passenger) must not fit any more.
	if RemainingSeats(availableSeats, seatsTaken) >= 1 {
		t.Fatal("second request fit into a full offer")
	}

	// Passenger A declines: the seats free up and everything reopens.
	matchA = model.MatchStatusDeclined
	seatsTaken = 0
	offerStatus = NextOfferStatus(offerStatus, RemainingSeats(availableSeats, seatsTaken))
	if offerStatus != model.OfferStatusActive {
		t.Fatalf("offer status after decline = %q, want active", offerStatus)
	}
	requestStatus = NextRequestStatus(requestStatus, false)
	if requestStatus != model.RequestStatusOpen {
		t.Fatalf("request status after decline = %q, want open", requestStatus)
	}
	if got := DeriveMatchStatus(matchA, true, true); got != model.MatchStatusDeclined {
		t.Fatalf("declined match rederived to %q, want declined", got)
	}
}
