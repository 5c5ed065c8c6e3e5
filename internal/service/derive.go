package service

import "github.com/feierapp/feierapp-api/internal/model"

// RemainingSeats returns how many seats an offer still has free.
// seatsTaken is the seats consumed by confirmed matches, each match
// consuming its request's passenger count.  The result never goes
// negative even if stale data reports more consumption than capacity.
func RemainingSeats(availableSeats, seatsTaken int) int {
	remaining := availableSeats - seatsTaken
	if remaining < 0 {
		return 0
	}
	return remaining
}

// DeriveMatchStatus returns the match status implied by the two
// confirmation flags.  A match becomes confirmed only when both the
// driver and the passenger have confirmed; terminal states (declined,
// cancelled) are never overridden by flag changes.
func DeriveMatchStatus(current string, driverConfirmed, passengerConfirmed bool) string {
	if current == model.MatchStatusDeclined || current == model.MatchStatusCancelled {
		return current
	}
	if driverConfirmed && passengerConfirmed {
		return model.MatchStatusConfirmed
	}
	return current
}

// NextOfferStatus recomputes an offer's status from its remaining seat
// count.  A cancelled offer stays cancelled; otherwise the offer is full
// exactly when no seats remain, and active again as soon as a seat frees
// up (a confirmed match being declined or cancelled).
func NextOfferStatus(current string, remainingSeats int) string {
	if current == model.OfferStatusCancelled {
		return current
	}
	if remainingSeats == 0 {
		return model.OfferStatusFull
	}
	return model.OfferStatusActive
}

// NextRequestStatus recomputes a request's status from whether it holds
// at least one confirmed match.  A cancelled request stays cancelled.
func NextRequestStatus(current string, hasConfirmedMatch bool) string {
	if current == model.RequestStatusCancelled {
		return current
	}
	if hasConfirmedMatch {
		return model.RequestStatusMatched
	}
	return model.RequestStatusOpen
}
