package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/feierapp/feierapp-api/internal/model"
	"github.com/feierapp/feierapp-api/internal/queue"
	"github.com/feierapp/feierapp-api/internal/repository"
)

// Confirmation roles accepted by Confirm.
const (
	ConfirmTypeDriver    = "driver"
	ConfirmTypePassenger = "passenger"
)

// MatchService is the match engine. Every mutation runs in a single
// transaction that locks the offer row first, so capacity checks,
// status derivation and the unique (offer, request) link all serialize
// on the same lock. Lock order is always offer row, then match row.
type MatchService struct {
	db       *sql.DB
	events   *repository.EventRepo
	guests   *repository.GuestRepo
	offers   *repository.RideOfferRepo
	requests *repository.RideRequestRepo
	matches  *repository.RideMatchRepo
	pub      MatchPublisher
	log      zerolog.Logger
}

// NewMatchService wires a MatchService to its repositories and the
// post-confirmation publisher.
func NewMatchService(db *sql.DB, events *repository.EventRepo, guests *repository.GuestRepo, offers *repository.RideOfferRepo, requests *repository.RideRequestRepo, matches *repository.RideMatchRepo, pub MatchPublisher, log zerolog.Logger) *MatchService {
	return &MatchService{db: db, events: events, guests: guests, offers: offers, requests: requests, matches: matches, pub: pub, log: log}
}

// MatchInput carries client-supplied fields for proposing a match.
type MatchInput struct {
	RideOfferID    uint64  `json:"ride_offer_id"`
	RideRequestID  uint64  `json:"ride_request_id"`
	PickupLocation *string `json:"pickup_location"`
	PickupTime     *string `json:"pickup_time"`
	Notes          *string `json:"notes"`
}

// MatchView is a match enriched with its offer and request rows as they
// stand after the mutation.
type MatchView struct {
	model.RideMatch
	RideOffer   *model.RideOffer   `json:"ride_offer,omitempty"`
	RideRequest *model.RideRequest `json:"ride_request,omitempty"`
}

// CreateMatch links an offer to a request. The whole operation runs in
// one transaction: the offer row is locked, remaining seats are counted
// against confirmed matches under that lock, and the insert rides on
// the storage-level unique (offer, request) key. Concurrent creations
// against the same offer serialize on the row lock; at most one of two
// identical proposals succeeds.
func (s *MatchService) CreateMatch(ctx context.Context, in MatchInput) (*MatchView, error) {
	ve := ValidationErrors{}
	if in.RideOfferID == 0 {
		ve.Add("ride_offer_id", "Ride Offer Id cannot be blank.")
	}
	if in.RideRequestID == 0 {
		ve.Add("ride_request_id", "Ride Request Id cannot be blank.")
	}
	var pickupTime *time.Time
	if in.PickupTime != nil && strings.TrimSpace(*in.PickupTime) != "" {
		t, err := parseDateTime(strings.TrimSpace(*in.PickupTime))
		if err != nil {
			ve.Add("pickup_time", "Pickup Time is not a valid datetime.")
		} else {
			pickupTime = &t
		}
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	offer, err := s.offers.GetByIDForUpdateTx(ctx, tx, in.RideOfferID)
	if err != nil {
		return nil, err
	}
	request, err := s.requests.GetByIDTx(ctx, tx, in.RideRequestID)
	if err != nil {
		return nil, err
	}
	if request.EventID != offer.EventID {
		ve.Add("ride_request_id", "Ride Request must belong to the same event as the offer.")
		return nil, ve
	}

	exists, err := s.matches.ExistsTx(ctx, tx, offer.ID, request.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repository.ErrDuplicateMatch
	}

	load, err := s.matches.ConfirmedLoadByOfferTx(ctx, tx, offer.ID)
	if err != nil {
		return nil, err
	}
	if RemainingSeats(offer.AvailableSeats, load.SeatsTaken) < request.PassengerCount {
		return nil, ErrNotEnoughSeats
	}

	m := &model.RideMatch{
		RideOfferID:    offer.ID,
		RideRequestID:  request.ID,
		Status:         model.MatchStatusPending,
		PickupLocation: trimPtr(in.PickupLocation),
		PickupTime:     pickupTime,
		Notes:          trimPtr(in.Notes),
	}
	if m.PickupLocation == nil {
		pickup := request.PickupLocation
		m.PickupLocation = &pickup
	}
	if err := s.matches.CreateTx(ctx, tx, m); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	return s.view(ctx, m.ID)
}

// Confirm records one party's confirmation on a match. confirmType
// names the role the token must prove: the offer's driver or the
// request's passenger. When both flags end up set the match becomes
// confirmed, the offer and request statuses are recomputed in the same
// transaction, and a broker event is published after commit.
func (s *MatchService) Confirm(ctx context.Context, matchID uint64, token, confirmType string) (*MatchView, error) {
	var confirmedNow bool
	view, err := s.mutate(ctx, matchID, func(m *model.RideMatch, offer *model.RideOffer, request *model.RideRequest, guest *model.Guest) error {
		switch {
		case confirmType == ConfirmTypeDriver && guest.ID == offer.DriverGuestID:
			m.DriverConfirmed = true
		case confirmType == ConfirmTypePassenger && guest.ID == request.PassengerGuestID:
			m.PassengerConfirmed = true
		default:
			return ErrUnauthorized
		}
		wasConfirmed := m.Status == model.MatchStatusConfirmed
		m.Status = DeriveMatchStatus(m.Status, m.DriverConfirmed, m.PassengerConfirmed)
		confirmedNow = !wasConfirmed && m.Status == model.MatchStatusConfirmed
		return nil
	}, token)
	if err != nil {
		return nil, err
	}
	if confirmedNow {
		s.publishConfirmed(ctx, view)
	}
	return view, nil
}

// Decline records an explicit decline by either party. Declining is the
// only path into the declined status; the confirmation flags keep
// whatever state they had so the row still shows who had agreed.
func (s *MatchService) Decline(ctx context.Context, matchID uint64, token string) (*MatchView, error) {
	return s.mutate(ctx, matchID, func(m *model.RideMatch, offer *model.RideOffer, request *model.RideRequest, guest *model.Guest) error {
		if guest.ID != offer.DriverGuestID && guest.ID != request.PassengerGuestID {
			return ErrUnauthorized
		}
		m.Status = model.MatchStatusDeclined
		return nil
	}, token)
}

// Cancel voids a match administratively. It is deliberately not wired
// to any route.
func (s *MatchService) Cancel(ctx context.Context, matchID uint64) (*MatchView, error) {
	return s.mutate(ctx, matchID, func(m *model.RideMatch, _ *model.RideOffer, _ *model.RideRequest, _ *model.Guest) error {
		m.Status = model.MatchStatusCancelled
		return nil
	}, "")
}

// mutate runs a match mutation under the offer row lock: re-read the
// match under lock, resolve the acting guest, apply the change, persist
// it and recompute the offer then request statuses before committing.
func (s *MatchService) mutate(ctx context.Context, matchID uint64, apply func(*model.RideMatch, *model.RideOffer, *model.RideRequest, *model.Guest) error, token string) (*MatchView, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Unlocked read to discover the offer, then lock the offer row and
	// re-read the match under that lock.
	probe, err := s.matches.GetByIDTx(ctx, tx, matchID)
	if err != nil {
		return nil, err
	}
	offer, err := s.offers.GetByIDForUpdateTx(ctx, tx, probe.RideOfferID)
	if err != nil {
		return nil, err
	}
	m, err := s.matches.GetByIDForUpdateTx(ctx, tx, matchID)
	if err != nil {
		return nil, err
	}
	request, err := s.requests.GetByIDTx(ctx, tx, m.RideRequestID)
	if err != nil {
		return nil, err
	}

	var guest *model.Guest
	if token != "" {
		guest, err = s.guests.GetByTokenTx(ctx, tx, token)
		if err != nil {
			return nil, err
		}
	}

	if err := apply(m, offer, request, guest); err != nil {
		return nil, err
	}
	if err := s.matches.UpdateTx(ctx, tx, m); err != nil {
		return nil, err
	}
	if err := s.recomputeTx(ctx, tx, offer, request.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	return s.view(ctx, m.ID)
}

// recomputeTx re-derives the offer status and then the request status
// from the confirmed matches visible inside the transaction. The offer
// row is already locked, which serializes concurrent recomputations.
func (s *MatchService) recomputeTx(ctx context.Context, tx *sql.Tx, offer *model.RideOffer, requestID uint64) error {
	load, err := s.matches.ConfirmedLoadByOfferTx(ctx, tx, offer.ID)
	if err != nil {
		return err
	}
	next := NextOfferStatus(offer.Status, RemainingSeats(offer.AvailableSeats, load.SeatsTaken))
	if next != offer.Status {
		if err := s.offers.UpdateStatusTx(ctx, tx, offer.ID, next); err != nil {
			return err
		}
	}

	request, err := s.requests.GetByIDTx(ctx, tx, requestID)
	if err != nil {
		return err
	}
	hasConfirmed, err := s.matches.HasConfirmedByRequestTx(ctx, tx, requestID)
	if err != nil {
		return err
	}
	nextReq := NextRequestStatus(request.Status, hasConfirmed)
	if nextReq != request.Status {
		if err := s.requests.UpdateStatusTx(ctx, tx, requestID, nextReq); err != nil {
			return err
		}
	}
	return nil
}

// view reloads the match with its offer and request after commit.
func (s *MatchService) view(ctx context.Context, matchID uint64) (*MatchView, error) {
	m, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	offer, err := s.offers.GetByID(ctx, m.RideOfferID)
	if err != nil {
		return nil, err
	}
	request, err := s.requests.GetByID(ctx, m.RideRequestID)
	if err != nil {
		return nil, err
	}
	return &MatchView{RideMatch: *m, RideOffer: offer, RideRequest: request}, nil
}

// publishConfirmed emits the broker event for a match that just became
// confirmed. Best effort: failures are logged, never surfaced.
func (s *MatchService) publishConfirmed(ctx context.Context, view *MatchView) {
	event, err := s.events.GetByID(ctx, view.RideOffer.EventID)
	if err != nil {
		s.log.Error().Err(err).Uint64("match_id", view.ID).Msg("load event for publish failed")
		return
	}
	driver, err := s.guests.GetByID(ctx, view.RideOffer.DriverGuestID)
	if err != nil {
		s.log.Error().Err(err).Uint64("match_id", view.ID).Msg("load driver for publish failed")
		return
	}
	passenger, err := s.guests.GetByID(ctx, view.RideRequest.PassengerGuestID)
	if err != nil {
		s.log.Error().Err(err).Uint64("match_id", view.ID).Msg("load passenger for publish failed")
		return
	}

	pickup := view.RideRequest.PickupLocation
	if view.PickupLocation != nil {
		pickup = *view.PickupLocation
	}
	ev := queue.MatchConfirmedEvent{
		MatchID:           view.ID,
		RideOfferID:       view.RideOfferID,
		RideRequestID:     view.RideRequestID,
		EventID:           event.ID,
		EventTitle:        event.Title,
		DriverName:        driver.Name,
		PassengerName:     passenger.Name,
		DepartureLocation: view.RideOffer.DepartureLocation,
		DepartureTime:     view.RideOffer.DepartureTime.Format(time.RFC3339),
		PickupLocation:    pickup,
		PassengerCount:    view.RideRequest.PassengerCount,
		ConfirmedAt:       time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.pub.PublishMatchConfirmed(ctx, ev); err != nil {
		s.log.Error().Err(err).Uint64("match_id", view.ID).Msg("publish match confirmed failed")
	}
}
