package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/feierapp/feierapp-api/internal/model"
	"github.com/feierapp/feierapp-api/internal/repository"
)

// RideService owns the ride inventory: offers and requests, their
// owner-only updates and the assembled board views. Status mutations
// caused by matching live in MatchService; this service only recomputes
// derived statuses after inventory edits, inside a transaction that
// holds the same row locks the match engine takes.
type RideService struct {
	db       *sql.DB
	events   *repository.EventRepo
	guests   *repository.GuestRepo
	offers   *repository.RideOfferRepo
	requests *repository.RideRequestRepo
	matches  *repository.RideMatchRepo
}

// NewRideService wires a RideService to its repositories.
func NewRideService(db *sql.DB, events *repository.EventRepo, guests *repository.GuestRepo, offers *repository.RideOfferRepo, requests *repository.RideRequestRepo, matches *repository.RideMatchRepo) *RideService {
	return &RideService{db: db, events: events, guests: guests, offers: offers, requests: requests, matches: matches}
}

// OfferInput carries client-supplied fields for creating a ride offer.
// The token identifies the driver and doubles as the authorization.
type OfferInput struct {
	GuestToken        string  `json:"guest_token"`
	DepartureLocation string  `json:"departure_location"`
	DepartureTime     string  `json:"departure_time"`
	AvailableSeats    int     `json:"available_seats"`
	CarDescription    *string `json:"car_description"`
	Notes             *string `json:"notes"`
	ContactInfo       *string `json:"contact_info"`
}

// OfferUpdateInput carries partial offer updates; nil fields are
// untouched. Status accepts only "cancelled"; active and full are
// derived and never client-set.
type OfferUpdateInput struct {
	GuestToken        string  `json:"guest_token"`
	DepartureLocation *string `json:"departure_location"`
	DepartureTime     *string `json:"departure_time"`
	AvailableSeats    *int    `json:"available_seats"`
	CarDescription    *string `json:"car_description"`
	Notes             *string `json:"notes"`
	ContactInfo       *string `json:"contact_info"`
	Status            *string `json:"status"`
}

// RequestInput carries client-supplied fields for creating a ride
// request.
type RequestInput struct {
	GuestToken     string  `json:"guest_token"`
	PickupLocation string  `json:"pickup_location"`
	FlexiblePickup *bool   `json:"flexible_pickup"`
	PassengerCount *int    `json:"passenger_count"`
	Notes          *string `json:"notes"`
}

// RequestUpdateInput carries partial request updates; nil fields are
// untouched. Status accepts only "cancelled".
type RequestUpdateInput struct {
	GuestToken     string  `json:"guest_token"`
	PickupLocation *string `json:"pickup_location"`
	FlexiblePickup *bool   `json:"flexible_pickup"`
	PassengerCount *int    `json:"passenger_count"`
	Notes          *string `json:"notes"`
	Status         *string `json:"status"`
}

// OfferView is an offer enriched with its derived seat accounting and
// the driver's public summary.
type OfferView struct {
	model.RideOffer
	RemainingSeats        int                `json:"remaining_seats"`
	ConfirmedMatchesCount int                `json:"confirmed_matches_count"`
	Driver                model.GuestSummary `json:"driver"`
}

// RequestView is a request enriched with the passenger's public summary
// and the confirmed match, when one exists.
type RequestView struct {
	model.RideRequest
	Passenger      model.GuestSummary `json:"passenger"`
	ConfirmedMatch *model.RideMatch   `json:"confirmed_match,omitempty"`
}

// RideBoard is the per-event ride listing.
type RideBoard struct {
	Offers     []OfferView    `json:"offers"`
	Requests   []RequestView  `json:"requests"`
	Statistics RideStatistics `json:"statistics"`
}

// GuestRides groups a single guest's own offers and requests.
type GuestRides struct {
	Offers   []OfferView   `json:"offers"`
	Requests []RequestView `json:"requests"`
}

// CreateOffer validates the input and stores an active offer for the
// driver identified by the token, scoped to the event addressed by
// code. The contact info defaults to the driver's phone, then e-mail.
func (s *RideService) CreateOffer(ctx context.Context, eventCode string, in OfferInput) (*OfferView, error) {
	e, err := s.events.GetByCode(ctx, eventCode)
	if err != nil {
		return nil, err
	}
	driver, err := s.guests.GetByTokenForEvent(ctx, in.GuestToken, e.ID)
	if err != nil {
		return nil, err
	}

	o := &model.RideOffer{
		EventID:           e.ID,
		DriverGuestID:     driver.ID,
		DepartureLocation: strings.TrimSpace(in.DepartureLocation),
		AvailableSeats:    in.AvailableSeats,
		CarDescription:    trimPtr(in.CarDescription),
		Notes:             trimPtr(in.Notes),
		ContactInfo:       trimPtr(in.ContactInfo),
		Status:            model.OfferStatusActive,
	}
	if o.ContactInfo == nil {
		if driver.Phone != nil {
			o.ContactInfo = driver.Phone
		} else if driver.Email != nil {
			o.ContactInfo = driver.Email
		}
	}

	ve := ValidationErrors{}
	if o.DepartureLocation == "" {
		ve.Add("departure_location", "Departure Location cannot be blank.")
	}
	if strings.TrimSpace(in.DepartureTime) == "" {
		ve.Add("departure_time", "Departure Time cannot be blank.")
	} else if t, err := parseDateTime(strings.TrimSpace(in.DepartureTime)); err != nil {
		ve.Add("departure_time", "Departure Time is not a valid datetime.")
	} else {
		o.DepartureTime = t
	}
	validateSeats(ve, o.AvailableSeats)
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	created, err := s.offers.Create(ctx, o)
	if err != nil {
		return nil, err
	}
	view := offerView(*created, repository.OfferLoad{}, driver.Summary())
	return &view, nil
}

// CreateRequest validates the input and stores an open request for the
// passenger identified by the token, scoped to the event addressed by
// code.
func (s *RideService) CreateRequest(ctx context.Context, eventCode string, in RequestInput) (*RequestView, error) {
	e, err := s.events.GetByCode(ctx, eventCode)
	if err != nil {
		return nil, err
	}
	passenger, err := s.guests.GetByTokenForEvent(ctx, in.GuestToken, e.ID)
	if err != nil {
		return nil, err
	}

	req := &model.RideRequest{
		EventID:          e.ID,
		PassengerGuestID: passenger.ID,
		PickupLocation:   strings.TrimSpace(in.PickupLocation),
		PassengerCount:   model.RequestPassengersMin,
		Notes:            trimPtr(in.Notes),
		Status:           model.RequestStatusOpen,
	}
	if in.FlexiblePickup != nil {
		req.FlexiblePickup = *in.FlexiblePickup
	}
	if in.PassengerCount != nil {
		req.PassengerCount = *in.PassengerCount
	}

	ve := ValidationErrors{}
	if req.PickupLocation == "" {
		ve.Add("pickup_location", "Pickup Location cannot be blank.")
	}
	validatePassengerCount(ve, req.PassengerCount)
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	created, err := s.requests.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	return &RequestView{RideRequest: *created, Passenger: passenger.Summary()}, nil
}

// UpdateOffer applies the non-nil fields to the offer addressed by id.
// Only the owning driver may update; anyone else, including an unknown
// token, gets ErrUnauthorized. The whole edit runs in one transaction
// holding the offer row lock, so the status recomputed from a seat
// change cannot clobber a concurrent match confirmation.
func (s *RideService) UpdateOffer(ctx context.Context, id uint64, in OfferUpdateInput) (*OfferView, error) {
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

	o, err := s.offers.GetByIDForUpdateTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	driver, err := s.guests.GetByTokenTx(ctx, tx, in.GuestToken)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if driver.ID != o.DriverGuestID {
		return nil, ErrUnauthorized
	}

	ve := ValidationErrors{}
	if in.DepartureLocation != nil {
		o.DepartureLocation = strings.TrimSpace(*in.DepartureLocation)
	}
	if in.DepartureTime != nil {
		if t, err := parseDateTime(strings.TrimSpace(*in.DepartureTime)); err != nil {
			ve.Add("departure_time", "Departure Time is not a valid datetime.")
		} else {
			o.DepartureTime = t
		}
	}
	if in.AvailableSeats != nil {
		o.AvailableSeats = *in.AvailableSeats
	}
	if in.CarDescription != nil {
		o.CarDescription = trimPtr(in.CarDescription)
	}
	if in.Notes != nil {
		o.Notes = trimPtr(in.Notes)
	}
	if in.ContactInfo != nil {
		o.ContactInfo = trimPtr(in.ContactInfo)
	}
	if in.Status != nil {
		if *in.Status != model.OfferStatusCancelled {
			ve.Add("status", "Status accepts only cancellation.")
		} else {
			o.Status = model.OfferStatusCancelled
		}
	}
	if o.DepartureLocation == "" {
		ve.Add("departure_location", "Departure Location cannot be blank.")
	}
	validateSeats(ve, o.AvailableSeats)
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	load, err := s.matches.ConfirmedLoadByOfferTx(ctx, tx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Status = NextOfferStatus(o.Status, RemainingSeats(o.AvailableSeats, load.SeatsTaken))

	if err := s.offers.UpdateTx(ctx, tx, o); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	updated, err := s.offers.GetByID(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	view := offerView(*updated, load, driver.Summary())
	return &view, nil
}

// UpdateRequest applies the non-nil fields to the request addressed by
// id, owner-only like UpdateOffer. The edit locks the request row so
// the recomputed status and a concurrent match confirmation serialize
// instead of overwriting each other.
func (s *RideService) UpdateRequest(ctx context.Context, id uint64, in RequestUpdateInput) (*RequestView, error) {
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

	req, err := s.requests.GetByIDForUpdateTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	passenger, err := s.guests.GetByTokenTx(ctx, tx, in.GuestToken)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if passenger.ID != req.PassengerGuestID {
		return nil, ErrUnauthorized
	}

	ve := ValidationErrors{}
	if in.PickupLocation != nil {
		req.PickupLocation = strings.TrimSpace(*in.PickupLocation)
	}
	if in.FlexiblePickup != nil {
		req.FlexiblePickup = *in.FlexiblePickup
	}
	if in.PassengerCount != nil {
		req.PassengerCount = *in.PassengerCount
	}
	if in.Notes != nil {
		req.Notes = trimPtr(in.Notes)
	}
	if in.Status != nil {
		if *in.Status != model.RequestStatusCancelled {
			ve.Add("status", "Status accepts only cancellation.")
		} else {
			req.Status = model.RequestStatusCancelled
		}
	}
	if req.PickupLocation == "" {
		ve.Add("pickup_location", "Pickup Location cannot be blank.")
	}
	validatePassengerCount(ve, req.PassengerCount)
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	hasConfirmed, err := s.matches.HasConfirmedByRequestTx(ctx, tx, req.ID)
	if err != nil {
		return nil, err
	}
	req.Status = NextRequestStatus(req.Status, hasConfirmed)

	if err := s.requests.UpdateTx(ctx, tx, req); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	updated, err := s.requests.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	confirmedByReq, err := s.matches.ConfirmedByRequestIDs(ctx, []uint64{req.ID})
	if err != nil {
		return nil, err
	}
	view := RequestView{RideRequest: *updated, Passenger: passenger.Summary()}
	if m, ok := confirmedByReq[req.ID]; ok {
		match := m
		view.ConfirmedMatch = &match
	}
	return &view, nil
}

// EventBoard assembles the per-event ride listing: enriched offers and
// requests plus board statistics, computed fresh on every read.
func (s *RideService) EventBoard(ctx context.Context, eventCode string) (*RideBoard, error) {
	e, err := s.events.GetByCode(ctx, eventCode)
	if err != nil {
		return nil, err
	}
	offers, err := s.offers.ListByEvent(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	requests, err := s.requests.ListByEvent(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	guests, err := s.guests.ListByEvent(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	guestByID := make(map[uint64]model.Guest, len(guests))
	for _, g := range guests {
		guestByID[g.ID] = g
	}

	offerViews, err := s.offerViews(ctx, offers, func(driverID uint64) model.GuestSummary {
		g := guestByID[driverID]
		return g.Summary()
	})
	if err != nil {
		return nil, err
	}
	requestViews, err := s.requestViews(ctx, requests, func(passengerID uint64) model.GuestSummary {
		g := guestByID[passengerID]
		return g.Summary()
	})
	if err != nil {
		return nil, err
	}

	return &RideBoard{
		Offers:     offerViews,
		Requests:   requestViews,
		Statistics: ComputeRideStatistics(offers, requests),
	}, nil
}

// GuestRides returns the offers and requests owned by the guest
// presenting token.
func (s *RideService) GuestRides(ctx context.Context, token string) (*GuestRides, error) {
	g, err := s.guests.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	offers, err := s.offers.ListByDriver(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	requests, err := s.requests.ListByPassenger(ctx, g.ID)
	if err != nil {
		return nil, err
	}

	summary := g.Summary()
	offerViews, err := s.offerViews(ctx, offers, func(uint64) model.GuestSummary { return summary })
	if err != nil {
		return nil, err
	}
	requestViews, err := s.requestViews(ctx, requests, func(uint64) model.GuestSummary { return summary })
	if err != nil {
		return nil, err
	}
	return &GuestRides{Offers: offerViews, Requests: requestViews}, nil
}

func (s *RideService) offerViews(ctx context.Context, offers []model.RideOffer, summarize func(uint64) model.GuestSummary) ([]OfferView, error) {
	ids := make([]uint64, 0, len(offers))
	for _, o := range offers {
		ids = append(ids, o.ID)
	}
	loads, err := s.matches.ConfirmedLoadByOfferIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]OfferView, 0, len(offers))
	for _, o := range offers {
		views = append(views, offerView(o, loads[o.ID], summarize(o.DriverGuestID)))
	}
	return views, nil
}

func (s *RideService) requestViews(ctx context.Context, requests []model.RideRequest, summarize func(uint64) model.GuestSummary) ([]RequestView, error) {
	ids := make([]uint64, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}
	confirmed, err := s.matches.ConfirmedByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]RequestView, 0, len(requests))
	for _, r := range requests {
		v := RequestView{RideRequest: r, Passenger: summarize(r.PassengerGuestID)}
		if m, ok := confirmed[r.ID]; ok {
			match := m
			v.ConfirmedMatch = &match
		}
		views = append(views, v)
	}
	return views, nil
}

func offerView(o model.RideOffer, load repository.OfferLoad, driver model.GuestSummary) OfferView {
	return OfferView{
		RideOffer:             o,
		RemainingSeats:        RemainingSeats(o.AvailableSeats, load.SeatsTaken),
		ConfirmedMatchesCount: load.ConfirmedMatches,
		Driver:                driver,
	}
}

func validateSeats(ve ValidationErrors, seats int) {
	if seats < model.OfferSeatsMin || seats > model.OfferSeatsMax {
		ve.Add("available_seats", "Available Seats must be between 1 and 8.")
	}
}

func validatePassengerCount(ve ValidationErrors, count int) {
	if count < model.RequestPassengersMin || count > model.RequestPassengersMax {
		ve.Add("passenger_count", "Passenger Count must be between 1 and 6.")
	}
}
