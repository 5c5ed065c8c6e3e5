package service

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/feierapp/feierapp-api/internal/model"
	"github.com/feierapp/feierapp-api/internal/repository"
)

var (
	offerCols = []string{"id", "event_id", "driver_guest_id", "departure_location", "departure_time", "available_seats", "car_description", "notes", "contact_info", "status", "created_at", "updated_at"}
	guestCols = []string{"id", "event_id", "name", "email", "phone", "unique_token", "status", "children_count", "dietary_restrictions", "special_notes", "created_at", "updated_at"}
	reqCols   = []string{"id", "event_id", "passenger_guest_id", "pickup_location", "flexible_pickup", "passenger_count", "notes", "status", "created_at", "updated_at"}
	matchCols = []string{"id", "ride_offer_id", "ride_request_id", "status", "driver_confirmed", "passenger_confirmed", "pickup_location", "pickup_time", "notes", "created_at", "updated_at"}

	mockNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func newRideServiceMock(t *testing.T) (*RideService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	svc := NewRideService(db,
		repository.NewEventRepo(db),
		repository.NewGuestRepo(db),
		repository.NewRideOfferRepo(db),
		repository.NewRideRequestRepo(db),
		repository.NewRideMatchRepo(db),
	)
	return svc, mock
}

// A seat edit must run inside one transaction holding the offer row
// lock, so the status it derives cannot overwrite the result of a
// match confirmation committing at the same time.
func TestUpdateOfferSeatEditRecomputesUnderRowLock(t *testing.T) {
	svc, mock := newRideServiceMock(t)
	dep := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM ride_offers WHERE id = \? FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(offerCols).
			AddRow(1, 10, 5, "Main St", dep, 4, nil, nil, "555-0100", model.OfferStatusActive, mockNow, mockNow))
	mock.ExpectQuery(`SELECT (.+) FROM guests WHERE unique_token = \?`).
		WithArgs("tok-driver").
		WillReturnRows(sqlmock.NewRows(guestCols).
			AddRow(5, 10, "Dana", nil, nil, "tok-driver", model.GuestStatusAccepted, 0, nil, nil, mockNow, mockNow))
	// One confirmed match already consumes two of the seats.
	mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(SUM\(r\.passenger_count\), 0\)`).
		WillReturnRows(sqlmock.NewRows([]string{"matches", "seats"}).AddRow(1, 2))
	mock.ExpectExec(`UPDATE ride_offers`).
		WithArgs("Main St", dep, 2, nil, nil, "555-0100", model.OfferStatusFull, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT (.+) FROM ride_offers WHERE id = \?`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(offerCols).
			AddRow(1, 10, 5, "Main St", dep, 2, nil, nil, "555-0100", model.OfferStatusFull, mockNow, mockNow))

	view, err := svc.UpdateOffer(context.Background(), 1, OfferUpdateInput{
		GuestToken:     "tok-driver",
		AvailableSeats: intPtr(2),
	})
	if err != nil {
		t.Fatalf("UpdateOffer() error = %v", err)
	}
	if view.Status != model.OfferStatusFull {
		t.Errorf("status = %q, want %q", view.Status, model.OfferStatusFull)
	}
	if view.RemainingSeats != 0 {
		t.Errorf("RemainingSeats = %d, want 0", view.RemainingSeats)
	}
	if view.ConfirmedMatchesCount != 1 {
		t.Errorf("ConfirmedMatchesCount = %d, want 1", view.ConfirmedMatchesCount)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// Owner cancellation of a request locks the request row for the span
// of the edit, so the match engine's status writes queue up behind it
// instead of interleaving.
func TestUpdateRequestCancelHoldsRowLock(t *testing.T) {
	svc, mock := newRideServiceMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM ride_requests WHERE id = \? FOR UPDATE`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(reqCols).
			AddRow(3, 10, 6, "Dorm B", false, 1, nil, model.RequestStatusOpen, mockNow, mockNow))
	mock.ExpectQuery(`SELECT (.+) FROM guests WHERE unique_token = \?`).
		WithArgs("tok-passenger").
		WillReturnRows(sqlmock.NewRows(guestCols).
			AddRow(6, 10, "Riley", nil, nil, "tok-passenger", model.GuestStatusAccepted, 0, nil, nil, mockNow, mockNow))
	mock.ExpectQuery(`SELECT 1 FROM ride_matches WHERE ride_request_id = \?`).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectExec(`UPDATE ride_requests`).
		WithArgs("Dorm B", false, 1, nil, model.RequestStatusCancelled, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT (.+) FROM ride_requests WHERE id = \?`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(reqCols).
			AddRow(3, 10, 6, "Dorm B", false, 1, nil, model.RequestStatusCancelled, mockNow, mockNow))
	mock.ExpectQuery(`SELECT (.+) FROM ride_matches`).
		WillReturnRows(sqlmock.NewRows(matchCols))

	view, err := svc.UpdateRequest(context.Background(), 3, RequestUpdateInput{
		GuestToken: "tok-passenger",
		Status:     strPtr(model.RequestStatusCancelled),
	})
	if err != nil {
		t.Fatalf("UpdateRequest() error = %v", err)
	}
	if view.Status != model.RequestStatusCancelled {
		t.Errorf("status = %q, want %q", view.Status, model.RequestStatusCancelled)
	}
	if view.ConfirmedMatch != nil {
		t.Errorf("ConfirmedMatch = %+v, want nil", view.ConfirmedMatch)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// A token that belongs to someone else aborts the edit before any
// write happens; the transaction only ever reads.
func TestUpdateOfferRejectsForeignToken(t *testing.T) {
	svc, mock := newRideServiceMock(t)
	dep := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM ride_offers WHERE id = \? FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(offerCols).
			AddRow(1, 10, 5, "Main St", dep, 4, nil, nil, "555-0100", model.OfferStatusActive, mockNow, mockNow))
	mock.ExpectQuery(`SELECT (.+) FROM guests WHERE unique_token = \?`).
		WithArgs("tok-other").
		WillReturnRows(sqlmock.NewRows(guestCols).
			AddRow(9, 10, "Sam", nil, nil, "tok-other", model.GuestStatusAccepted, 0, nil, nil, mockNow, mockNow))
	mock.ExpectRollback()

	_, err := svc.UpdateOffer(context.Background(), 1, OfferUpdateInput{
		GuestToken:     "tok-other",
		AvailableSeats: intPtr(2),
	})
	if err != ErrUnauthorized {
		t.Fatalf("UpdateOffer() error = %v, want ErrUnauthorized", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
