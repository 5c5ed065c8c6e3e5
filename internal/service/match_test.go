package service

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"

	"github.com/feierapp/feierapp-api/internal/model"
	"github.com/feierapp/feierapp-api/internal/queue"
	"github.com/feierapp/feierapp-api/internal/repository"
)

type nopPublisher struct{}

func (nopPublisher) PublishMatchConfirmed(context.Context, queue.MatchConfirmedEvent) error {
	return nil
}

func newMatchServiceMock(t *testing.T) (*MatchService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	svc := NewMatchService(db,
		repository.NewEventRepo(db),
		repository.NewGuestRepo(db),
		repository.NewRideOfferRepo(db),
		repository.NewRideRequestRepo(db),
		repository.NewRideMatchRepo(db),
		nopPublisher{}, zerolog.Nop(),
	)
	return svc, mock
}

func pendingMatchRows(status string, driverConfirmed, passengerConfirmed bool) *sqlmock.Rows {
	return sqlmock.NewRows(matchCols).
		AddRow(7, 1, 3, status, driverConfirmed, passengerConfirmed, nil, nil, nil, mockNow, mockNow)
}

// Declining only moves the status; the confirmation flags keep what
// each party had recorded so far.
func TestDeclineKeepsConfirmationFlags(t *testing.T) {
	svc, mock := newMatchServiceMock(t)
	dep := mockNow.Add(48 * time.Hour)

	offerRows := func(status string) *sqlmock.Rows {
		return sqlmock.NewRows(offerCols).
			AddRow(1, 10, 5, "Main St", dep, 3, nil, nil, "555-0100", status, mockNow, mockNow)
	}
	requestRows := func(status string) *sqlmock.Rows {
		return sqlmock.NewRows(reqCols).
			AddRow(3, 10, 6, "Dorm B", false, 1, nil, status, mockNow, mockNow)
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM ride_matches WHERE id = \?`).
		WillReturnRows(pendingMatchRows(model.MatchStatusPending, true, false))
	mock.ExpectQuery(`SELECT (.+) FROM ride_offers WHERE id = \? FOR UPDATE`).
		WillReturnRows(offerRows(model.OfferStatusActive))
	mock.ExpectQuery(`SELECT (.+) FROM ride_matches WHERE id = \? FOR UPDATE`).
		WillReturnRows(pendingMatchRows(model.MatchStatusPending, true, false))
	mock.ExpectQuery(`SELECT (.+) FROM ride_requests WHERE id = \?`).
		WillReturnRows(requestRows(model.RequestStatusOpen))
	mock.ExpectQuery(`SELECT (.+) FROM guests WHERE unique_token = \?`).
		WithArgs("tok-driver").
		WillReturnRows(sqlmock.NewRows(guestCols).
			AddRow(5, 10, "Dana", nil, nil, "tok-driver", model.GuestStatusAccepted, 0, nil, nil, mockNow, mockNow))
	// The driver's earlier confirmation survives the decline.
	mock.ExpectExec(`UPDATE ride_matches SET status = \?, driver_confirmed = \?, passenger_confirmed = \?`).
		WithArgs(model.MatchStatusDeclined, true, false, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(SUM\(r\.passenger_count\), 0\)`).
		WillReturnRows(sqlmock.NewRows([]string{"matches", "seats"}).AddRow(0, 0))
	mock.ExpectQuery(`SELECT (.+) FROM ride_requests WHERE id = \?`).
		WillReturnRows(requestRows(model.RequestStatusOpen))
	mock.ExpectQuery(`SELECT 1 FROM ride_matches WHERE ride_request_id = \?`).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT (.+) FROM ride_matches WHERE id = \?`).
		WillReturnRows(pendingMatchRows(model.MatchStatusDeclined, true, false))
	mock.ExpectQuery(`SELECT (.+) FROM ride_offers WHERE id = \?`).
		WillReturnRows(offerRows(model.OfferStatusActive))
	mock.ExpectQuery(`SELECT (.+) FROM ride_requests WHERE id = \?`).
		WillReturnRows(requestRows(model.RequestStatusOpen))

	view, err := svc.Decline(context.Background(), 7, "tok-driver")
	if err != nil {
		t.Fatalf("Decline() error = %v", err)
	}
	if view.Status != model.MatchStatusDeclined {
		t.Errorf("status = %q, want %q", view.Status, model.MatchStatusDeclined)
	}
	if !view.DriverConfirmed {
		t.Errorf("DriverConfirmed = false, want the earlier confirmation preserved")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
