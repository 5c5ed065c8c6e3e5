package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/feierapp/feierapp-api/internal/model"
)

// RideOfferRepo provides data access to the ride_offers table.  The
// offer row doubles as the serialization point for the match engine:
// capacity checks and status recomputation lock it FOR UPDATE so that
// concurrent match writes against the same offer cannot interleave.
type RideOfferRepo struct {
	db *sql.DB
}

// NewRideOfferRepo returns a new RideOfferRepo bound to the given database.
func NewRideOfferRepo(db *sql.DB) *RideOfferRepo { return &RideOfferRepo{db: db} }

const offerColumns = `id, event_id, driver_guest_id, departure_location, departure_time, available_seats, car_description, notes, contact_info, status, created_at, updated_at`

func scanOffer(row interface{ Scan(...any) error }) (*model.RideOffer, error) {
	var o model.RideOffer
	var car, notes, contact sql.NullString
	err := row.Scan(
		&o.ID, &o.EventID, &o.DriverGuestID, &o.DepartureLocation, &o.DepartureTime,
		&o.AvailableSeats, &car, &notes, &contact, &o.Status,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if car.Valid {
		o.CarDescription = &car.String
	}
	if notes.Valid {
		o.Notes = &notes.String
	}
	if contact.Valid {
		o.ContactInfo = &contact.String
	}
	return &o, nil
}

// Create inserts an offer and reads the row back.
func (r *RideOfferRepo) Create(ctx context.Context, o *model.RideOffer) (*model.RideOffer, error) {
	const q = `INSERT INTO ride_offers (event_id, driver_guest_id, departure_location, departure_time, available_seats, car_description, notes, contact_info, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		o.EventID, o.DriverGuestID, o.DepartureLocation, o.DepartureTime,
		o.AvailableSeats, o.CarDescription, o.Notes, o.ContactInfo, o.Status,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID returns an offer, or ErrOfferNotFound.
func (r *RideOfferRepo) GetByID(ctx context.Context, id uint64) (*model.RideOffer, error) {
	o, err := scanOffer(r.db.QueryRowContext(ctx,
		`SELECT `+offerColumns+` FROM ride_offers WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOfferNotFound
	}
	return o, err
}

// GetByIDForUpdateTx loads an offer with a row lock inside the given
// transaction.  Every transaction that checks capacity or rewrites
// derived status acquires this lock first, which serializes racing
// match creations and recomputations per offer.
func (r *RideOfferRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.RideOffer, error) {
	o, err := scanOffer(tx.QueryRowContext(ctx,
		`SELECT `+offerColumns+` FROM ride_offers WHERE id = ? FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOfferNotFound
	}
	return o, err
}

// ListByEvent returns an event's offers ordered by departure time
// ascending, the order the listing endpoint promises.
func (r *RideOfferRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.RideOffer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+offerColumns+` FROM ride_offers WHERE event_id = ? ORDER BY departure_time ASC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOffers(rows)
}

// ListByDriver returns all offers a guest has issued, newest first.
func (r *RideOfferRepo) ListByDriver(ctx context.Context, driverGuestID uint64) ([]model.RideOffer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+offerColumns+` FROM ride_offers WHERE driver_guest_id = ? ORDER BY created_at DESC`, driverGuestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOffers(rows)
}

// UpdateTx writes the mutable columns of an offer within the given
// transaction, including an explicit owner cancellation via the status
// column.  The caller holds the offer row lock.
func (r *RideOfferRepo) UpdateTx(ctx context.Context, tx *sql.Tx, o *model.RideOffer) error {
	const q = `UPDATE ride_offers
	           SET departure_location = ?, departure_time = ?, available_seats = ?, car_description = ?, notes = ?, contact_info = ?, status = ?
	           WHERE id = ?`
	_, err := tx.ExecContext(ctx, q,
		o.DepartureLocation, o.DepartureTime, o.AvailableSeats,
		o.CarDescription, o.Notes, o.ContactInfo, o.Status, o.ID,
	)
	return err
}

// UpdateStatusTx rewrites the derived status column within the given
// transaction.  The caller holds the offer row lock.
func (r *RideOfferRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	_, err := tx.ExecContext(ctx, `UPDATE ride_offers SET status = ? WHERE id = ?`, status, id)
	return err
}

func collectOffers(rows *sql.Rows) ([]model.RideOffer, error) {
	offers := make([]model.RideOffer, 0)
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, *o)
	}
	return offers, rows.Err()
}
