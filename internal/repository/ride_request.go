package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/feierapp/feierapp-api/internal/model"
)

// RideRequestRepo provides data access to the ride_requests table.
type RideRequestRepo struct {
	db *sql.DB
}

// NewRideRequestRepo returns a new RideRequestRepo bound to the given database.
func NewRideRequestRepo(db *sql.DB) *RideRequestRepo { return &RideRequestRepo{db: db} }

const requestColumns = `id, event_id, passenger_guest_id, pickup_location, flexible_pickup, passenger_count, notes, status, created_at, updated_at`

func scanRequest(row interface{ Scan(...any) error }) (*model.RideRequest, error) {
	var q model.RideRequest
	var notes sql.NullString
	err := row.Scan(
		&q.ID, &q.EventID, &q.PassengerGuestID, &q.PickupLocation, &q.FlexiblePickup,
		&q.PassengerCount, &notes, &q.Status, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if notes.Valid {
		q.Notes = &notes.String
	}
	return &q, nil
}

// Create inserts a request and reads the row back.
func (r *RideRequestRepo) Create(ctx context.Context, req *model.RideRequest) (*model.RideRequest, error) {
	const q = `INSERT INTO ride_requests (event_id, passenger_guest_id, pickup_location, flexible_pickup, passenger_count, notes, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		req.EventID, req.PassengerGuestID, req.PickupLocation,
		req.FlexiblePickup, req.PassengerCount, req.Notes, req.Status,
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

// GetByID returns a request, or ErrRequestNotFound.
func (r *RideRequestRepo) GetByID(ctx context.Context, id uint64) (*model.RideRequest, error) {
	req, err := scanRequest(r.db.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM ride_requests WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	return req, err
}

// GetByIDTx is GetByID within an existing transaction.  No row lock:
// the offer row is the designated serialization point, and locking
// requests as well would invite lock-order cycles.
func (r *RideRequestRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.RideRequest, error) {
	req, err := scanRequest(tx.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM ride_requests WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	return req, err
}

// GetByIDForUpdateTx loads a request with a row lock for the owner
// edit path.  That path takes no further locks, while the match engine
// only writes the request row under the offer lock, so the two cannot
// form a cycle.
func (r *RideRequestRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.RideRequest, error) {
	req, err := scanRequest(tx.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM ride_requests WHERE id = ? FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	return req, err
}

// ListByEvent returns an event's requests newest first, so fresh
// demand is surfaced at the top of the listing.
func (r *RideRequestRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.RideRequest, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+requestColumns+` FROM ride_requests WHERE event_id = ? ORDER BY created_at DESC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

// ListByPassenger returns all requests a guest has issued, newest first.
func (r *RideRequestRepo) ListByPassenger(ctx context.Context, passengerGuestID uint64) ([]model.RideRequest, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+requestColumns+` FROM ride_requests WHERE passenger_guest_id = ? ORDER BY created_at DESC`, passengerGuestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

// UpdateTx writes the mutable columns of a request within the given
// transaction, including an explicit owner cancellation via the
// status column.  The caller holds the request row lock.
func (r *RideRequestRepo) UpdateTx(ctx context.Context, tx *sql.Tx, req *model.RideRequest) error {
	const q = `UPDATE ride_requests
	           SET pickup_location = ?, flexible_pickup = ?, passenger_count = ?, notes = ?, status = ?
	           WHERE id = ?`
	_, err := tx.ExecContext(ctx, q,
		req.PickupLocation, req.FlexiblePickup, req.PassengerCount, req.Notes, req.Status, req.ID,
	)
	return err
}

// UpdateStatusTx rewrites the derived status column within the given
// transaction.
func (r *RideRequestRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	_, err := tx.ExecContext(ctx, `UPDATE ride_requests SET status = ? WHERE id = ?`, status, id)
	return err
}

func collectRequests(rows *sql.Rows) ([]model.RideRequest, error) {
	requests := make([]model.RideRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}
