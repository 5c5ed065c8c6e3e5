package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/feierapp/feierapp-api/internal/model"
)

// RideMatchRepo provides data access to the ride_matches table.  All
// writes happen inside transactions owned by the match engine, which
// holds the linked offer's row lock for the duration.
type RideMatchRepo struct {
	db *sql.DB
}

// NewRideMatchRepo returns a new RideMatchRepo bound to the given database.
func NewRideMatchRepo(db *sql.DB) *RideMatchRepo { return &RideMatchRepo{db: db} }

const matchColumns = `id, ride_offer_id, ride_request_id, status, driver_confirmed, passenger_confirmed, pickup_location, pickup_time, notes, created_at, updated_at`

func scanMatch(row interface{ Scan(...any) error }) (*model.RideMatch, error) {
	var m model.RideMatch
	var pickup, notes sql.NullString
	var pickupTime sql.NullTime
	err := row.Scan(
		&m.ID, &m.RideOfferID, &m.RideRequestID, &m.Status,
		&m.DriverConfirmed, &m.PassengerConfirmed,
		&pickup, &pickupTime, &notes,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if pickup.Valid {
		m.PickupLocation = &pickup.String
	}
	if pickupTime.Valid {
		m.PickupTime = &pickupTime.Time
	}
	if notes.Valid {
		m.Notes = &notes.String
	}
	return &m, nil
}

// CreateTx inserts a match within the given transaction and populates
// the generated ID on the record.  A collision with the unique
// (offer, request) key is reported as ErrDuplicateMatch regardless of
// any prior existence check the caller made.
func (r *RideMatchRepo) CreateTx(ctx context.Context, tx *sql.Tx, m *model.RideMatch) error {
	const q = `INSERT INTO ride_matches (ride_offer_id, ride_request_id, status, driver_confirmed, passenger_confirmed, pickup_location, pickup_time, notes)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		m.RideOfferID, m.RideRequestID, m.Status,
		m.DriverConfirmed, m.PassengerConfirmed,
		m.PickupLocation, m.PickupTime, m.Notes,
	)
	if err != nil {
		if IsDuplicateKey(err) {
			return ErrDuplicateMatch
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID returns a match, or ErrMatchNotFound.
func (r *RideMatchRepo) GetByID(ctx context.Context, id uint64) (*model.RideMatch, error) {
	m, err := scanMatch(r.db.QueryRowContext(ctx,
		`SELECT `+matchColumns+` FROM ride_matches WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	return m, err
}

// GetByIDTx is GetByID within an existing transaction, without a lock.
// Used to discover the linked offer before the offer lock is taken.
func (r *RideMatchRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.RideMatch, error) {
	m, err := scanMatch(tx.QueryRowContext(ctx,
		`SELECT `+matchColumns+` FROM ride_matches WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	return m, err
}

// GetByIDForUpdateTx re-reads a match with a row lock.  Callers lock
// the offer row first; offer → match is the fixed lock order.
func (r *RideMatchRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.RideMatch, error) {
	m, err := scanMatch(tx.QueryRowContext(ctx,
		`SELECT `+matchColumns+` FROM ride_matches WHERE id = ? FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	return m, err
}

// ExistsTx reports whether any match already links the given pair,
// regardless of its status.  The unique key remains the authority;
// this is only the fast path for a friendly error.
func (r *RideMatchRepo) ExistsTx(ctx context.Context, tx *sql.Tx, offerID, requestID uint64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx,
		`SELECT 1 FROM ride_matches WHERE ride_offer_id = ? AND ride_request_id = ? LIMIT 1`,
		offerID, requestID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// OfferLoad is an offer's confirmed-match load: how many confirmed
// matches it carries and how many seats those matches consume.  Each
// confirmed match consumes its request's passenger_count seats.
type OfferLoad struct {
	ConfirmedMatches int
	SeatsTaken       int
}

const offerLoadQuery = `SELECT COUNT(*), COALESCE(SUM(r.passenger_count), 0)
	FROM ride_matches m
	JOIN ride_requests r ON r.id = m.ride_request_id
	WHERE m.ride_offer_id = ? AND m.status = ?`

// ConfirmedLoadByOfferTx reads the offer's confirmed load inside the
// transaction.  Combined with the offer row lock this makes the
// capacity check and the subsequent insert effectively atomic.
func (r *RideMatchRepo) ConfirmedLoadByOfferTx(ctx context.Context, tx *sql.Tx, offerID uint64) (OfferLoad, error) {
	var load OfferLoad
	err := tx.QueryRowContext(ctx, offerLoadQuery, offerID, model.MatchStatusConfirmed).
		Scan(&load.ConfirmedMatches, &load.SeatsTaken)
	return load, err
}

// ConfirmedLoadByOfferIDs returns the confirmed load of many offers in
// one query.  Offers without confirmed matches are absent from the map.
func (r *RideMatchRepo) ConfirmedLoadByOfferIDs(ctx context.Context, offerIDs []uint64) (map[uint64]OfferLoad, error) {
	loads := make(map[uint64]OfferLoad)
	if len(offerIDs) == 0 {
		return loads, nil
	}
	placeholders := make([]string, len(offerIDs))
	args := make([]any, 0, len(offerIDs)+1)
	for i, id := range offerIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}
	args = append(args, model.MatchStatusConfirmed)
	query := `SELECT m.ride_offer_id, COUNT(*), COALESCE(SUM(r.passenger_count), 0)
	          FROM ride_matches m
	          JOIN ride_requests r ON r.id = m.ride_request_id
	          WHERE m.ride_offer_id IN (` + strings.Join(placeholders, ",") + `) AND m.status = ?
	          GROUP BY m.ride_offer_id`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var offerID uint64
		var load OfferLoad
		if err := rows.Scan(&offerID, &load.ConfirmedMatches, &load.SeatsTaken); err != nil {
			return nil, err
		}
		loads[offerID] = load
	}
	return loads, rows.Err()
}

// ConfirmedByRequestIDs returns each request's confirmed match, if
// any, for many requests in one query.
func (r *RideMatchRepo) ConfirmedByRequestIDs(ctx context.Context, requestIDs []uint64) (map[uint64]model.RideMatch, error) {
	matches := make(map[uint64]model.RideMatch)
	if len(requestIDs) == 0 {
		return matches, nil
	}
	placeholders := make([]string, len(requestIDs))
	args := make([]any, 0, len(requestIDs)+1)
	for i, id := range requestIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}
	args = append(args, model.MatchStatusConfirmed)
	query := `SELECT ` + matchColumns + ` FROM ride_matches
	          WHERE ride_request_id IN (` + strings.Join(placeholders, ",") + `) AND status = ?`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches[m.RideRequestID] = *m
	}
	return matches, rows.Err()
}

// HasConfirmedByRequestTx reports whether the request currently has a
// confirmed match, inside the transaction.
func (r *RideMatchRepo) HasConfirmedByRequestTx(ctx context.Context, tx *sql.Tx, requestID uint64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx,
		`SELECT 1 FROM ride_matches WHERE ride_request_id = ? AND status = ? LIMIT 1`,
		requestID, model.MatchStatusConfirmed,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// UpdateTx rewrites a match's status and confirmation flags within
// the given transaction.
func (r *RideMatchRepo) UpdateTx(ctx context.Context, tx *sql.Tx, m *model.RideMatch) error {
	const q = `UPDATE ride_matches SET status = ?, driver_confirmed = ?, passenger_confirmed = ? WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, m.Status, m.DriverConfirmed, m.PassengerConfirmed, m.ID)
	return err
}
