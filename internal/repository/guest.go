package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/feierapp/feierapp-api/internal/model"
)

// GuestRepo provides data access to the guests table.  Guests are
// addressed by their secret unique_token at the HTTP boundary.
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo returns a new GuestRepo bound to the given database.
func NewGuestRepo(db *sql.DB) *GuestRepo { return &GuestRepo{db: db} }

const guestColumns = `id, event_id, name, email, phone, unique_token, status, children_count, dietary_restrictions, special_notes, created_at, updated_at`

func scanGuest(row interface{ Scan(...any) error }) (*model.Guest, error) {
	var g model.Guest
	var email, phone, dietary, notes sql.NullString
	err := row.Scan(
		&g.ID, &g.EventID, &g.Name, &email, &phone, &g.UniqueToken,
		&g.Status, &g.ChildrenCount, &dietary, &notes,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if email.Valid {
		g.Email = &email.String
	}
	if phone.Valid {
		g.Phone = &phone.String
	}
	if dietary.Valid {
		g.DietaryRestrictions = &dietary.String
	}
	if notes.Valid {
		g.SpecialNotes = &notes.String
	}
	return &g, nil
}

// Create inserts a new guest and reads the row back.  Token
// collisions surface as duplicate key errors for the caller's
// regenerate loop.
func (r *GuestRepo) Create(ctx context.Context, g *model.Guest) (*model.Guest, error) {
	const q = `INSERT INTO guests (event_id, name, email, phone, unique_token, status, children_count, dietary_restrictions, special_notes)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		g.EventID, g.Name, g.Email, g.Phone, g.UniqueToken,
		g.Status, g.ChildrenCount, g.DietaryRestrictions, g.SpecialNotes,
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

// GetByID returns the guest with the given ID, or ErrGuestNotFound.
func (r *GuestRepo) GetByID(ctx context.Context, id uint64) (*model.Guest, error) {
	g, err := scanGuest(r.db.QueryRowContext(ctx, `SELECT `+guestColumns+` FROM guests WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGuestNotFound
	}
	return g, err
}

// GetByToken resolves a guest by bearer token, or ErrGuestNotFound.
func (r *GuestRepo) GetByToken(ctx context.Context, token string) (*model.Guest, error) {
	g, err := scanGuest(r.db.QueryRowContext(ctx, `SELECT `+guestColumns+` FROM guests WHERE unique_token = ?`, token))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGuestNotFound
	}
	return g, err
}

// GetByTokenForEvent resolves a guest by token scoped to one event.
// Used when the route carries both an event code and a guest token;
// a token from another event is treated as not found.
func (r *GuestRepo) GetByTokenForEvent(ctx context.Context, token string, eventID uint64) (*model.Guest, error) {
	g, err := scanGuest(r.db.QueryRowContext(ctx,
		`SELECT `+guestColumns+` FROM guests WHERE unique_token = ? AND event_id = ?`, token, eventID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGuestNotFound
	}
	return g, err
}

// GetByTokenTx is GetByToken within an existing transaction.
func (r *GuestRepo) GetByTokenTx(ctx context.Context, tx *sql.Tx, token string) (*model.Guest, error) {
	g, err := scanGuest(tx.QueryRowContext(ctx, `SELECT `+guestColumns+` FROM guests WHERE unique_token = ?`, token))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGuestNotFound
	}
	return g, err
}

// ListByEvent returns all guests of an event ordered by creation time.
func (r *GuestRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.Guest, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+guestColumns+` FROM guests WHERE event_id = ? ORDER BY created_at ASC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	guests := make([]model.Guest, 0)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		guests = append(guests, *g)
	}
	return guests, rows.Err()
}

// Update writes the mutable columns of a guest.  The token and event
// binding are immutable.
func (r *GuestRepo) Update(ctx context.Context, g *model.Guest) (*model.Guest, error) {
	const q = `UPDATE guests
	           SET name = ?, email = ?, phone = ?, status = ?, children_count = ?, dietary_restrictions = ?, special_notes = ?
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q,
		g.Name, g.Email, g.Phone, g.Status, g.ChildrenCount,
		g.DietaryRestrictions, g.SpecialNotes, g.ID,
	); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, g.ID)
}
