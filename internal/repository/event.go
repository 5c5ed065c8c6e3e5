package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/feierapp/feierapp-api/internal/model"
)

// EventRepo provides CRUD operations for events.  Events are always
// addressed by their public unique_code at the HTTP boundary; the
// numeric ID is internal.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions
// that span multiple repositories.
func (r *EventRepo) DB() *sql.DB { return r.db }

const eventColumns = `id, title, description, event_date, location, planner_name, planner_email, planner_phone, unique_code, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (*model.Event, error) {
	var e model.Event
	var desc, phone sql.NullString
	err := row.Scan(
		&e.ID, &e.Title, &desc, &e.EventDate, &e.Location,
		&e.PlannerName, &e.PlannerEmail, &phone, &e.UniqueCode,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		e.Description = &desc.String
	}
	if phone.Valid {
		e.PlannerPhone = &phone.String
	}
	return &e, nil
}

// Create inserts a new event and reads the row back so generated ID
// and timestamps are populated on the returned value.  Unique code
// collisions surface as a duplicate key error; callers regenerate the
// code and retry.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) (*model.Event, error) {
	const q = `INSERT INTO events (title, description, event_date, location, planner_name, planner_email, planner_phone, unique_code)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		e.Title, e.Description, e.EventDate, e.Location,
		e.PlannerName, e.PlannerEmail, e.PlannerPhone, e.UniqueCode,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.getBy(ctx, `id = ?`, uint64(id))
}

// GetByCode returns the event with the given public code, or
// ErrEventNotFound.
func (r *EventRepo) GetByCode(ctx context.Context, code string) (*model.Event, error) {
	return r.getBy(ctx, `unique_code = ?`, code)
}

// GetByID returns the event with the given id, or ErrEventNotFound.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	return r.getBy(ctx, `id = ?`, id)
}

func (r *EventRepo) getBy(ctx context.Context, where string, arg any) (*model.Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE `+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	return e, err
}

// List returns all events ordered by event date ascending.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+eventColumns+` FROM events ORDER BY event_date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// Update writes the mutable columns of an event.  The unique_code is
// immutable and deliberately excluded.
func (r *EventRepo) Update(ctx context.Context, e *model.Event) (*model.Event, error) {
	const q = `UPDATE events
	           SET title = ?, description = ?, event_date = ?, location = ?, planner_name = ?, planner_email = ?, planner_phone = ?
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q,
		e.Title, e.Description, e.EventDate, e.Location,
		e.PlannerName, e.PlannerEmail, e.PlannerPhone, e.ID,
	); err != nil {
		return nil, err
	}
	return r.getBy(ctx, `id = ?`, e.ID)
}

// Delete removes an event.  Guests, invitations, contributions and
// ride rows cascade at the schema level.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrEventNotFound
	}
	return nil
}
