package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/feierapp/feierapp-api/internal/model"
)

// ContributionRepo provides CRUD operations for pledged items.
// Contributions are the only ride-adjacent rows that are hard-deleted.
type ContributionRepo struct {
	db *sql.DB
}

// NewContributionRepo returns a new ContributionRepo bound to the given database.
func NewContributionRepo(db *sql.DB) *ContributionRepo { return &ContributionRepo{db: db} }

const contributionColumns = `id, guest_id, event_id, type, item, quantity, notes, created_at`

func scanContribution(row interface{ Scan(...any) error }) (*model.Contribution, error) {
	var c model.Contribution
	var quantity, notes sql.NullString
	err := row.Scan(&c.ID, &c.GuestID, &c.EventID, &c.Type, &c.Item, &quantity, &notes, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if quantity.Valid {
		c.Quantity = &quantity.String
	}
	if notes.Valid {
		c.Notes = &notes.String
	}
	return &c, nil
}

// Create inserts a contribution and reads the row back.
func (r *ContributionRepo) Create(ctx context.Context, c *model.Contribution) (*model.Contribution, error) {
	const q = `INSERT INTO contributions (guest_id, event_id, type, item, quantity, notes) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.GuestID, c.EventID, c.Type, c.Item, c.Quantity, c.Notes)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID returns a contribution, or ErrContributionNotFound.
func (r *ContributionRepo) GetByID(ctx context.Context, id uint64) (*model.Contribution, error) {
	c, err := scanContribution(r.db.QueryRowContext(ctx,
		`SELECT `+contributionColumns+` FROM contributions WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContributionNotFound
	}
	return c, err
}

// ListByGuest returns a guest's contributions, newest first.
func (r *ContributionRepo) ListByGuest(ctx context.Context, guestID uint64) ([]model.Contribution, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+contributionColumns+` FROM contributions WHERE guest_id = ? ORDER BY created_at DESC`, guestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectContributions(rows)
}

// ListByGuestIDs returns contributions for several guests in one
// query, keyed by guest ID.  Used when assembling an event's full
// guest list.
func (r *ContributionRepo) ListByGuestIDs(ctx context.Context, guestIDs []uint64) (map[uint64][]model.Contribution, error) {
	result := make(map[uint64][]model.Contribution)
	if len(guestIDs) == 0 {
		return result, nil
	}
	query := `SELECT ` + contributionColumns + ` FROM contributions WHERE guest_id IN (`
	args := make([]any, 0, len(guestIDs))
	for i, id := range guestIDs {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += `) ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		c, err := scanContribution(rows)
		if err != nil {
			return nil, err
		}
		result[c.GuestID] = append(result[c.GuestID], *c)
	}
	return result, rows.Err()
}

// Update writes the mutable columns of a contribution.
func (r *ContributionRepo) Update(ctx context.Context, c *model.Contribution) (*model.Contribution, error) {
	const q = `UPDATE contributions SET type = ?, item = ?, quantity = ?, notes = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, c.Type, c.Item, c.Quantity, c.Notes, c.ID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, c.ID)
}

// Delete removes a contribution.
func (r *ContributionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contributions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrContributionNotFound
	}
	return nil
}

func collectContributions(rows *sql.Rows) ([]model.Contribution, error) {
	contributions := make([]model.Contribution, 0)
	for rows.Next() {
		c, err := scanContribution(rows)
		if err != nil {
			return nil, err
		}
		contributions = append(contributions, *c)
	}
	return contributions, rows.Err()
}
